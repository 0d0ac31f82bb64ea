package meshgen

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/quadmesh/pkg/math"
)

// Errors returned by Join and the operations that merge quads.
var (
	ErrNotCoplanar               = errors.New("quads must be in the same plane")
	ErrNoSharedEdge              = errors.New("quads must share an edge")
	ErrJoinConfigurationNotFound = errors.New("could not join quads")
	ErrUnknownQuad               = errors.New("quad is not owned by this generator")
)

// DefaultAutoOptimizeSteps is the number of merge passes CalculateData runs.
const DefaultAutoOptimizeSteps = 1

// Generator owns the vertex, triangle and quad pools of one mesh.
// A Generator is not safe for concurrent use.
type Generator struct {
	vertices  *pool[Vertex]
	triangles *pool[Triangle]
	quads     *pool[Quad]

	nextID    uint64
	faceCount int

	autoSteps int
	log       *zap.Logger

	dirty bool
	data  *Data
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for optimize diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithAutoOptimizeSteps sets how many merge passes CalculateData runs
// before flattening. Zero disables merging on read.
func WithAutoOptimizeSteps(steps int) Option {
	return func(g *Generator) {
		if steps >= 0 {
			g.autoSteps = steps
		}
	}
}

// New creates an empty generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		vertices:  newPool[Vertex](),
		triangles: newPool[Triangle](),
		quads:     newPool[Quad](),
		autoSteps: DefaultAutoOptimizeSteps,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) id() uint64 {
	g.nextID++
	return g.nextID
}

func (g *Generator) vertex(position, normal math.Vec3) *Vertex {
	v := newVertex(g.id(), position, normal)
	g.vertices.add(v.id, v)
	return v
}

func (g *Generator) triangle(a, b, c *Vertex) *Triangle {
	t := newTriangle(g.id(), a, b, c)
	g.triangles.add(t.id, t)
	return t
}

// AddTriangle adds a standalone triangle with a flat normal.
func (g *Generator) AddTriangle(a, b, c math.Vec3) *Triangle {
	g.dirty = true
	normal := math.FaceNormal(a, b, c)

	return g.triangle(
		g.vertex(a, normal),
		g.vertex(b, normal),
		g.vertex(c, normal),
	)
}

// Default texture coordinates of a quad's A, B, C and D corners.
var defaultQuadUVs = [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

// AddQuad adds the quad a,b,c,d mapped onto the unit UV square.
func (g *Generator) AddQuad(a, b, c, d math.Vec3) *Quad {
	return g.AddQuadUV(a, b, c, d, defaultQuadUVs)
}

// AddQuadUV adds the quad a,b,c,d with uvs[i] at corner i. The quad is
// split into triangles (a,b,c) and (a,c,d) that do not share vertex
// objects; every vertex is tagged with a new face index.
func (g *Generator) AddQuadUV(a, b, c, d math.Vec3, uvs [4]math.Vec2) *Quad {
	g.dirty = true
	normal := math.FaceNormal(a, b, c)
	corners := [6]struct {
		pos math.Vec3
		uv  math.Vec2
	}{
		{a, uvs[0]}, {b, uvs[1]}, {c, uvs[2]},
		{a, uvs[0]}, {c, uvs[2]}, {d, uvs[3]},
	}

	var vs [6]*Vertex
	for i, corner := range corners {
		v := g.vertex(corner.pos, normal)
		v.UV = corner.uv
		v.FaceIndex = g.faceCount
		vs[i] = v
	}

	q := newQuad(g.id(), g.triangle(vs[0], vs[1], vs[2]), g.triangle(vs[3], vs[4], vs[5]))
	g.quads.add(q.id, q)
	g.faceCount++

	return q
}

// RemoveQuad removes q together with its triangles and vertices.
// It reports false if q is not live in this generator.
func (g *Generator) RemoveQuad(q *Quad) bool {
	if !g.HasQuad(q) {
		return false
	}
	g.quads.remove(q.id)
	g.dirty = true
	g.triangles.remove(q.abc.id)
	g.triangles.remove(q.def.id)
	for _, v := range q.underlying() {
		g.vertices.remove(v.id)
	}
	return true
}

// HasQuad reports whether q is live in this generator.
func (g *Generator) HasQuad(q *Quad) bool {
	live, ok := g.quads.get(q.id)
	return ok && live == q
}

// Quads returns the live quads in pool order.
func (g *Generator) Quads() []*Quad {
	return g.quads.values()
}

// Triangles returns the live triangles in pool order.
func (g *Generator) Triangles() []*Triangle {
	return g.triangles.values()
}

// Vertices returns the live vertices in pool order.
func (g *Generator) Vertices() []*Vertex {
	return g.vertices.values()
}

// FaceCount returns the number of face indices handed out so far.
func (g *Generator) FaceCount() int {
	return g.faceCount
}

// Destroy drops every vertex, triangle and quad and the cached buffers.
func (g *Generator) Destroy() {
	g.quads.reset()
	g.triangles.reset()
	g.vertices.reset()
	g.data = nil
	g.dirty = true
}
