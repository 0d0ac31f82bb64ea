package meshgen

import (
	"github.com/Faultbox/quadmesh/pkg/math"
)

// Quad is a quadrilateral A,B,C,D stored as triangles ABC and ACD, split
// along the A-C diagonal.
type Quad struct {
	id  uint64
	abc *Triangle
	def *Triangle
}

// Edge is a pair of vertices bounding one triangle side.
type Edge [2]*Vertex

func newQuad(id uint64, abc, def *Triangle) *Quad {
	return &Quad{id: id, abc: abc, def: def}
}

// ID returns the identity assigned by the owning generator.
func (q *Quad) ID() uint64 { return q.id }

// ABC returns the first triangle.
func (q *Quad) ABC() *Triangle { return q.abc }

// DEF returns the second triangle.
func (q *Quad) DEF() *Triangle { return q.def }

// Vertices returns the quad corners in order: ABC.A, ABC.B, ABC.C, DEF.C.
func (q *Quad) Vertices() [4]*Vertex {
	return [4]*Vertex{q.abc.a, q.abc.b, q.abc.c, q.def.c}
}

// Normal returns the normal of the ABC triangle.
func (q *Quad) Normal() math.Vec3 {
	return q.abc.Normal()
}

// SignedDistance returns the plane offset of the ABC triangle.
func (q *Quad) SignedDistance() float32 {
	return q.abc.SignedDistance()
}

// IsPlanar reports whether both triangles face exactly the same way.
func (q *Quad) IsPlanar() bool {
	return CompareNormals(q.abc, q.def) == 1
}

// SetColor colors all six vertices.
func (q *Quad) SetColor(c math.Color) {
	q.abc.SetColor(c)
	q.def.SetColor(c)
}

// underlying returns the six vertex references of both triangles.
func (q *Quad) underlying() [6]*Vertex {
	return [6]*Vertex{q.abc.a, q.abc.b, q.abc.c, q.def.a, q.def.b, q.def.c}
}

// edges returns the three sides of each triangle, diagonals included.
func (q *Quad) edges() [6]Edge {
	return [6]Edge{
		{q.abc.a, q.abc.b},
		{q.abc.b, q.abc.c},
		{q.abc.c, q.abc.a},
		{q.def.a, q.def.b},
		{q.def.b, q.def.c},
		{q.def.c, q.def.a},
	}
}

// CompareQuadNormals returns the dot product of the ABC normals of a and b.
func CompareQuadNormals(a, b *Quad) float32 {
	return CompareNormals(a.abc, b.abc)
}

// SharedVertices returns the vertex objects of a that b also references.
// Quads built by a Generator never share vertex objects, so this is
// normally empty; use SharedEdges for positional adjacency.
func SharedVertices(a, b *Quad) []*Vertex {
	bv := b.underlying()
	var shared []*Vertex
	for _, v := range a.underlying() {
		for _, w := range bv {
			if v == w {
				shared = append(shared, v)
				break
			}
		}
	}
	return shared
}

// sameEdge compares two edges by endpoint position, in either direction.
func sameEdge(e, f Edge) bool {
	if ComparePosition(e[0], f[0]) && ComparePosition(e[1], f[1]) {
		return true
	}
	return ComparePosition(e[0], f[1]) && ComparePosition(e[1], f[0])
}

// SharedEdges returns the triangle edges of a that match, by position,
// some triangle edge of b.
func SharedEdges(a, b *Quad) []Edge {
	be := b.edges()
	var shared []Edge
	for _, e := range a.edges() {
		for _, f := range be {
			if sameEdge(e, f) {
				shared = append(shared, e)
				break
			}
		}
	}
	return shared
}

// SharedEdge returns the edge a and b have in common when there is exactly
// one. Zero or several matches report false.
func SharedEdge(a, b *Quad) (Edge, bool) {
	shared := SharedEdges(a, b)
	if len(shared) != 1 {
		return Edge{}, false
	}
	return shared[0], true
}

// AreNeighbors reports whether a and b share exactly one edge.
func AreNeighbors(a, b *Quad) bool {
	_, ok := SharedEdge(a, b)
	return ok
}

// AreInSamePlane reports whether a and b are both planar, neighbours, and
// face the same way.
func AreInSamePlane(a, b *Quad) bool {
	return a.IsPlanar() &&
		b.IsPlanar() &&
		AreNeighbors(a, b) &&
		CompareQuadNormals(a, b) == 1
}
