package meshgen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/quadmesh/pkg/math"
)

// Quad sides, named for a quad laid out as
//
//	v3 v2
//	v0 v1
//
// Side k runs from vertex k to vertex k+1.
type side int

const (
	sideBottom side = iota
	sideRight
	sideTop
	sideLeft
)

// axis is the texture direction a merge extends.
type axis int

const (
	axisU axis = iota
	axisV
)

// alignment is one way two quads can touch: side a of the first quad lies
// on side b of the second. The merge recipe treats the quad at the origin
// end of the axis as "low" and the other as "high".
type alignment struct {
	a, b   side
	bIsLow bool
	axis   axis
}

// alignments lists every side pairing two equally wound quads can meet on.
var alignments = [4]alignment{
	{a: sideBottom, b: sideTop, bIsLow: true, axis: axisV},
	{a: sideRight, b: sideLeft, bIsLow: false, axis: axisU},
	{a: sideTop, b: sideBottom, bIsLow: false, axis: axisV},
	{a: sideLeft, b: sideRight, bIsLow: true, axis: axisU},
}

func sideVertices(q *Quad, s side) (*Vertex, *Vertex) {
	vs := q.Vertices()
	return vs[s], vs[(s+1)%4]
}

func edgeHasVertex(e Edge, v *Vertex) bool {
	return ComparePosition(e[0], v) || ComparePosition(e[1], v)
}

func (al alignment) matches(a, b *Quad, e Edge) bool {
	a0, a1 := sideVertices(a, al.a)
	b0, b1 := sideVertices(b, al.b)
	return edgeHasVertex(e, a0) && edgeHasVertex(e, a1) &&
		edgeHasVertex(e, b0) && edgeHasVertex(e, b1)
}

// merged returns the corners and UVs of the quad covering a and b.
// Horizontal merges keep the low quad's left side and take the high quad's
// right side shifted by the low quad's U; vertical merges do the same on V.
func (al alignment) merged(a, b *Quad) (corners [4]math.Vec3, uvs [4]math.Vec2) {
	lo, hi := a.Vertices(), b.Vertices()
	if al.bIsLow {
		lo, hi = hi, lo
	}

	var from [4]*Vertex
	var shift [4]math.Vec2
	switch al.axis {
	case axisU:
		from = [4]*Vertex{lo[0], hi[1], hi[2], lo[3]}
		shift[1] = math.Vec2{X: lo[1].UV.X}
		shift[2] = math.Vec2{X: lo[2].UV.X}
	case axisV:
		from = [4]*Vertex{lo[0], lo[1], hi[2], hi[3]}
		shift[2] = math.Vec2{Y: lo[2].UV.Y}
		shift[3] = math.Vec2{Y: lo[3].UV.Y}
	}

	for i, v := range from {
		corners[i] = v.position
		uvs[i] = v.UV.Add(shift[i])
	}
	return corners, uvs
}

// findAlignment returns the alignment a and b touch on, if any.
func findAlignment(a, b *Quad) (alignment, error) {
	if !AreInSamePlane(a, b) {
		return alignment{}, ErrNotCoplanar
	}
	e, ok := SharedEdge(a, b)
	if !ok {
		return alignment{}, ErrNoSharedEdge
	}
	for _, al := range alignments {
		if al.matches(a, b, e) {
			return al, nil
		}
	}
	return alignment{}, ErrJoinConfigurationNotFound
}

// CanJoin reports whether Join(a, b) would succeed.
func (g *Generator) CanJoin(a, b *Quad) bool {
	_, err := findAlignment(a, b)
	return err == nil
}

// Join replaces a and b with one quad spanning both and returns it.
func (g *Generator) Join(a, b *Quad) (*Quad, error) {
	if !g.HasQuad(a) || !g.HasQuad(b) {
		return nil, ErrUnknownQuad
	}
	al, err := findAlignment(a, b)
	if err != nil {
		return nil, fmt.Errorf("joining quads %d and %d: %w", a.id, b.id, err)
	}

	corners, uvs := al.merged(a, b)
	color, uniform := sharedColor(a, b)

	q := g.AddQuadUV(corners[0], corners[1], corners[2], corners[3], uvs)
	if uniform {
		q.SetColor(color)
	}

	g.RemoveQuad(a)
	g.RemoveQuad(b)

	return q, nil
}

// sharedColor returns the color of a and b when all their vertices agree.
func sharedColor(a, b *Quad) (math.Color, bool) {
	c := a.abc.a.Color
	for _, q := range [2]*Quad{a, b} {
		for _, v := range q.underlying() {
			if !v.Color.Equal(c) {
				return math.White, false
			}
		}
	}
	return c, true
}

// planeKey groups quads lying in exactly the same oriented plane.
type planeKey struct {
	nx, ny, nz float32
	d          float32
}

func keyOf(q *Quad) planeKey {
	n := q.Normal()
	return planeKey{n.X, n.Y, n.Z, q.SignedDistance()}
}

// MergeAdjacentQuads runs one greedy merge pass. Planar quads are grouped
// by plane; within a group every pair is tried once and a quad takes part
// in at most one join. Quads produced by this pass are only considered by
// the next one. It returns the number of joins performed; on error, the
// joins completed before the failing one.
func (g *Generator) MergeAdjacentQuads() (int, error) {
	var order []planeKey
	groups := make(map[planeKey][]*Quad)
	for _, q := range g.quads.values() {
		if !q.IsPlanar() {
			continue
		}
		k := keyOf(q)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], q)
	}

	var pairs [][2]*Quad
	used := make(map[*Quad]bool)
	for _, k := range order {
		quads := groups[k]
		for i, q := range quads {
			if used[q] {
				continue
			}
			for _, other := range quads[i+1:] {
				if used[other] {
					continue
				}
				if g.CanJoin(q, other) {
					pairs = append(pairs, [2]*Quad{q, other})
					used[q] = true
					used[other] = true
					break
				}
			}
		}
	}

	for i, p := range pairs {
		if _, err := g.Join(p[0], p[1]); err != nil {
			return i, err
		}
	}

	g.log.Debug("merged adjacent quads",
		zap.Int("planes", len(order)),
		zap.Int("joined", len(pairs)),
		zap.Int("quads", g.quads.len()))

	return len(pairs), nil
}

// Optimize runs up to steps merge passes. Each pass can merge quads the
// previous one produced; it stops early once a pass merges nothing.
func (g *Generator) Optimize(steps int) error {
	g.log.Debug("optimizing geometry", zap.Int("steps", steps))
	for i := 0; i < steps; i++ {
		n, err := g.MergeAdjacentQuads()
		if err != nil {
			return fmt.Errorf("optimize step %d: %w", i+1, err)
		}
		if n == 0 {
			break
		}
	}
	return nil
}
