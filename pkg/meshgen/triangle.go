package meshgen

import (
	"github.com/Faultbox/quadmesh/pkg/math"
)

// Triangle references three vertices in winding order.
type Triangle struct {
	id      uint64
	a, b, c *Vertex
}

func newTriangle(id uint64, a, b, c *Vertex) *Triangle {
	return &Triangle{id: id, a: a, b: b, c: c}
}

// ID returns the identity assigned by the owning generator.
func (t *Triangle) ID() uint64 { return t.id }

// A returns the first vertex.
func (t *Triangle) A() *Vertex { return t.a }

// B returns the second vertex.
func (t *Triangle) B() *Vertex { return t.b }

// C returns the third vertex.
func (t *Triangle) C() *Vertex { return t.c }

// Vertices returns A, B and C.
func (t *Triangle) Vertices() [3]*Vertex {
	return [3]*Vertex{t.a, t.b, t.c}
}

// Normal computes normalize((B-A) x (C-A)) from the current positions.
func (t *Triangle) Normal() math.Vec3 {
	return math.FaceNormal(t.a.position, t.b.position, t.c.position)
}

// SignedDistance returns the plane offset d in n·p + d = 0.
func (t *Triangle) SignedDistance() float32 {
	return -t.Normal().Dot(t.a.position)
}

// SetColor colors all three vertices.
func (t *Triangle) SetColor(c math.Color) {
	t.a.SetColor(c)
	t.b.SetColor(c)
	t.c.SetColor(c)
}

// CompareNormals returns the dot product of the two face normals.
// A result of 1 means both triangles face the same way.
func CompareNormals(a, b *Triangle) float32 {
	return a.Normal().Dot(b.Normal())
}
