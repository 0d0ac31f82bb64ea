// Package meshgen builds triangle/quad meshes procedurally, merges coplanar
// neighbouring quads into larger ones and flattens the result into packed
// buffers for a renderer.
package meshgen

import (
	"github.com/Faultbox/quadmesh/pkg/math"
)

// Vertex is a mesh corner. Its position never changes; the shading
// attributes may be edited in place.
type Vertex struct {
	id       uint64
	position math.Vec3

	Normal    math.Vec3
	UV        math.Vec2
	Color     math.Color
	FaceIndex int // Logical face the vertex was created for
}

func newVertex(id uint64, position, normal math.Vec3) *Vertex {
	return &Vertex{
		id:       id,
		position: position,
		Normal:   normal,
		Color:    math.White,
	}
}

// ID returns the identity assigned by the owning generator.
func (v *Vertex) ID() uint64 {
	return v.id
}

// Position returns the vertex position.
func (v *Vertex) Position() math.Vec3 {
	return v.position
}

// SetColor sets the vertex color.
func (v *Vertex) SetColor(c math.Color) {
	v.Color = c
}

// ComparePosition reports whether a and b sit at exactly the same position.
func ComparePosition(a, b *Vertex) bool {
	return a.position.Equal(b.position)
}

// CompareNormal reports whether a and b have exactly the same normal.
func CompareNormal(a, b *Vertex) bool {
	return a.Normal.Equal(b.Normal)
}

// CompareUV reports whether a and b have exactly the same texture coordinate.
func CompareUV(a, b *Vertex) bool {
	return a.UV.Equal(b.UV)
}

// Compare reports whether a and b match in position, normal and UV.
func Compare(a, b *Vertex) bool {
	return ComparePosition(a, b) && CompareNormal(a, b) && CompareUV(a, b)
}
