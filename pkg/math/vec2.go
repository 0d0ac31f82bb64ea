package math

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Equal reports whether both components are exactly equal.
func (v Vec2) Equal(other Vec2) bool {
	return v.X == other.X && v.Y == other.Y
}
