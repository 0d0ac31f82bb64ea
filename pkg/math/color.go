package math

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// White is the default vertex color.
var White = Color{1, 1, 1}

// Equal reports whether all channels are exactly equal.
func (c Color) Equal(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}
