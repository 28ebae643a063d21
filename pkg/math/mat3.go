package math

// Mat3 is a 3x3 column-major matrix, used for normal and UV transforms.
type Mat3 [9]float32

// Identity3 returns a 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// UVTransform builds the texture coordinate matrix for a texture with the
// given offset, repeat and rotation about center.
func UVTransform(offset, repeat Vec2, rotation float32, center Vec2) Mat3 {
	c, s := Cos(rotation), Sin(rotation)
	sx, sy := repeat.X, repeat.Y

	return Mat3{
		sx * c, -sy * s, 0,
		sx * s, sy * c, 0,
		-sx*(c*center.X+s*center.Y) + center.X + offset.X,
		-sy*(-s*center.X+c*center.Y) + center.Y + offset.Y,
		1,
	}
}

// Apply transforms a 2D point (w=1).
func (m Mat3) Apply(p Vec2) Vec2 {
	return Vec2{
		m[0]*p.X + m[3]*p.Y + m[6],
		m[1]*p.X + m[4]*p.Y + m[7],
	}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat3) Ptr() *float32 {
	return &m[0]
}
