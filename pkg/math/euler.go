package math

// Euler is a rotation in radians applied in X, then Y, then Z intrinsic
// order, giving the matrix Rx·Ry·Rz.
type Euler struct {
	X, Y, Z float32
}

// Matrix returns the rotation matrix for e.
func (e Euler) Matrix() Mat4 {
	a, b := Cos(e.X), Sin(e.X)
	c, d := Cos(e.Y), Sin(e.Y)
	ce, f := Cos(e.Z), Sin(e.Z)

	ae, af := a*ce, a*f
	be, bf := b*ce, b*f

	return Mat4{
		c * ce, af + be*d, bf - ae*d, 0,
		-c * f, ae - bf*d, be + af*d, 0,
		d, -b * c, a * c, 0,
		0, 0, 0, 1,
	}
}

// Compose builds T·R·S from a position, rotation and scale.
func Compose(position Vec3, rotation Euler, scale Vec3) Mat4 {
	m := rotation.Matrix()
	m[0], m[1], m[2] = m[0]*scale.X, m[1]*scale.X, m[2]*scale.X
	m[4], m[5], m[6] = m[4]*scale.Y, m[5]*scale.Y, m[6]*scale.Y
	m[8], m[9], m[10] = m[8]*scale.Z, m[9]*scale.Z, m[10]*scale.Z
	m[12], m[13], m[14] = position.X, position.Y, position.Z
	return m
}

// EulerFromMatrix extracts XYZ angles from a pure rotation matrix.
func EulerFromMatrix(m Mat4) Euler {
	m11, m12, m13 := m[0], m[4], m[8]
	m22, m23 := m[5], m[9]
	m32, m33 := m[6], m[10]

	var e Euler
	e.Y = asin(Clamp(m13, -1, 1))
	if Abs(m13) < 0.9999999 {
		e.X = atan2(-m23, m33)
		e.Z = atan2(-m12, m11)
	} else {
		e.X = atan2(m32, m22)
	}
	return e
}

// Decompose splits an affine T·R·S matrix into its parts. Negative scale
// is folded into the X axis.
func Decompose(m Mat4) (position Vec3, rotation Euler, scale Vec3) {
	sx := Vec3{m[0], m[1], m[2]}.Length()
	sy := Vec3{m[4], m[5], m[6]}.Length()
	sz := Vec3{m[8], m[9], m[10]}.Length()

	det := m[0]*(m[5]*m[10]-m[9]*m[6]) - m[4]*(m[1]*m[10]-m[9]*m[2]) + m[8]*(m[1]*m[6]-m[5]*m[2])
	if det < 0 {
		sx = -sx
	}

	r := m
	for i, s := range [3]float32{sx, sy, sz} {
		if s == 0 {
			continue
		}
		r[i*4] /= s
		r[i*4+1] /= s
		r[i*4+2] /= s
	}
	r[12], r[13], r[14] = 0, 0, 0

	return m.Translation(), EulerFromMatrix(r), Vec3{sx, sy, sz}
}
