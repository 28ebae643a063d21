package math

import "testing"

func TestEulerMatrixSingleAxis(t *testing.T) {
	tests := []struct {
		name string
		e    Euler
		want Mat4
	}{
		{"x", Euler{X: 0.7}, RotateX(0.7)},
		{"y", Euler{Y: -0.2 * Pi}, RotateY(-0.2 * Pi)},
		{"z", Euler{Z: 1.1}, RotateZ(1.1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.e.Matrix()
			for i := range got {
				if abs(got[i]-tt.want[i]) > 1e-5 {
					t.Errorf("element %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEulerMatrixOrder(t *testing.T) {
	e := Euler{X: 0.3, Y: -0.25, Z: 0.1}
	got := e.Matrix()
	want := RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
	for i := range got {
		if abs(got[i]-want[i]) > 1e-5 {
			t.Errorf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCompose(t *testing.T) {
	pos := Vec3{-5, 0, 10}
	rot := Euler{Y: 0.25 * Pi}
	scl := Vec3{2, 2, 2}

	got := Compose(pos, rot, scl)
	want := Translate(pos.X, pos.Y, pos.Z).Mul(rot.Matrix()).Mul(Scale(scl.X, scl.Y, scl.Z))
	for i := range got {
		if abs(got[i]-want[i]) > 1e-5 {
			t.Errorf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEulerFromMatrix(t *testing.T) {
	e := Euler{X: 0.3, Y: -0.4, Z: 0.2}
	got := EulerFromMatrix(e.Matrix())
	if !near3(Vec3(got), Vec3(e)) {
		t.Errorf("EulerFromMatrix: got %+v, want %+v", got, e)
	}
}

func TestUVTransformRepeat(t *testing.T) {
	m := UVTransform(Vec2{}, Vec2{9, 9}, 0, Vec2{})
	got := m.Apply(Vec2{1, 0.5})
	if abs(got.X-9) > 1e-5 || abs(got.Y-4.5) > 1e-5 {
		t.Errorf("repeat 9x9: got %v, want (9, 4.5)", got)
	}
}

func TestUVTransformIdentity(t *testing.T) {
	m := UVTransform(Vec2{}, Vec2{1, 1}, 0, Vec2{})
	if m != Identity3() {
		t.Errorf("default UV transform should be identity, got %v", m)
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	pos := Vec3{0.8, 0, -2}
	rot := Euler{X: 0.1, Y: 5.7 - 2*Pi, Z: -0.3}
	scale := Vec3{2, 1.8, 2.5}

	p, r, s := Decompose(Compose(pos, rot, scale))
	if !near3(p, pos) {
		t.Errorf("position: got %v, want %v", p, pos)
	}
	if !near3(s, scale) {
		t.Errorf("scale: got %v, want %v", s, scale)
	}
	if !near3(Vec3{r.X, r.Y, r.Z}, Vec3{rot.X, rot.Y, rot.Z}) {
		t.Errorf("rotation: got %v, want %v", r, rot)
	}
}
