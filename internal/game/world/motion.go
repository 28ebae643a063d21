package world

import (
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Wave is Amp·sin(Freq·t + Phase).
type Wave struct {
	Amp   float32
	Freq  float32
	Phase float32
}

// At evaluates the wave at time t.
func (w Wave) At(t float32) float32 {
	return w.Amp * math.Sin(w.Freq*t+w.Phase)
}

// Motion describes a closed path around the Y axis:
//
//	x = cos(Omega·t)·(Radius + RadiusX(t))
//	z = sin(Omega·t)·(Radius + RadiusZ(t))
//	y = BaseY + Σ Bob(t)
//
// Spin, when set, drives the yaw.
type Motion struct {
	Omega   float32
	Radius  float32
	RadiusX *Wave
	RadiusZ *Wave
	Bob     []Wave
	BaseY   float32
	Spin    *Wave
}

// Evaluate returns the position and yaw at time t. It has no side effects.
func (m Motion) Evaluate(t float32) (pos math.Vec3, spinY float32, hasSpin bool) {
	rx, rz := m.Radius, m.Radius
	if m.RadiusX != nil {
		rx += m.RadiusX.At(t)
	}
	if m.RadiusZ != nil {
		rz += m.RadiusZ.At(t)
	}

	angle := m.Omega * t
	pos = math.Vec3{
		X: math.Cos(angle) * rx,
		Y: m.BaseY,
		Z: math.Sin(angle) * rz,
	}
	for _, w := range m.Bob {
		pos.Y += w.At(t)
	}

	if m.Spin != nil {
		return pos, m.Spin.At(t), true
	}
	return pos, 0, false
}

// RadiusBounds returns the range of the horizontal distance from the axis.
func (m Motion) RadiusBounds() (lo, hi float32) {
	var mod float32
	if m.RadiusX != nil {
		mod = math.Abs(m.RadiusX.Amp)
	}
	if m.RadiusZ != nil {
		if a := math.Abs(m.RadiusZ.Amp); a > mod {
			mod = a
		}
	}
	return m.Radius - mod, m.Radius + mod
}

// Animated binds a node to the motion that moves it every frame.
type Animated struct {
	Name   string
	Node   *scenegraph.Node
	Motion Motion
}

// Apply writes the motion at time t onto the node transform.
func (a *Animated) Apply(t float32) {
	pos, spin, ok := a.Motion.Evaluate(t)
	a.Node.SetPositionVec(pos)
	if ok {
		a.Node.SetRotationY(spin)
	}
}
