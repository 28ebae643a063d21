package world

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/hauntedhouse/pkg/math"
)

func allMotions() map[string]Motion {
	out := make(map[string]Motion)
	for _, l := range GhostLights {
		out[l.Name] = l.Motion
	}
	for _, g := range GhostModels {
		out[g.Name] = *g.Motion
	}
	return out
}

func TestMotion_EvaluateIsPure(t *testing.T) {
	for name, m := range allMotions() {
		for _, ts := range []float32{0, 0.016, 1, 12.5, 600} {
			p1, s1, ok1 := m.Evaluate(ts)
			p2, s2, ok2 := m.Evaluate(ts)
			assert.Equal(t, p1, p2, name)
			assert.Equal(t, s1, s2, name)
			assert.Equal(t, ok1, ok2, name)
		}
	}
}

func TestMotion_StartsOnXAxis(t *testing.T) {
	m := Motion{Omega: 1.3, Radius: 3, BaseY: 1.5, Bob: []Wave{{Amp: 1, Freq: 2}}}
	pos, _, _ := m.Evaluate(0)
	assert.Equal(t, math.Vec3{X: 3, Y: 1.5, Z: 0}, pos)

	for name, m := range allMotions() {
		pos, _, _ := m.Evaluate(0)
		assert.InDelta(t, m.Radius, pos.X, 1e-6, name)
		assert.InDelta(t, 0, pos.Y, 1e-6, name)
		assert.InDelta(t, 0, pos.Z, 1e-6, name)
	}
}

func TestMotion_RadiusStaysInBounds(t *testing.T) {
	lo, hi := wobblyOrbit.RadiusBounds()
	assert.Equal(t, float32(6), lo)
	assert.Equal(t, float32(8), hi)

	for ts := float32(0); ts < 300; ts += 0.37 {
		pos, _, _ := wobblyOrbit.Evaluate(ts)
		d := math.Sqrt(pos.X*pos.X + pos.Z*pos.Z)
		assert.GreaterOrEqual(t, d, lo-1e-4, "t=%v", ts)
		assert.LessOrEqual(t, d, hi+1e-4, "t=%v", ts)
	}
}

func TestMotion_ConstantRadius(t *testing.T) {
	lo, hi := innerOrbit.RadiusBounds()
	assert.Equal(t, lo, hi)
	for _, ts := range []float32{0.5, 3, 17} {
		pos, _, _ := innerOrbit.Evaluate(ts)
		assert.InDelta(t, 6.5, math.Sqrt(pos.X*pos.X+pos.Z*pos.Z), 1e-4)
	}
}

func TestMotion_Spin(t *testing.T) {
	g1 := *GhostModels[0].Motion
	_, spin, ok := g1.Evaluate(gomath.Pi / 4)
	assert.True(t, ok)
	assert.InDelta(t, 1, spin, 1e-5)

	g2 := *GhostModels[1].Motion
	_, spin, ok = g2.Evaluate(gomath.Pi / 4)
	assert.True(t, ok)
	assert.InDelta(t, -1, spin, 1e-5)

	_, _, ok = GhostModels[2].Motion.Evaluate(1)
	assert.False(t, ok)
}

func TestMotion_GhostTwoBobsAgainstItsLight(t *testing.T) {
	light := GhostLights[1].Motion
	model := *GhostModels[1].Motion
	for _, ts := range []float32{0.3, 1.7, 9} {
		lp, _, _ := light.Evaluate(ts)
		mp, _, _ := model.Evaluate(ts)
		assert.InDelta(t, lp.X, mp.X, 1e-5)
		assert.InDelta(t, lp.Z, mp.Z, 1e-5)
		assert.InDelta(t, -lp.Y, mp.Y, 1e-5)
	}
	// mirrored must not alias the shared orbit.
	assert.Equal(t, float32(2), outerOrbit.Bob[0].Freq)
}

func TestManualClock(t *testing.T) {
	var c ManualClock
	assert.Equal(t, float32(0), c.Elapsed())
	c.Advance(0.5)
	c.Advance(0.25)
	assert.Equal(t, float32(0.75), c.Elapsed())
	c.Set(10)
	assert.Equal(t, float32(10), c.Elapsed())
}

func TestSystemClockIsMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Elapsed()
	b := c.Elapsed()
	assert.GreaterOrEqual(t, b, a)
	assert.GreaterOrEqual(t, a, float32(0))
}
