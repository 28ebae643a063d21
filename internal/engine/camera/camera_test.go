package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/hauntedhouse/pkg/math"
)

func sceneCamera() *Perspective {
	c := NewPerspective(75, 1280.0/720.0, 0.1, 100)
	c.Position = math.V3(4, 2, 5)
	c.LookAt(math.Vec3{})
	return c
}

func TestSetAspectOnlyTouchesAspect(t *testing.T) {
	c := sceneCamera()
	view := c.View()
	before := *c

	c.SetAspect(800, 800)
	assert.Equal(t, float32(1), c.Aspect)
	assert.Equal(t, view, c.View())
	assert.Equal(t, before.Position, c.Position)
	assert.Equal(t, before.FOV, c.FOV)

	c.SetAspect(0, 600)
	assert.Equal(t, float32(1), c.Aspect, "minimised window keeps aspect")
}

func TestViewDepth(t *testing.T) {
	c := sceneCamera()
	assert.InDelta(t, math.V3(4, 2, 5).Length(), c.ViewDepth(math.Vec3{}), 1e-4)
	assert.Less(t, c.ViewDepth(math.V3(8, 4, 10)), float32(0), "behind the camera")
}

func TestOrbitControlsPreservesStartPosition(t *testing.T) {
	c := sceneCamera()
	o := NewOrbitControls(c)

	assert.False(t, o.Update(), "no input, no movement")
	assert.InDelta(t, 4, c.Position.X, 1e-4)
	assert.InDelta(t, 2, c.Position.Y, 1e-4)
	assert.InDelta(t, 5, c.Position.Z, 1e-4)
}

func TestOrbitControlsDampedRotation(t *testing.T) {
	c := sceneCamera()
	o := NewOrbitControls(c)
	radius := c.Position.Length()
	yaw0 := o.Yaw

	o.Rotate(100, 0, 720)
	assert.True(t, o.Update())
	first := o.Yaw - yaw0

	o.Update()
	second := o.Yaw - yaw0 - first
	assert.Less(t, math.Abs(second), math.Abs(first), "motion decays")
	assert.Greater(t, math.Abs(second), float32(0), "motion continues after input")
	assert.InDelta(t, radius, c.Position.Length(), 1e-4, "rotation keeps the distance")

	// Converges on the full input once damping settles.
	for i := 0; i < 500; i++ {
		o.Update()
	}
	want := -100 * 2 * math.Pi / 720
	assert.InDelta(t, want, o.Yaw-yaw0, 1e-3)
}

func TestOrbitControlsWithoutDamping(t *testing.T) {
	c := sceneCamera()
	o := NewOrbitControls(c)
	o.EnableDamping = false

	o.Rotate(0, 10000, 720)
	o.Update()
	assert.InDelta(t, pitchLimit, o.Pitch, 1e-6, "pitch is clamped below the pole")
	assert.False(t, o.Update())
}

func TestOrbitControlsZoomClamps(t *testing.T) {
	c := sceneCamera()
	o := NewOrbitControls(c)
	d0 := o.Distance

	o.Zoom(1)
	o.Update()
	assert.InDelta(t, d0*0.95, o.Distance, 1e-4)

	for i := 0; i < 200; i++ {
		o.Zoom(-1)
		o.Update()
	}
	assert.Equal(t, o.MaxDistance, o.Distance)
}

func TestOrbitControlsPanMovesTarget(t *testing.T) {
	c := sceneCamera()
	o := NewOrbitControls(c)
	o.EnableDamping = false

	o.Pan(50, 0, 720)
	o.Update()
	assert.NotEqual(t, math.Vec3{}, o.Target)
	assert.Equal(t, o.Target, c.Target)
	assert.InDelta(t, math.V3(4, 2, 5).Length(), c.Position.Distance(c.Target), 1e-4)
}
