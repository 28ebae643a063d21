// Package camera provides the perspective camera the scene is viewed
// through and mouse-driven orbit controls for it.
package camera

import (
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Perspective is a pinhole camera looking from Position at Target.
type Perspective struct {
	FOV    float32 // vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	return &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math.Vec3{Z: -1},
		Up:     math.Vec3{Y: 1},
	}
}

// SetAspect updates the aspect ratio from a viewport size. A zero-sized
// viewport (minimised window) leaves the camera unchanged.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// LookAt points the camera at target.
func (c *Perspective) LookAt(target math.Vec3) {
	c.Target = target
}

// Projection returns the projection matrix.
func (c *Perspective) Projection() math.Mat4 {
	return math.Perspective(math.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// View returns the view matrix.
func (c *Perspective) View() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ViewProjection returns Projection·View.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.Projection().Mul(c.View())
}

// ViewDepth returns the distance of a world point in front of the camera
// along its viewing axis.
func (c *Perspective) ViewDepth(p math.Vec3) float32 {
	return -c.View().TransformPoint(p).Z
}
