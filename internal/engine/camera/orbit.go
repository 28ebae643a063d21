package camera

import (
	gomath "math"

	"github.com/Faultbox/hauntedhouse/pkg/math"
)

const pitchLimit = float32(gomath.Pi/2 - 0.01)

// OrbitControls rotates, zooms and pans a camera around a target point.
// Input accumulates into deltas that Update applies, decaying them by the
// damping factor each frame so motion glides to a stop.
type OrbitControls struct {
	cam *Perspective

	Target math.Vec3

	// Spherical coordinates of the camera relative to Target.
	Distance float32
	Pitch    float32 // elevation above the XZ plane, radians
	Yaw      float32 // rotation about +Y from +Z towards +X, radians

	MinDistance float32
	MaxDistance float32

	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32

	deltaYaw   float32
	deltaPitch float32
	panOffset  math.Vec3
	zoomScale  float32
}

// NewOrbitControls derives the orbit from the camera's current position
// and target.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	o := &OrbitControls{
		cam:           cam,
		Target:        cam.Target,
		MinDistance:   0.5,
		MaxDistance:   60,
		EnableDamping: true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		zoomScale:     1,
	}
	o.syncFromCamera()
	return o
}

func (o *OrbitControls) syncFromCamera() {
	offset := o.cam.Position.Sub(o.Target)
	o.Distance = offset.Length()
	if o.Distance == 0 {
		o.Distance = 1
		offset = math.Vec3{Z: 1}
	}
	o.Pitch = float32(gomath.Asin(float64(math.Clamp(offset.Y/o.Distance, -1, 1))))
	o.Yaw = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
}

// Rotate handles a drag of dx, dy pixels in a viewport height pixels tall.
// A drag across the full height turns the camera once around.
func (o *OrbitControls) Rotate(dx, dy float32, height int) {
	if height <= 0 {
		return
	}
	full := 2 * math.Pi / float32(height) * o.RotateSpeed
	o.deltaYaw -= dx * full
	o.deltaPitch += dy * full
}

// Zoom handles wheel input; positive values move towards the target.
func (o *OrbitControls) Zoom(wheel float32) {
	step := float32(gomath.Pow(0.95, float64(o.ZoomSpeed)))
	switch {
	case wheel > 0:
		o.zoomScale *= step
	case wheel < 0:
		o.zoomScale /= step
	}
}

// Pan slides the target in the camera plane by a drag of dx, dy pixels.
func (o *OrbitControls) Pan(dx, dy float32, height int) {
	if height <= 0 {
		return
	}
	// World units per pixel at the target distance.
	perPixel := 2 * o.Distance * float32(gomath.Tan(float64(math.DegToRad(o.cam.FOV))/2)) / float32(height)

	forward := o.Target.Sub(o.cam.Position).Normalize()
	right := forward.Cross(o.cam.Up).Normalize()
	up := right.Cross(forward)

	o.panOffset = o.panOffset.
		Add(right.Scale(-dx * perPixel * o.PanSpeed)).
		Add(up.Scale(dy * perPixel * o.PanSpeed))
}

// Update applies pending input to the camera. It reports whether the
// camera moved.
func (o *OrbitControls) Update() bool {
	f := float32(1)
	if o.EnableDamping {
		f = o.DampingFactor
	}

	prev := o.cam.Position

	o.Yaw += o.deltaYaw * f
	o.Pitch = math.Clamp(o.Pitch+o.deltaPitch*f, -pitchLimit, pitchLimit)
	o.Distance = math.Clamp(o.Distance*o.zoomScale, o.MinDistance, o.MaxDistance)
	o.Target = o.Target.Add(o.panOffset.Scale(f))

	if o.EnableDamping {
		o.deltaYaw *= 1 - f
		o.deltaPitch *= 1 - f
		o.panOffset = o.panOffset.Scale(1 - f)
	} else {
		o.deltaYaw, o.deltaPitch = 0, 0
		o.panOffset = math.Vec3{}
	}
	o.zoomScale = 1

	cp := math.Cos(o.Pitch)
	o.cam.Position = o.Target.Add(math.Vec3{
		X: o.Distance * cp * math.Sin(o.Yaw),
		Y: o.Distance * math.Sin(o.Pitch),
		Z: o.Distance * cp * math.Cos(o.Yaw),
	})
	o.cam.Target = o.Target

	return o.cam.Position.Distance(prev) > 1e-4
}
