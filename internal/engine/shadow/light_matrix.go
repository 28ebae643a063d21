package shadow

import (
	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// DirectionalMatrix computes the light view-projection for a directional
// light placed at lightPos looking at target, with the orthographic box
// taken from the light's shadow parameters.
func DirectionalMatrix(lightPos, target math.Vec3, p lighting.ShadowParams) math.Mat4 {
	dir := target.Sub(lightPos).Normalize()

	// Avoid an up vector parallel to the view direction.
	up := math.Vec3{Y: 1}
	if math.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}

	view := math.LookAt(lightPos, target, up)
	proj := math.Ortho(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
	return proj.Mul(view)
}

// BiasMatrix maps clip space [-1, 1] to texture space [0, 1].
func BiasMatrix() math.Mat4 {
	return math.Mat4{
		0.5, 0, 0, 0,
		0, 0.5, 0, 0,
		0, 0, 0.5, 0,
		0.5, 0.5, 0.5, 1,
	}
}
