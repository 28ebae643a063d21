package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

func moonShadow() lighting.ShadowParams {
	return lighting.ShadowParams{
		Enabled: true,
		MapSize: 256,
		Near:    0.1,
		Far:     30,
		Left:    -30,
		Right:   30,
		Top:     30,
		Bottom:  -30,
		Bias:    -0.002,
	}
}

func TestDirectionalMatrixCentresTarget(t *testing.T) {
	m := DirectionalMatrix(math.V3(10, 10, -8.7), math.Vec3{}, moonShadow())
	clip := m.TransformPoint(math.Vec3{})

	assert.InDelta(t, 0, clip.X, 1e-4)
	assert.InDelta(t, 0, clip.Y, 1e-4)
	assert.Greater(t, clip.Z, float32(-1))
	assert.Less(t, clip.Z, float32(1))
}

func TestDirectionalMatrixCoversGraveyard(t *testing.T) {
	m := DirectionalMatrix(math.V3(10, 10, -8.7), math.Vec3{}, moonShadow())
	// Points on the floor inside the graveyard ring land in the shadow map.
	for _, p := range []math.Vec3{{X: 13}, {X: -13}, {Z: 13}, {Z: -13}, {X: 3, Y: 4}} {
		c := m.TransformPoint(p)
		assert.True(t, math.Abs(c.X) <= 1 && math.Abs(c.Y) <= 1, "point %v outside light frustum: %v", p, c)
	}
}

func TestDirectionalMatrixVerticalLight(t *testing.T) {
	m := DirectionalMatrix(math.V3(0, 20, 0), math.Vec3{}, moonShadow())
	for _, v := range m {
		assert.False(t, v != v, "NaN in matrix for vertical light")
	}
}

func TestBiasMatrix(t *testing.T) {
	b := BiasMatrix()
	got := b.TransformPoint(math.V3(-1, 1, 0))
	assert.Equal(t, math.V3(0, 1, 0.5), got)
}
