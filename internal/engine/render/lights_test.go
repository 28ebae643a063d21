package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

func TestCollectLights(t *testing.T) {
	root := scenegraph.NewGroup("scene")
	moonlight := &lighting.Directional{Color: material.White, Intensity: 0.5, Shadow: lighting.DefaultShadow()}
	root.MustAdd(
		scenegraph.NewLight("ambient", &lighting.Ambient{Color: material.White, Intensity: 0.1}),
		scenegraph.NewLight("ambient2", &lighting.Ambient{Color: material.White, Intensity: 0.2}),
		scenegraph.NewLight("moon", moonlight).SetPosition(0, 10, 0),
		scenegraph.NewLight("second-sun", &lighting.Directional{Color: material.White, Intensity: 9}),
	)
	house := scenegraph.NewGroup("house").SetPosition(3, 0, 0)
	house.MustAdd(scenegraph.NewLight("door", lighting.NewPoint(material.White, 3, 7)).SetPosition(0, 2.7, 2.7))
	root.MustAdd(house)

	s := NewLightSet()
	s.Collect(root)

	assert.InDelta(t, 0.3, s.Ambient[0], 1e-5, "ambient lights add up")
	require.NotNil(t, s.Sun)
	assert.Equal(t, math.V3(0, 10, 0), s.Sun.Position)
	assert.Equal(t, math.V3(0, -1, 0), s.Sun.Direction)
	assert.InDelta(t, 0.5, s.Sun.Radiance[1], 1e-5)

	require.Equal(t, 1, s.Points.Count)
	assert.Equal(t, [3]float32{3, 2.7, 2.7}, s.Points.Lights[0].Position)
}

func TestCollectLightsCapsPoints(t *testing.T) {
	root := scenegraph.NewGroup("scene")
	for i := 0; i < lighting.MaxPointLights+2; i++ {
		root.MustAdd(scenegraph.NewLight("ghost", lighting.NewPoint(material.White, 6, 3)))
	}

	s := NewLightSet()
	s.Collect(root)
	assert.Equal(t, lighting.MaxPointLights, s.Points.Count)
	assert.Equal(t, 2, s.Dropped)

	s.Collect(scenegraph.NewGroup("empty"))
	assert.Zero(t, s.Points.Count)
	assert.Zero(t, s.Dropped)
	assert.Nil(t, s.Sun)
}

func TestCollectLightsSkipsHidden(t *testing.T) {
	root := scenegraph.NewGroup("scene")
	ghost := scenegraph.NewLight("ghost", lighting.NewPoint(material.White, 6, 3))
	ghost.Visible = false
	root.MustAdd(ghost)

	s := NewLightSet()
	s.Collect(root)
	assert.Zero(t, s.Points.Count)
}
