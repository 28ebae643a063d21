package render

import (
	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Sun is the frame's directional light resolved to world space.
type Sun struct {
	Position  math.Vec3
	Target    math.Vec3
	Direction math.Vec3
	Radiance  [3]float32 // linear colour times intensity
	Shadow    lighting.ShadowParams
}

// LightSet is every light under a root, gathered once per frame.
type LightSet struct {
	Ambient [3]float32
	Sun     *Sun
	Points  *lighting.PointLightBuffer

	// Dropped counts point lights beyond lighting.MaxPointLights.
	Dropped int
}

// NewLightSet creates an empty light set.
func NewLightSet() *LightSet {
	return &LightSet{Points: lighting.NewPointLightBuffer()}
}

// Collect walks the visible nodes under root. Ambient lights add up, the
// first directional light becomes the sun and point lights fill the buffer
// in traversal order.
func (s *LightSet) Collect(root *scenegraph.Node) {
	s.Ambient = [3]float32{}
	s.Sun = nil
	s.Points.Clear()
	s.Dropped = 0
	if root == nil {
		return
	}

	root.TraverseVisible(func(n *scenegraph.Node) {
		if n.Kind != scenegraph.KindLight || n.Light == nil {
			return
		}
		switch l := n.Light.(type) {
		case *lighting.Ambient:
			c := l.Color.Linear().Scale(l.Intensity)
			s.Ambient[0] += c.R
			s.Ambient[1] += c.G
			s.Ambient[2] += c.B

		case *lighting.Directional:
			if s.Sun != nil {
				return
			}
			pos := n.WorldPosition()
			s.Sun = &Sun{
				Position:  pos,
				Target:    l.Target,
				Direction: l.Direction(pos),
				Radiance:  l.Color.Linear().Scale(l.Intensity).Array(),
				Shadow:    l.Shadow,
			}

		case *lighting.Point:
			if !s.Points.AddLight(lighting.Pack(l, n.WorldPosition().Array())) {
				s.Dropped++
			}
		}
	})
}
