// Package lighting holds the light types placed in the scene and the flat
// buffers they are packed into for shader upload.
package lighting

import (
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Kind identifies a light type.
type Kind int

// Light kinds.
const (
	KindAmbient Kind = iota
	KindDirectional
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindAmbient:
		return "ambient"
	case KindDirectional:
		return "directional"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Light is implemented by every light type. The position of a light is the
// world position of the scene node that carries it.
type Light interface {
	Kind() Kind
}

// ShadowParams configures a light's shadow map.
type ShadowParams struct {
	Enabled bool
	MapSize int32
	Near    float32
	Far     float32
	// Orthographic bounds, used by directional lights only.
	Left, Right, Top, Bottom float32
	Bias                     float32
}

// DefaultShadow mirrors common engine defaults: 512 texels, 0.5..500.
func DefaultShadow() ShadowParams {
	return ShadowParams{
		MapSize: 512,
		Near:    0.5,
		Far:     500,
		Left:    -5,
		Right:   5,
		Top:     5,
		Bottom:  -5,
	}
}

// Ambient lights every surface evenly.
type Ambient struct {
	Color     material.Color
	Intensity float32
}

// Kind implements Light.
func (*Ambient) Kind() Kind { return KindAmbient }

// Directional is an infinitely distant light shining from its node position
// towards Target.
type Directional struct {
	Color     material.Color
	Intensity float32
	Target    math.Vec3
	Shadow    ShadowParams
}

// Kind implements Light.
func (*Directional) Kind() Kind { return KindDirectional }

// Direction returns the normalized direction light travels, from position
// towards the target.
func (d *Directional) Direction(position math.Vec3) math.Vec3 {
	dir := d.Target.Sub(position).Normalize()
	if dir == (math.Vec3{}) {
		return math.Vec3{Y: -1}
	}
	return dir
}

// Point emits in all directions, fading to zero at Distance.
type Point struct {
	Color     material.Color
	Intensity float32
	Distance  float32 // 0 means no cutoff
	Decay     float32
	Shadow    ShadowParams
}

// Kind implements Light.
func (*Point) Kind() Kind { return KindPoint }

// NewPoint returns a point light with linear decay and no shadow.
func NewPoint(color material.Color, intensity, distance float32) *Point {
	return &Point{
		Color:     color,
		Intensity: intensity,
		Distance:  distance,
		Decay:     1,
		Shadow:    DefaultShadow(),
	}
}

// Attenuation returns the falloff factor at distance d.
func (p *Point) Attenuation(d float32) float32 {
	if p.Distance <= 0 {
		return 1
	}
	f := math.Clamp(1-d/p.Distance, 0, 1)
	if p.Decay == 1 {
		return f
	}
	return pow(f, p.Decay)
}
