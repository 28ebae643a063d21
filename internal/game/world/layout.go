package world

import (
	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Scene constants. Colours are sRGB hex strings.
const (
	FogColor = "#262837"
	FogNear  = 2
	FogFar   = 25

	CameraFOV  = 75
	CameraNear = 0.1
	CameraFar  = 100

	moonColor        = "#b9d5ff"
	moonIntensity    = 0.6
	ambientColor     = "#b9d5ff"
	ambientIntensity = 0.11
	doorLightColor   = "#ff7d46"
	floorColor       = "#a9c388"
	bushColor        = "#89c854"
	graveColor       = "#b2b6b1"
	shadowMapSize    = 256
	pointShadowFar   = 7
	ghostOpacity     = 0.5
	ghostScale       = 2
	ghostLightPower  = 6
	ghostLightReach  = 3
	modelDir         = "models/Models/GLB format/"
	ironFenceGroup   = "graveyard-iron-fence"
)

// CameraPosition is where the camera starts, looking at the origin.
var CameraPosition = math.Vec3{X: 4, Y: 2, Z: 5}

// MoonPosition is the initial moon light position.
var MoonPosition = math.Vec3{X: 10, Y: 10, Z: -8.7}

// Placement is the transform applied to a loaded model's root.
type Placement struct {
	Position  math.Vec3
	RotationY float32
	Scale     math.Vec3
}

func (p Placement) apply(n *scenegraph.Node) {
	n.SetPositionVec(p.Position).SetRotationY(p.RotationY).SetScale(p.Scale.X, p.Scale.Y, p.Scale.Z)
}

// Finish overrides material parameters on every mesh of a loaded model.
type Finish struct {
	Metalness *float32
	Roughness *float32
	Ghost     bool // translucent without depth writes
}

func (f Finish) apply(m *material.Standard) {
	if f.Metalness != nil {
		m.Metalness = *f.Metalness
	}
	if f.Roughness != nil {
		m.Roughness = *f.Roughness
	}
	if f.Ghost {
		m.Transparent = true
		m.Opacity = ghostOpacity
		m.DepthWrite = false
	}
}

// ModelSpec is one GLB instance in the scene.
type ModelSpec struct {
	Name  string
	Model string // file name under the model directory, without extension
	Group string // parent group name; empty attaches to the scene root
	Placement
	CastShadow    bool
	ReceiveShadow bool
	Finish        Finish
	Motion        *Motion // set for models that move every frame
}

// Path returns the asset path of the model file.
func (s ModelSpec) Path() string {
	return modelDir + s.Model + ".glb"
}

// GhostLight is a coloured point light circling the house.
type GhostLight struct {
	Name   string
	Color  string
	Motion Motion
}

type bush struct {
	Position math.Vec3
	Scale    float32
}

func f32(v float32) *float32 { return &v }

func scale3(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

var bushes = []bush{
	{math.Vec3{X: 1.2, Y: 0.2, Z: 2.2}, 0.5},
	{math.Vec3{X: 1.6, Y: 0.1, Z: 2.1}, 0.25},
	{math.Vec3{X: -1, Y: 0.1, Z: 2.2}, 0.4},
	{math.Vec3{X: -1, Y: 0.05, Z: 2.6}, 0.15},
}

func ironFence(name, model string, x, z float32, s math.Vec3) ModelSpec {
	return ModelSpec{
		Name:  name,
		Model: model,
		Group: ironFenceGroup,
		Placement: Placement{
			Position:  math.Vec3{X: x, Z: z},
			RotationY: math.Pi * 0.5,
			Scale:     s,
		},
		CastShadow:    true,
		ReceiveShadow: true,
	}
}

func prop(name, model string, pos math.Vec3, rotY float32, finish Finish) ModelSpec {
	return ModelSpec{
		Name:          name,
		Model:         model,
		Placement:     Placement{Position: pos, RotationY: rotY, Scale: math.Splat(2)},
		CastShadow:    true,
		ReceiveShadow: true,
		Finish:        finish,
	}
}

// StaticModels lists every model that never moves after it is attached.
var StaticModels = []ModelSpec{
	prop("fence-broken", "fence-damaged", math.Vec3{X: -0.7, Z: -3.1}, 5.7, Finish{}),
	prop("fence", "fence", math.Vec3{X: 0.8, Z: -2}, 5.7, Finish{Roughness: f32(0.2)}),

	ironFence("iron-fence-1", "iron-fence-damaged", 15, 0, scale3(4, 4, 2)),
	ironFence("iron-fence-2", "iron-fence-damaged", 15, 4, scale3(4, 4, 2)),
	ironFence("iron-fence-3", "iron-fence", 15.5, 8, scale3(4, 4, 3)),
	ironFence("iron-fence-4", "iron-fence-damaged", 15, 12, scale3(4, 4, 2)),
	ironFence("iron-fence-5", "iron-fence-damaged", 15, -4, scale3(4, 4, 2)),
	ironFence("iron-fence-6", "iron-fence", 15, -8, scale3(4, 4, 2)),
	ironFence("iron-fence-7", "iron-fence", 15, -12, scale3(4, 4, 2)),
	ironFence("iron-fence-8", "iron-fence", -14, 0, scale3(4, 4, 2)),
	ironFence("iron-fence-9", "iron-fence", -14, 4, scale3(4, 4, 2)),
	ironFence("iron-fence-10", "iron-fence-damaged", -14, 8, scale3(4, 4, 2)),
	ironFence("iron-fence-11", "iron-fence-damaged", -14, 12, scale3(4, 4, 2)),
	ironFence("iron-fence-12", "iron-fence-damaged", -14, -4, scale3(4, 4, 2)),
	ironFence("iron-fence-13", "iron-fence", -14, -8, scale3(4, 4, 2)),
	ironFence("iron-fence-14", "iron-fence", -14, -12, scale3(4, 4, 2)),

	prop("shovel", "shovel", math.Vec3{X: -5, Z: 10}, math.Pi*0.25, Finish{Metalness: f32(0.7), Roughness: f32(0.2)}),
	prop("bench", "bench-damaged", math.Vec3{X: -12, Z: 10}, math.Pi*0.25, Finish{Metalness: f32(0.7), Roughness: f32(0.2)}),
	prop("coffin", "coffin-old", math.Vec3{X: -6, Z: -8}, math.Pi*0.5, Finish{Roughness: f32(0.2)}),
}

// The ghost models and lights share three paths. Light 2 bobs in the
// opposite phase of model 2.
var (
	innerOrbit = Motion{
		Omega:  0.5,
		Radius: 6.5,
		Bob:    []Wave{{Amp: 1, Freq: 2}},
	}
	outerOrbit = Motion{
		Omega:  -0.32,
		Radius: 7.5,
		Bob:    []Wave{{Amp: 1, Freq: 2}, {Amp: 1, Freq: 2.5}},
	}
	wobblyOrbit = Motion{
		Omega:   -0.21,
		Radius:  7,
		RadiusX: &Wave{Amp: 1, Freq: 0.32},
		RadiusZ: &Wave{Amp: 1, Freq: 0.5},
		Bob:     []Wave{{Amp: 1, Freq: 5}, {Amp: 1, Freq: 2}},
	}
)

// GhostLights are the three coloured lights circling the house.
var GhostLights = []GhostLight{
	{Name: "ghost-light-1", Color: "#ffffff", Motion: innerOrbit},
	{Name: "ghost-light-2", Color: "#ffffe0", Motion: outerOrbit},
	{Name: "ghost-light-3", Color: "#00ffff", Motion: wobblyOrbit},
}

func ghost(name string, pos math.Vec3, m Motion) ModelSpec {
	return ModelSpec{
		Name:      name,
		Model:     "character-ghost",
		Placement: Placement{Position: pos, Scale: math.Splat(ghostScale)},
		Finish:    Finish{Ghost: true},
		Motion:    &m,
	}
}

func withSpin(m Motion, w Wave) Motion {
	m.Spin = &w
	return m
}

func mirrored(m Motion) Motion {
	bob := make([]Wave, len(m.Bob))
	for i, w := range m.Bob {
		w.Freq = -w.Freq
		bob[i] = w
	}
	m.Bob = bob
	return m
}

// GhostModels are the translucent ghosts following the lights.
var GhostModels = []ModelSpec{
	ghost("ghost-1", math.Vec3{X: -3, Z: 2}, withSpin(innerOrbit, Wave{Amp: 1, Freq: 2})),
	ghost("ghost-2", math.Vec3{X: -4, Z: 2}, withSpin(mirrored(outerOrbit), Wave{Amp: 1, Freq: -2})),
	ghost("ghost-3", math.Vec3{X: -4, Z: 2}, wobblyOrbit),
}

func moonShadow() lighting.ShadowParams {
	return lighting.ShadowParams{
		Enabled: true,
		MapSize: shadowMapSize,
		Near:    0.1,
		Far:     30,
		Left:    -30,
		Right:   30,
		Top:     30,
		Bottom:  -30,
		Bias:    -0.002,
	}
}

func pointShadow() lighting.ShadowParams {
	s := lighting.DefaultShadow()
	s.Enabled = true
	s.MapSize = shadowMapSize
	s.Far = pointShadowFar
	return s
}
