package world

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hauntedhouse/internal/engine/geometry"
	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Options tunes the parts of the scene that are not fixed by the layout.
type Options struct {
	GraveCount int
	GraveSeed  int64   // 0 picks a time-based seed
	Ghosts     bool    // load the ghost models
	GhostFade  float32 // seconds; 0 shows ghosts at full opacity at once

	FOV            float32
	Near           float32
	Far            float32
	CameraPosition math.Vec3
}

// DefaultOptions returns the default scene layout.
func DefaultOptions() Options {
	return Options{
		GraveCount:     60,
		Ghosts:         true,
		GhostFade:      1.5,
		FOV:            CameraFOV,
		Near:           CameraNear,
		Far:            CameraFar,
		CameraPosition: CameraPosition,
	}
}

// Builder populates a World once at startup.
type Builder struct {
	opts Options
	rng  *rand.Rand
}

// NewBuilder creates a builder. Grave placement is reproducible for a
// non-zero seed.
func NewBuilder(opts Options) *Builder {
	seed := opts.GraveSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Builder{
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Build adds the static scene, the lights and the camera to w and requests
// every model. Models are attached later by World.Tick as they complete.
func (b *Builder) Build(w *World) {
	b.camera(w)

	w.Root.MustAdd(
		b.house(),
		b.floor(),
		b.grass(),
		b.stoneWall(),
		b.graves(),
	)
	b.lights(w)

	w.fadeTime = b.opts.GhostFade
	w.Group(ironFenceGroup)
	for _, spec := range StaticModels {
		w.RequestModel(spec)
	}
	if b.opts.Ghosts {
		for _, spec := range GhostModels {
			w.RequestModel(spec)
		}
	}

	w.log.Info("scene built",
		zap.Int("nodes", w.Root.Count()),
		zap.Int("models", w.loads.Stats().Total()),
		zap.Int("graves", b.opts.GraveCount))
}

func (b *Builder) camera(w *World) {
	cam := w.Camera
	if b.opts.FOV > 0 {
		cam.FOV = b.opts.FOV
	}
	if b.opts.Near > 0 {
		cam.Near = b.opts.Near
	}
	if b.opts.Far > 0 {
		cam.Far = b.opts.Far
	}
	cam.Position = b.opts.CameraPosition
	cam.LookAt(math.Vec3{})
}

func texturePath(set, name string) string {
	return "textures/" + set + "/" + name
}

func (b *Builder) house() *scenegraph.Node {
	house := scenegraph.NewGroup("house").
		SetPosition(3, 0, 0).
		SetRotationY(math.Pi * -0.2)

	wallMat := material.NewStandard()
	wallMat.Name = "bricks"
	wallMat.Map = material.ColorTexture(texturePath("bricks", "color.jpg"))
	wallMat.AOMap = material.Texture(texturePath("bricks", "ambientOcclusion.jpg"))
	wallMat.NormalMap = material.Texture(texturePath("bricks", "normal.jpg"))
	wallMat.RoughnessMap = material.Texture(texturePath("bricks", "roughness.jpg"))
	walls := scenegraph.NewMesh("walls", geometry.Box(4.5, 4, 4), wallMat).
		SetPosition(0, 1.5, 0)
	walls.CastShadow = true

	roofTex := func(name string) *material.TextureRef {
		return material.Texture(texturePath("roof", name)).Tiled(2, 1).Rotated(-math.Pi * 0.002)
	}
	roofMat := material.NewStandard()
	roofMat.Name = "roof"
	roofMat.Map = roofTex("color.jpg")
	roofMat.Map.SRGB = true
	roofMat.AOMap = roofTex("ambientOcclusion.jpg")
	roofMat.NormalMap = roofTex("normal.jpg")
	roofMat.RoughnessMap = roofTex("roughness.jpg")
	roofMat.Transparent = true
	roof := scenegraph.NewMesh("roof", geometry.Cylinder(0, 4, 6, 4, 1, false), roofMat).
		SetPosition(0, 6, 0).
		SetRotationY(math.Pi * 0.25)
	roof.CastShadow = true

	doorMat := material.NewStandard()
	doorMat.Name = "door"
	doorMat.Map = material.ColorTexture(texturePath("door", "color.jpg"))
	doorMat.AlphaMap = material.Texture(texturePath("door", "alpha.jpg"))
	doorMat.AOMap = material.Texture(texturePath("door", "ambientOcclusion.jpg"))
	doorMat.DisplacementMap = material.Texture(texturePath("door", "height.jpg"))
	doorMat.DisplacementScale = 0.2
	doorMat.MetalnessMap = material.Texture(texturePath("door", "metalness.jpg"))
	doorMat.NormalMap = material.Texture(texturePath("door", "normal.jpg"))
	doorMat.RoughnessMap = material.Texture(texturePath("door", "roughness.jpg"))
	doorMat.Transparent = true
	door := scenegraph.NewMesh("door", geometry.Plane(2, 2, 100, 100), doorMat).
		SetPosition(0, 0.9, 2.01)

	house.MustAdd(walls, roof, door)

	bushGeo := geometry.Sphere(1, 16, 16)
	bushMat := material.NewStandard()
	bushMat.Name = "bush"
	bushMat.Color = material.MustColor(bushColor)
	for i, bu := range bushes {
		n := scenegraph.NewMesh(fmt.Sprintf("bush-%d", i+1), bushGeo, bushMat).
			SetPositionVec(bu.Position).
			SetUniformScale(bu.Scale)
		n.CastShadow = true
		house.MustAdd(n)
	}

	light := lighting.NewPoint(material.MustColor(doorLightColor), 3, 7)
	light.Shadow = pointShadow()
	house.MustAdd(scenegraph.NewLight("door-light", light).SetPosition(0, 2.7, 2.7))

	return house
}

func (b *Builder) floor() *scenegraph.Node {
	mat := material.NewStandard()
	mat.Name = "floor"
	mat.Color = material.MustColor(floorColor)
	return scenegraph.NewMesh("floor", geometry.Plane(30, 30, 1, 1), mat).
		SetRotation(-math.Pi*0.5, 0, 0).
		SetShadows(true, true)
}

func (b *Builder) grass() *scenegraph.Node {
	tex := func(name string) *material.TextureRef {
		return material.Texture(texturePath("grass", name)).Tiled(9, 9)
	}
	mat := material.NewStandard()
	mat.Name = "grass"
	mat.Map = tex("color.jpg")
	mat.Map.SRGB = true
	mat.AOMap = tex("ambientOcclusion.jpg")
	mat.NormalMap = tex("normal.jpg")
	mat.RoughnessMap = tex("roughness.jpg")
	return scenegraph.NewMesh("grass", geometry.Plane(30, 30, 1, 1), mat).
		SetPosition(0, 0.01, 0).
		SetRotation(-math.Pi*0.5, 0, 0).
		SetShadows(false, true)
}

// stoneWall closes the graveyard at the back. Its roughness is read from the
// normal map.
func (b *Builder) stoneWall() *scenegraph.Node {
	tex := func(name string) *material.TextureRef {
		return material.Texture(texturePath("wall", name)).Tiled(4, 1)
	}
	mat := material.NewStandard()
	mat.Name = "stone-wall"
	mat.Map = tex("color.jpg")
	mat.Map.SRGB = true
	mat.AOMap = tex("ambientOcclusion.jpg")
	mat.NormalMap = tex("normal.jpg")
	mat.RoughnessMap = tex("normal.jpg")
	return scenegraph.NewMesh("stone-wall", geometry.Box(30, 6, 0.5), mat).
		SetPosition(0, 0, -14).
		SetShadows(true, true)
}

// graves scatters tombstones on a ring of radius 5..13 around the origin.
func (b *Builder) graves() *scenegraph.Node {
	group := scenegraph.NewGroup("graves")
	geo := geometry.Box(0.6, 0.8, 0.2)
	mat := material.NewStandard()
	mat.Name = "grave"
	mat.Color = material.MustColor(graveColor)

	for i := 0; i < b.opts.GraveCount; i++ {
		angle := b.rng.Float32() * math.Pi * 2
		radius := 5 + b.rng.Float32()*8
		x := math.Sin(angle) * radius
		z := math.Cos(angle) * radius

		rotY := (b.rng.Float32() - 0.5) * 0.7
		rotX := (b.rng.Float32() - 0.5) * 0.8
		rotZ := (b.rng.Float32() - 0.5) * 0.4

		g := scenegraph.NewMesh(fmt.Sprintf("grave-%d", i+1), geo, mat).
			SetPosition(x, 0.3, z).
			SetRotation(rotX, rotY, rotZ)
		g.CastShadow = true
		group.MustAdd(g)
	}
	return group
}

func (b *Builder) lights(w *World) {
	w.Ambient = &lighting.Ambient{
		Color:     material.MustColor(ambientColor),
		Intensity: ambientIntensity,
	}
	w.Moon = &lighting.Directional{
		Color:     material.MustColor(moonColor),
		Intensity: moonIntensity,
		Shadow:    moonShadow(),
	}
	w.MoonNode = scenegraph.NewLight("moon", w.Moon).SetPositionVec(MoonPosition)
	w.Root.MustAdd(scenegraph.NewLight("ambient", w.Ambient), w.MoonNode)

	for _, gl := range GhostLights {
		p := lighting.NewPoint(material.MustColor(gl.Color), ghostLightPower, ghostLightReach)
		p.Shadow = pointShadow()
		n := scenegraph.NewLight(gl.Name, p)
		w.Root.MustAdd(n)
		w.Animate(gl.Name, n, gl.Motion)
	}
}
