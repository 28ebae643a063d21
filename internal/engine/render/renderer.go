// Package render draws a scene graph with the standard material model: a
// directional shadow pass followed by a lit, fogged main pass.
package render

import (
	"fmt"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hauntedhouse/internal/engine/camera"
	"github.com/Faultbox/hauntedhouse/internal/engine/framebuffer"
	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/internal/engine/render/shaders"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/internal/engine/shader"
	"github.com/Faultbox/hauntedhouse/internal/engine/shadow"
	"github.com/Faultbox/hauntedhouse/internal/engine/texture"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Fog is linear distance fog. The clear colour matches it.
type Fog struct {
	Color material.Color
	Near  float32
	Far   float32
}

// Config holds renderer configuration.
type Config struct {
	Width         int
	Height        int
	PixelRatio    float32
	PixelRatioCap float32
	Shadows       bool
	SoftShadows   bool
	Fog           *Fog
	// Offscreen renders every frame into a framebuffer instead of the
	// window, for display inside the debug panel.
	Offscreen bool
}

// FrameStats describes the last drawn frame.
type FrameStats struct {
	Opaque      int
	Transparent int
	Casters     int
	PointLights int
	DrawCalls   int
	Triangles   int
}

// texture units
const (
	unitMap uint32 = iota
	unitAlphaMap
	unitAOMap
	unitNormalMap
	unitRoughnessMap
	unitMetalnessMap
	unitDisplacementMap
	unitShadowMap
)

type mapSlot struct {
	unit    uint32
	sampler string
	has     string
	uv      string
}

var mapSlots = [...]mapSlot{
	{unitMap, "uMap", "uHasMap", "uMapUV"},
	{unitAlphaMap, "uAlphaMap", "uHasAlphaMap", "uAlphaMapUV"},
	{unitAOMap, "uAOMap", "uHasAOMap", "uAOMapUV"},
	{unitNormalMap, "uNormalMap", "uHasNormalMap", "uNormalMapUV"},
	{unitRoughnessMap, "uRoughnessMap", "uHasRoughnessMap", "uRoughnessMapUV"},
	{unitMetalnessMap, "uMetalnessMap", "uHasMetalnessMap", "uMetalnessMapUV"},
	{unitDisplacementMap, "uDisplacementMap", "uHasDisplacementMap", "uDisplacementUV"},
}

// Renderer draws scene graphs through OpenGL.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program
	depth   *shader.Program

	meshes    *meshCache
	textures  *texture.Cache
	shadowMap *shadow.Map

	list   DrawList
	lights *LightSet
	stats  FrameStats

	// Drawable size of the window and the size the scene is drawn at.
	drawW, drawH     int32
	renderW, renderH int32
	scaled           bool
	offscreen        *framebuffer.Framebuffer
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, textures *texture.Cache, log *zap.Logger) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{
		config:   cfg,
		log:      log,
		meshes:   newMeshCache(),
		textures: textures,
		lights:   NewLightSet(),
	}

	defines := map[string]string{
		"MAX_POINT_LIGHTS": strconv.Itoa(lighting.MaxPointLights),
	}
	if cfg.SoftShadows {
		defines["SOFT_SHADOWS"] = "1"
	}

	var err error
	r.program, err = shader.New("standard", shaders.StandardVertexShader, shaders.StandardFragmentShader, defines)
	if err != nil {
		return nil, err
	}
	r.depth, err = shader.New("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader, nil)
	if err != nil {
		r.program.Destroy()
		return nil, err
	}

	r.program.Use()
	for _, s := range mapSlots {
		r.program.SetInt(s.sampler, int32(s.unit))
	}
	r.program.SetInt("uShadowMap", int32(unitShadowMap))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	if err := r.Resize(cfg.Width, cfg.Height, cfg.PixelRatio); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Resize sets the window size in screen units and the display pixel ratio.
func (r *Renderer) Resize(width, height int, pixelRatio float32) error {
	r.config.Width, r.config.Height, r.config.PixelRatio = width, height, pixelRatio
	r.drawW, r.drawH, _ = renderSize(width, height, pixelRatio, 0)
	r.renderW, r.renderH, r.scaled = renderSize(width, height, pixelRatio, r.config.PixelRatioCap)

	if !r.config.Offscreen && !r.scaled {
		if r.offscreen != nil {
			r.offscreen.Destroy()
			r.offscreen = nil
		}
		return nil
	}
	if r.offscreen == nil {
		fb, err := framebuffer.New(r.renderW, r.renderH)
		if err != nil {
			return fmt.Errorf("render target: %w", err)
		}
		r.offscreen = fb
		return nil
	}
	r.offscreen.Resize(r.renderW, r.renderH)
	return nil
}

// Target returns the offscreen framebuffer, nil when drawing to the window.
func (r *Renderer) Target() *framebuffer.Framebuffer {
	return r.offscreen
}

// Lights exposes the light set of the last frame.
func (r *Renderer) Lights() *LightSet {
	return r.lights
}

// Stats returns counters for the last frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Draw renders root as seen from cam.
func (r *Renderer) Draw(root *scenegraph.Node, cam *camera.Perspective) {
	r.textures.Poll()

	view := cam.View()
	r.list.Build(root, view)
	r.lights.Collect(root)
	r.stats = FrameStats{
		Opaque:      len(r.list.Opaque),
		Transparent: len(r.list.Transparent),
		Casters:     len(r.list.Casters),
		PointLights: r.lights.Points.Count,
	}

	sun := r.lights.Sun
	shadows := r.config.Shadows && sun != nil && sun.Shadow.Enabled && r.ensureShadowMap(sun.Shadow.MapSize)
	lightViewProj := math.Identity()
	if shadows {
		lightViewProj = shadow.DirectionalMatrix(sun.Position, sun.Target, sun.Shadow)
		r.renderShadowPass(lightViewProj)
	}

	var restore func()
	if r.offscreen != nil {
		restore = r.offscreen.BindWithViewport()
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, r.drawW, r.drawH)
	}

	bg := material.Color{}
	if r.config.Fog != nil {
		bg = r.config.Fog.Color
	}
	gl.ClearColor(bg.R, bg.G, bg.B, 1)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	p := r.program
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uViewProj", cam.Projection().Mul(view))
	p.SetMat4("uLightViewProj", lightViewProj)
	p.SetVec3("uCameraPos", cam.Position.Array())
	r.setLightUniforms(shadows)
	r.setFogUniforms()

	gl.Disable(gl.BLEND)
	for _, it := range r.list.Opaque {
		r.drawItem(it)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	for _, it := range r.list.Transparent {
		r.drawItem(it)
	}
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	gl.BindVertexArray(0)

	if restore != nil {
		restore()
	}
	if r.scaled && !r.config.Offscreen {
		r.offscreen.BlitToScreen(r.drawW, r.drawH)
	}
}

func (r *Renderer) ensureShadowMap(size int32) bool {
	if r.shadowMap != nil && r.shadowMap.Resolution == size {
		return true
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	sm, err := shadow.NewMap(size)
	if err != nil {
		r.log.Warn("shadows disabled", zap.Error(err))
		r.config.Shadows = false
		return false
	}
	r.shadowMap = sm
	return true
}

func (r *Renderer) renderShadowPass(lightViewProj math.Mat4) {
	restore := r.shadowMap.Bind()
	defer restore()

	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)

	r.depth.Use()
	r.depth.SetMat4("uLightViewProj", lightViewProj)
	for _, it := range r.list.Casters {
		r.depth.SetMat4("uModel", it.World)
		r.meshes.get(it.Node.Mesh).draw()
	}
}

func (r *Renderer) setLightUniforms(shadows bool) {
	p := r.program
	ls := r.lights

	p.SetVec3("uAmbient", ls.Ambient)
	p.SetBool("uSunEnabled", ls.Sun != nil)
	if ls.Sun != nil {
		p.SetVec3("uSunDir", ls.Sun.Direction.Array())
		p.SetVec3("uSunColor", ls.Sun.Radiance)
	}

	p.SetInt("uPointLightCount", int32(ls.Points.Count))
	p.SetVec3Array("uPointLightPositions", ls.Points.Positions())
	p.SetVec3Array("uPointLightColors", ls.Points.Colors())
	p.SetFloatArray("uPointLightRanges", ls.Points.Ranges())
	p.SetFloatArray("uPointLightDecays", ls.Points.Decays())

	p.SetBool("uShadowsEnabled", shadows)
	if shadows {
		p.SetFloat("uShadowBias", ls.Sun.Shadow.Bias)
		p.SetFloat("uShadowMapSize", float32(r.shadowMap.Resolution))
		r.shadowMap.BindTexture(gl.TEXTURE0 + unitShadowMap)
	}
}

func (r *Renderer) setFogUniforms() {
	p := r.program
	fog := r.config.Fog
	p.SetBool("uFogUse", fog != nil)
	if fog == nil {
		return
	}
	p.SetFloat("uFogNear", fog.Near)
	p.SetFloat("uFogFar", fog.Far)
	p.SetVec3("uFogColor", fog.Color.Linear().Array())
}

func (r *Renderer) drawItem(it Item) {
	p := r.program
	m := it.Node.Material

	p.SetMat4("uModel", it.World)
	p.SetMat3("uNormalMatrix", it.World.NormalMatrix())
	p.SetVec3("uColor", m.Color.Linear().Array())
	p.SetFloat("uOpacity", m.Opacity)
	p.SetFloat("uRoughness", m.Roughness)
	p.SetFloat("uMetalness", m.Metalness)
	p.SetFloat("uAOMapIntensity", m.AOMapIntensity)
	p.SetFloat("uDisplacementScale", m.DisplacementScale)
	p.SetBool("uDoubleSided", m.DoubleSided)
	p.SetBool("uReceiveShadow", it.Node.ReceiveShadow)

	refs := [...]*material.TextureRef{
		m.Map, m.AlphaMap, m.AOMap, m.NormalMap, m.RoughnessMap, m.MetalnessMap, m.DisplacementMap,
	}
	for i, s := range mapSlots {
		r.bindMap(s, refs[i])
	}

	if m.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	gl.DepthMask(m.DepthWrite)

	gm := r.meshes.get(it.Node.Mesh)
	gm.draw()
	r.stats.DrawCalls++
	r.stats.Triangles += int(gm.indexCount / 3)
}

func (r *Renderer) bindMap(s mapSlot, ref *material.TextureRef) {
	id, ok := r.textures.Get(ref)
	r.program.SetBool(s.has, ok)
	if !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + s.unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
	r.program.SetMat3(s.uv, ref.UVTransform())
}

// Close releases all GPU resources owned by the renderer.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.meshes.destroy()
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.offscreen != nil {
		r.offscreen.Destroy()
	}
	if r.program != nil {
		r.program.Destroy()
	}
	if r.depth != nil {
		r.depth.Destroy()
	}
}
