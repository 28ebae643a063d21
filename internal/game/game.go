// Package game wires the window, renderer and world together and runs the
// frame loop.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hauntedhouse/internal/assets"
	"github.com/Faultbox/hauntedhouse/internal/config"
	"github.com/Faultbox/hauntedhouse/internal/engine/audio"
	"github.com/Faultbox/hauntedhouse/internal/engine/camera"
	"github.com/Faultbox/hauntedhouse/internal/engine/debug"
	"github.com/Faultbox/hauntedhouse/internal/engine/input"
	"github.com/Faultbox/hauntedhouse/internal/engine/picking"
	"github.com/Faultbox/hauntedhouse/internal/engine/render"
	"github.com/Faultbox/hauntedhouse/internal/engine/texture"
	"github.com/Faultbox/hauntedhouse/internal/engine/ui"
	"github.com/Faultbox/hauntedhouse/internal/engine/window"
	"github.com/Faultbox/hauntedhouse/internal/game/world"
)

const title = "Haunted House"

// Game is the running scene.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	// Exactly one of window and backend is set.
	window  *window.Window
	input   *input.Input
	backend *ui.Backend
	panel   *ui.Panel

	assets   *assets.Manager
	models   *assets.ModelLoader
	textures *texture.Cache
	renderer *render.Renderer
	world    *world.World
	controls *camera.OrbitControls
	audio    *audio.Player
	fps      fpsCounter
	shots    *debug.ScreenshotCapture
	capture  bool

	width, height int
}

// New creates the window (or the debug panel) and builds the scene.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("panel", cfg.Debug.Panel))

	g := &Game{
		cfg:    cfg,
		log:    log,
		shots:  debug.NewScreenshotCapture("screenshots", "hauntedhouse"),
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
	}

	fog, err := fogFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	pixelRatio := float32(1)
	if cfg.Debug.Panel {
		g.backend, err = ui.NewBackend(title, g.width, g.height, fog.Color.Array(), log.Named("ui"))
		if err != nil {
			return nil, fmt.Errorf("create debug panel: %w", err)
		}
		g.backend.OnRelease(g.releaseGL)
	} else {
		g.window, err = window.New(window.Config{
			Title:      title,
			Width:      g.width,
			Height:     g.height,
			Fullscreen: cfg.Graphics.Fullscreen,
			VSync:      cfg.Graphics.VSync,
		}, log.Named("window"))
		if err != nil {
			return nil, fmt.Errorf("failed to create window: %w", err)
		}
		g.width, g.height = g.window.GetSize()
		pixelRatio = g.window.PixelRatio()
		g.input = input.New()
	}

	if err := g.setup(fog, pixelRatio); err != nil {
		g.Close()
		return nil, err
	}

	log.Info("scene ready", zap.Int("nodes", g.world.Root.Count()))
	return g, nil
}

// setup creates everything that needs a live GL context.
func (g *Game) setup(fog *render.Fog, pixelRatio float32) error {
	g.assets = assets.NewManager()
	if err := g.assets.AddRoot(g.cfg.Scene.AssetRoot); err != nil {
		return fmt.Errorf("asset root: %w", err)
	}
	g.models = assets.NewModelLoader(g.assets, g.log.Named("models"), 64)
	g.textures = texture.NewCache(g.assets, texture.GLUploader{Anisotropy: g.cfg.Graphics.Anisotropy}, g.log.Named("textures"), 0)

	var err error
	g.renderer, err = render.New(render.Config{
		Width:         g.width,
		Height:        g.height,
		PixelRatio:    pixelRatio,
		PixelRatioCap: g.cfg.Graphics.PixelRatioCap,
		Shadows:       g.cfg.Graphics.Shadows,
		SoftShadows:   g.cfg.Graphics.SoftShadows,
		Fog:           fog,
		Offscreen:     g.cfg.Debug.Panel,
	}, g.textures, g.log.Named("render"))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	g.world = world.New(world.NewSystemClock(), g.models, g.renderer, g.log.Named("world"))
	world.NewBuilder(worldOptions(g.cfg)).Build(g.world)
	g.world.Resize(g.width, g.height)
	requestTextures(g.world, g.textures)

	g.controls = camera.NewOrbitControls(g.world.Camera)
	g.controls.EnableDamping = g.cfg.Camera.Damping > 0
	g.controls.DampingFactor = g.cfg.Camera.Damping

	g.startAmbience()

	if g.backend != nil {
		g.panel = &ui.Panel{
			Ambient:  g.world.Ambient,
			Moon:     g.world.Moon,
			MoonNode: g.world.MoonNode,
			Audio:    g.audio,
		}
	}
	return nil
}

// startAmbience loops the configured background track. A missing or broken
// file leaves the scene silent.
func (g *Game) startAmbience() {
	path := g.cfg.Audio.Ambience
	if path == "" {
		return
	}
	data, err := g.assets.Load(path)
	if err != nil {
		g.log.Warn("ambience unavailable", zap.String("path", path), zap.Error(err))
		return
	}
	p := audio.New(g.cfg.Audio.Volume)
	if err := p.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		return
	}
	if err := p.Play(data, path); err != nil {
		g.log.Warn("ambience unavailable", zap.String("path", path), zap.Error(err))
		p.Close()
		return
	}
	g.audio = p
}

// Run starts the frame loop and returns when the window closes.
func (g *Game) Run() error {
	g.running = true
	g.log.Info("starting frame loop")
	if g.backend != nil {
		g.backend.Run(g.panelFrame)
		return nil
	}

	for g.running {
		if g.input.Update() {
			g.running = false
			break
		}
		for _, ev := range g.input.Events() {
			g.handle(ev)
		}

		g.controls.Update()
		g.world.Tick()
		if g.capture {
			g.screenshot()
		}
		g.window.SwapBuffers()
		g.countFrame()
	}
	return nil
}

func (g *Game) handle(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		g.resize(ev.Width, ev.Height)
	case input.EventKeyDown:
		g.run(keyCommand(ev.Key))
	case input.EventMouseMove:
		dx, dy := float32(ev.DeltaX), float32(ev.DeltaY)
		switch {
		case g.input.ButtonDown(sdl.BUTTON_LEFT):
			g.controls.Rotate(dx, dy, g.height)
		case g.input.ButtonDown(sdl.BUTTON_RIGHT):
			g.controls.Pan(dx, dy, g.height)
		}
	case input.EventMouseWheel:
		g.controls.Zoom(ev.Wheel)
	}
}

// command is a hotkey action shared by the window and the panel.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdScreenshot
	cmdToggleAudio
)

func keyCommand(key sdl.Scancode) command {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return cmdQuit
	case sdl.SCANCODE_F12:
		return cmdScreenshot
	case sdl.SCANCODE_M:
		return cmdToggleAudio
	}
	return cmdNone
}

func panelCommands(k ui.Keys) []command {
	var cmds []command
	if k.Quit {
		cmds = append(cmds, cmdQuit)
	}
	if k.Screenshot {
		cmds = append(cmds, cmdScreenshot)
	}
	if k.ToggleAudio {
		cmds = append(cmds, cmdToggleAudio)
	}
	return cmds
}

func (g *Game) run(cmd command) {
	switch cmd {
	case cmdQuit:
		g.running = false
		if g.backend != nil {
			g.backend.Quit()
		}
	case cmdScreenshot:
		g.capture = true
	case cmdToggleAudio:
		if g.audio != nil {
			g.audio.SetPaused(g.audio.Playing())
		}
	}
}

// screenshot saves the frame just drawn: the window back buffer, or the
// scene target under the panel.
func (g *Game) screenshot() {
	g.capture = false
	var (
		pixels []byte
		w, h   int
	)
	if t := g.renderer.Target(); t != nil {
		tw, th := t.Size()
		pixels, w, h = t.ReadPixels(), int(tw), int(th)
	} else {
		w, h = g.window.DrawableSize()
		pixels = debug.ReadBackbuffer(int32(w), int32(h))
	}
	path, err := g.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) resize(width, height int) {
	if width <= 0 || height <= 0 || (width == g.width && height == g.height) {
		return
	}
	g.width, g.height = width, height

	ratio := float32(1)
	if g.window != nil {
		ratio = g.window.PixelRatio()
	}
	if err := g.renderer.Resize(width, height, ratio); err != nil {
		g.log.Error("resize", zap.Error(err))
	}
	g.world.Resize(width, height)
	g.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// panelFrame is one frame under the ImGui backend: the previous scene image
// is shown, its mouse input drives the camera, then the next image is drawn.
func (g *Game) panelFrame() {
	w, h, scale := g.backend.Viewport()
	if int(w) != g.width || int(h) != g.height {
		g.width, g.height = int(w), int(h)
		if err := g.renderer.Resize(g.width, g.height, scale); err != nil {
			g.log.Error("resize", zap.Error(err))
		}
		g.world.Resize(g.width, g.height)
	}

	var tex uint32
	if t := g.renderer.Target(); t != nil {
		tex = t.ColorTexture()
	}
	in := g.panel.Scene(tex, w, h)
	if in.RotateX != 0 || in.RotateY != 0 {
		g.controls.Rotate(in.RotateX, in.RotateY, g.height)
	}
	if in.PanX != 0 || in.PanY != 0 {
		g.controls.Pan(in.PanX, in.PanY, g.height)
	}
	if in.Wheel != 0 {
		g.controls.Zoom(in.Wheel)
	}

	for _, cmd := range panelCommands(in.Keys) {
		g.run(cmd)
	}

	g.controls.Update()
	g.world.Tick()
	if g.capture {
		g.screenshot()
	}
	g.countFrame()

	stats := g.panelStats()
	if in.Hovering {
		stats.Hovered = g.hovered(in.Mouse[0], in.Mouse[1], w, h)
	}
	g.panel.Debug(stats)
}

// hovered names the mesh under the cursor, or "" when there is none.
func (g *Game) hovered(x, y, w, h float32) string {
	ray := picking.ScreenToRay(x, y, w, h, g.world.Camera.ViewProjection())
	hit, ok := picking.Pick(g.world.Root, ray)
	if !ok {
		return ""
	}
	return picking.Path(g.world.Root, hit.Node)
}

func (g *Game) panelStats() ui.Stats {
	ws := g.world.Stats()
	rs := g.renderer.Stats()
	return ui.Stats{
		FPS:         g.fps.rate,
		Loading:     ws.Loads.Loading,
		Attached:    ws.Loads.Attached,
		Failed:      ws.Loads.Failed,
		Nodes:       ws.Nodes,
		DrawCalls:   rs.DrawCalls,
		Triangles:   rs.Triangles,
		PointLights: rs.PointLights,
	}
}

func (g *Game) countFrame() {
	if !g.fps.tick(time.Now()) {
		return
	}
	ws := g.world.Stats()
	rs := g.renderer.Stats()
	g.log.Debug("fps",
		zap.Float32("fps", g.fps.rate),
		zap.Int("draw_calls", rs.DrawCalls),
		zap.Int("triangles", rs.Triangles),
		zap.Int("loading", ws.Loads.Loading),
		zap.Int("failed", ws.Loads.Failed))
	if g.cfg.Debug.ShowFPS && g.window != nil {
		g.window.SetTitle(fmt.Sprintf("%s - %.0f fps", title, g.fps.rate))
	}
}

// Close releases every resource.
func (g *Game) Close() {
	g.log.Info("closing")
	if g.audio != nil {
		g.audio.Close()
	}
	g.releaseGL()
	if g.assets != nil {
		g.assets.Close()
	}
	if g.backend != nil {
		g.backend.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// releaseGL frees GPU resources. It must run while the GL context is
// current; under the panel the backend calls it before tearing down.
func (g *Game) releaseGL() {
	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.textures != nil {
		g.textures.Destroy()
		g.textures = nil
	}
}
