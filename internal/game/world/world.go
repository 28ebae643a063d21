// Package world holds the haunted house scene: the static graph built at
// startup, the asynchronous model loads that complete into it, and the
// per-frame update that moves the ghosts.
package world

import (
	"github.com/google/uuid"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/Faultbox/hauntedhouse/internal/assets"
	"github.com/Faultbox/hauntedhouse/internal/engine/camera"
	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
)

// ModelSource starts model loads and delivers their results.
type ModelSource interface {
	Load(path string) uuid.UUID
	Results() <-chan assets.ModelResult
}

// Drawer renders a scene graph.
type Drawer interface {
	Draw(root *scenegraph.Node, cam *camera.Perspective)
}

// Stats is a snapshot of the world for logs and the debug panel.
type Stats struct {
	Loads    LoadStats
	Animated int
	Nodes    int
	Frames   uint64
	Elapsed  float32
}

// World is the scene state shared by the builder and the frame updater.
// Every method must be called from the same goroutine.
type World struct {
	Root   *scenegraph.Node
	Camera *camera.Perspective

	// Set by the builder; the debug panel edits them live.
	Ambient  *lighting.Ambient
	Moon     *lighting.Directional
	MoonNode *scenegraph.Node

	clock   Clock
	models  ModelSource
	results <-chan assets.ModelResult
	drawer  Drawer
	log     *zap.Logger

	loads    *Loads
	groups   map[string]*scenegraph.Node
	animated []*Animated
	fades    []*fade
	fadeTime float32

	last   float32
	frames uint64
}

// New creates an empty world. models and drawer may be nil.
func New(clock Clock, models ModelSource, drawer Drawer, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	cam := camera.NewPerspective(CameraFOV, 1, CameraNear, CameraFar)
	cam.Position = CameraPosition

	w := &World{
		Root:   scenegraph.NewGroup("scene"),
		Camera: cam,
		clock:  clock,
		models: models,
		drawer: drawer,
		log:    log,
		loads:  NewLoads(log),
		groups: make(map[string]*scenegraph.Node),
	}
	if models != nil {
		w.results = models.Results()
	}
	return w
}

// Loads returns the model load registry.
func (w *World) Loads() *Loads { return w.loads }

// Animated returns the objects moved every frame.
func (w *World) Animated() []*Animated { return w.animated }

// Group returns a named group directly under the root, creating it if needed.
// The empty name is the root itself.
func (w *World) Group(name string) *scenegraph.Node {
	if name == "" {
		return w.Root
	}
	if g, ok := w.groups[name]; ok {
		return g
	}
	g := scenegraph.NewGroup(name)
	w.Root.MustAdd(g)
	w.groups[name] = g
	return g
}

// Animate registers a node to be moved by m every frame.
func (w *World) Animate(name string, node *scenegraph.Node, m Motion) *Animated {
	a := &Animated{Name: name, Node: node, Motion: m}
	w.animated = append(w.animated, a)
	return a
}

// RequestModel starts loading spec and tracks it until it settles.
func (w *World) RequestModel(spec ModelSpec) *PendingLoad {
	if w.models == nil {
		w.log.Warn("no model source, skipping", zap.String("name", spec.Name))
		return nil
	}
	id := w.models.Load(spec.Path())
	return w.loads.Register(id, spec)
}

// Tick runs one frame: attach finished loads, move every animated object to
// the current time, advance fades, then draw.
func (w *World) Tick() {
	w.drainLoads()

	t := w.clock.Elapsed()
	dt := t - w.last
	if dt < 0 {
		dt = 0
	}
	w.last = t

	for _, a := range w.animated {
		a.Apply(t)
	}
	w.advanceFades(dt)

	if w.drawer != nil {
		w.drawer.Draw(w.Root, w.Camera)
	}
	w.frames++
}

// Resize updates the camera aspect for a new viewport. Nothing else changes.
func (w *World) Resize(width, height int) {
	w.Camera.SetAspect(width, height)
}

// Stats returns counters for the current frame.
func (w *World) Stats() Stats {
	return Stats{
		Loads:    w.loads.Stats(),
		Animated: len(w.animated),
		Nodes:    w.Root.Count(),
		Frames:   w.frames,
		Elapsed:  w.last,
	}
}

func (w *World) drainLoads() {
	for w.results != nil {
		select {
		case r, ok := <-w.results:
			if !ok {
				w.results = nil
				return
			}
			w.complete(r)
		default:
			return
		}
	}
}

func (w *World) complete(r assets.ModelResult) {
	p, attach := w.loads.Settle(r)
	if !attach {
		return
	}
	spec := p.Spec
	root := r.Root
	root.Name = spec.Name
	spec.Placement.apply(root)

	root.Meshes(func(n *scenegraph.Node) {
		n.CastShadow = spec.CastShadow
		n.ReceiveShadow = spec.ReceiveShadow
		if n.Material != nil {
			spec.Finish.apply(n.Material)
		}
	})

	if err := w.Group(spec.Group).Add(root); err != nil {
		p.State = StateFailed
		p.Err = err
		w.log.Error("attach model", zap.String("name", spec.Name), zap.Error(err))
		return
	}

	if spec.Motion != nil {
		w.Animate(spec.Name, root, *spec.Motion)
	}
	if spec.Finish.Ghost && w.fadeTime > 0 {
		w.fades = append(w.fades, newFade(root, ghostOpacity, w.fadeTime))
	}

	w.log.Debug("model attached",
		zap.String("name", spec.Name),
		zap.Int("nodes", root.Count()))
}

func (w *World) advanceFades(dt float32) {
	live := w.fades[:0]
	for _, f := range w.fades {
		if !f.update(dt) {
			live = append(live, f)
		}
	}
	w.fades = live
}

// fade eases the opacity of a model's materials from zero to a target.
type fade struct {
	tween     *gween.Tween
	materials []*material.Standard
}

func newFade(root *scenegraph.Node, target, seconds float32) *fade {
	f := &fade{tween: gween.New(0, target, seconds, ease.OutQuad)}
	seen := make(map[*material.Standard]bool)
	root.Meshes(func(n *scenegraph.Node) {
		if n.Material == nil || seen[n.Material] {
			return
		}
		seen[n.Material] = true
		n.Material.Opacity = 0
		f.materials = append(f.materials, n.Material)
	})
	return f
}

// update advances the fade and reports whether it has finished.
func (f *fade) update(dt float32) bool {
	v, done := f.tween.Update(dt)
	for _, m := range f.materials {
		m.Opacity = v
	}
	return done
}
