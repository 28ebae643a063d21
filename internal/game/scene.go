package game

import (
	"fmt"
	"time"

	"github.com/Faultbox/hauntedhouse/internal/config"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/internal/engine/render"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/internal/game/world"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

func fogFromConfig(cfg *config.Config) (*render.Fog, error) {
	c, err := material.ParseColor(cfg.Scene.FogColor)
	if err != nil {
		return nil, fmt.Errorf("fog color: %w", err)
	}
	return &render.Fog{Color: c, Near: cfg.Scene.FogNear, Far: cfg.Scene.FogFar}, nil
}

func worldOptions(cfg *config.Config) world.Options {
	opts := world.DefaultOptions()
	opts.GraveCount = cfg.Scene.GraveCount
	opts.GraveSeed = cfg.Scene.GraveSeed
	opts.Ghosts = cfg.Scene.Ghosts
	opts.GhostFade = cfg.Scene.GhostFade
	opts.FOV = cfg.Camera.FOV
	opts.Near = cfg.Camera.Near
	opts.Far = cfg.Camera.Far
	p := cfg.Camera.Position
	opts.CameraPosition = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	return opts
}

type textureRequester interface {
	RequestMaterial(m *material.Standard)
}

// requestTextures starts decoding every map of the static scene so the first
// frames do not wait on lazy requests.
func requestTextures(w *world.World, tr textureRequester) int {
	seen := make(map[*material.Standard]bool)
	w.Root.Meshes(func(n *scenegraph.Node) {
		if n.Material != nil && !seen[n.Material] {
			seen[n.Material] = true
			tr.RequestMaterial(n.Material)
		}
	})
	return len(seen)
}

// fpsCounter measures frames per second over one-second windows.
type fpsCounter struct {
	start  time.Time
	frames int
	rate   float32
}

// tick counts a frame at now and reports whether a new rate was computed.
func (f *fpsCounter) tick(now time.Time) bool {
	if f.start.IsZero() {
		f.start = now
	}
	f.frames++
	elapsed := now.Sub(f.start)
	if elapsed < time.Second {
		return false
	}
	f.rate = float32(float64(f.frames) / elapsed.Seconds())
	f.frames = 0
	f.start = now
	return true
}
