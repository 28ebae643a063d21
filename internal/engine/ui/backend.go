// Package ui provides the Dear ImGui debug panel: the scene shown full-window
// with a "Debug" window bound to live light parameters.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// runLoop is the part of the ImGui backend used after the window exists.
type runLoop interface {
	Run(loop func())
	SetShouldClose(value bool)
	SetWindowTitle(title string)
	SetBeforeDestroyContextHook(hook func())
}

// Backend wraps the ImGui SDL backend. It owns the window and GL context
// while the panel is enabled.
type Backend struct {
	backend runLoop
	log     *zap.Logger

	release     []func()
	ran, closed bool
}

func newBackend(rl runLoop, log *zap.Logger) *Backend {
	b := &Backend{backend: rl, log: log}
	rl.SetBeforeDestroyContextHook(b.releaseAll)
	return b
}

// NewBackend creates the ImGui window and initialises OpenGL on its context.
func NewBackend(title string, width, height int, bg [3]float32, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sdlb, err := backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	sdlb.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], 1.0))
	sdlb.CreateWindow(title, width, height)
	b := newBackend(sdlb, log)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	log.Info("imgui backend ready", zap.Int("width", width), zap.Int("height", height))
	return b, nil
}

// Run drives frame until the window is closed. The backend destroys the
// window and GL context when it returns.
func (b *Backend) Run(frame func()) {
	b.ran = true
	b.backend.Run(frame)
}

// OnRelease registers fn to run while the GL context is still current, just
// before the backend destroys it. Hooks run once, last registered first.
func (b *Backend) OnRelease(fn func()) {
	b.release = append(b.release, fn)
}

// Quit stops the run loop after the current frame.
func (b *Backend) Quit() {
	b.backend.SetShouldClose(true)
}

// Close releases the window and GL context. A backend whose loop never ran
// is started with an empty frame and an immediate close request so its own
// teardown runs.
func (b *Backend) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if !b.ran {
		b.ran = true
		b.backend.SetShouldClose(true)
		b.backend.Run(func() {})
	}
	b.releaseAll()
	b.log.Info("imgui backend closed")
}

func (b *Backend) releaseAll() {
	fns := b.release
	b.release = nil
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area in logical pixels and the
// framebuffer scale of the display.
func (b *Backend) Viewport() (width, height, scale float32) {
	io := imgui.CurrentIO()
	size := imgui.MainViewport().WorkSize()
	scale = io.DisplayFramebufferScale().X
	if scale <= 0 {
		scale = 1
	}
	return size.X, size.Y, scale
}
