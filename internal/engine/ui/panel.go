package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/hauntedhouse/internal/engine/audio"
	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
)

// Stats is the read-only part of the debug window.
type Stats struct {
	FPS         float32
	Loading     int
	Attached    int
	Failed      int
	Nodes       int
	DrawCalls   int
	Triangles   int
	PointLights int
	Hovered     string
}

// SceneInput is camera input read from the scene view this frame.
type SceneInput struct {
	RotateX, RotateY float32
	PanX, PanY       float32
	Wheel            float32

	// Mouse is the cursor in scene pixels, valid when Hovering.
	Mouse    [2]float32
	Hovering bool

	Keys Keys
}

// Keys are the hotkeys pressed this frame.
type Keys struct {
	Quit        bool // Escape
	Screenshot  bool // F12
	ToggleAudio bool // M
}

type sliderRange struct{ min, max float32 }

var moonPositionRange = [3]sliderRange{{-10, 10}, {-10, 10}, {-20, 20}}

// Panel draws the scene view and the debug window. The light fields are
// edited in place. Nil fields hide their controls.
type Panel struct {
	Ambient  *lighting.Ambient
	Moon     *lighting.Directional
	MoonNode *scenegraph.Node
	Audio    *audio.Player

	lastMouse imgui.Vec2
}

// Scene fills the viewport with texture and returns the mouse input over it.
func (p *Panel) Scene(texture uint32, width, height float32) SceneInput {
	var in SceneInput
	if texture == 0 {
		return in
	}

	imgui.SetNextWindowPos(imgui.NewVec2(0, 0))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texture))
		imgui.ImageV(*texRef,
			imgui.NewVec2(width, height),
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0))

		mouse := imgui.MousePos()
		if imgui.IsItemHovered() {
			dx := mouse.X - p.lastMouse.X
			dy := mouse.Y - p.lastMouse.Y
			if imgui.IsMouseDown(imgui.MouseButtonLeft) {
				in.RotateX, in.RotateY = dx, dy
			}
			if imgui.IsMouseDown(imgui.MouseButtonRight) {
				in.PanX, in.PanY = dx, dy
			}
			in.Wheel = imgui.CurrentIO().MouseWheel()
			in.Mouse = [2]float32{mouse.X, mouse.Y}
			in.Hovering = true
		}
		p.lastMouse = mouse
	}
	imgui.End()
	imgui.PopStyleVar()

	if !imgui.CurrentIO().WantCaptureKeyboard() {
		in.Keys = Keys{
			Quit:        imgui.IsKeyPressedBool(imgui.KeyEscape),
			Screenshot:  imgui.IsKeyPressedBool(imgui.KeyF12),
			ToggleAudio: imgui.IsKeyPressedBool(imgui.KeyM),
		}
	}
	return in
}

// Debug draws the "Debug" window.
func (p *Panel) Debug(s Stats) {
	imgui.SetNextWindowPos(imgui.NewVec2(10, 10))
	imgui.SetNextWindowSize(imgui.NewVec2(300, 0))

	if imgui.Begin("Debug") {
		imgui.Text(fmt.Sprintf("FPS: %.0f", s.FPS))
		imgui.Text(fmt.Sprintf("Models: %d loading, %d attached, %d failed", s.Loading, s.Attached, s.Failed))
		imgui.Text(fmt.Sprintf("Nodes: %d  Lights: %d", s.Nodes, s.PointLights))
		imgui.Text(fmt.Sprintf("Draw calls: %d  Triangles: %d", s.DrawCalls, s.Triangles))
		if s.Hovered != "" {
			imgui.Text("Hovered: " + s.Hovered)
		}
		imgui.Separator()

		if p.Ambient != nil {
			imgui.SliderFloatV("Ambient", &p.Ambient.Intensity, 0, 1, "%.3f", imgui.SliderFlagsNone)
		}
		if p.Moon != nil {
			imgui.SliderFloatV("Moon", &p.Moon.Intensity, 0, 1, "%.3f", imgui.SliderFlagsNone)
		}
		if p.MoonNode != nil {
			pos := p.MoonNode.Position()
			axes := [3]*float32{&pos.X, &pos.Y, &pos.Z}
			changed := false
			for i, label := range [3]string{"Moon X", "Moon Y", "Moon Z"} {
				r := moonPositionRange[i]
				if imgui.SliderFloatV(label, axes[i], r.min, r.max, "%.3f", imgui.SliderFlagsNone) {
					changed = true
				}
			}
			if changed {
				p.MoonNode.SetPositionVec(pos)
			}
		}
		if p.Audio != nil {
			imgui.Separator()
			vol := float32(p.Audio.Volume())
			if imgui.SliderFloatV("Ambience", &vol, 0, 1, "%.2f", imgui.SliderFlagsNone) {
				p.Audio.SetVolume(float64(vol))
			}
		}
	}
	imgui.End()
}
