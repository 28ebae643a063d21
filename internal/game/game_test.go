package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hauntedhouse/internal/engine/ui"
)

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		key  sdl.Scancode
		want command
	}{
		{sdl.SCANCODE_ESCAPE, cmdQuit},
		{sdl.SCANCODE_F12, cmdScreenshot},
		{sdl.SCANCODE_M, cmdToggleAudio},
		{sdl.SCANCODE_A, cmdNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyCommand(tt.key), "scancode %d", tt.key)
	}
}

func TestPanelCommandsMatchWindowKeys(t *testing.T) {
	assert.Empty(t, panelCommands(ui.Keys{}))
	assert.Equal(t, []command{cmdQuit}, panelCommands(ui.Keys{Quit: true}))
	assert.Equal(t,
		[]command{cmdQuit, cmdScreenshot, cmdToggleAudio},
		panelCommands(ui.Keys{Quit: true, Screenshot: true, ToggleAudio: true}))
}

func TestRunCommand(t *testing.T) {
	g := &Game{log: zap.NewNop(), running: true}

	g.run(cmdNone)
	assert.True(t, g.running)

	g.run(cmdScreenshot)
	assert.True(t, g.capture)

	g.run(cmdToggleAudio) // no ambience loaded

	g.run(cmdQuit)
	assert.False(t, g.running)
}

func TestCloseWithoutResources(t *testing.T) {
	g := &Game{log: zap.NewNop()}
	assert.NotPanics(t, g.Close)
	assert.NotPanics(t, g.releaseGL)
}
