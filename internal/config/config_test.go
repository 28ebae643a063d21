package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1280, cfg.Graphics.Width)
	assert.Equal(t, 720, cfg.Graphics.Height)
	assert.False(t, cfg.Graphics.Fullscreen)
	assert.True(t, cfg.Graphics.VSync)
	assert.Equal(t, float32(2), cfg.Graphics.PixelRatioCap)

	assert.Equal(t, "#262837", cfg.Scene.FogColor)
	assert.Equal(t, float32(2), cfg.Scene.FogNear)
	assert.Equal(t, float32(25), cfg.Scene.FogFar)
	assert.Equal(t, 60, cfg.Scene.GraveCount)

	assert.Equal(t, "sounds/ambience.wav", cfg.Audio.Ambience)
	assert.Equal(t, 0.5, cfg.Audio.Volume)

	assert.Equal(t, float32(75), cfg.Camera.FOV)
	assert.Equal(t, [3]float32{4, 2, 5}, cfg.Camera.Position)

	assert.False(t, cfg.Debug.Panel, "debug panel must be off by default")
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.LogFile)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  shadows: false

scene:
  asset_root: "/srv/haunted"
  grave_count: 12
  grave_seed: 42
  fog_near: 1
  fog_far: 40

camera:
  fov: 60
  position: [1, 3, 8]

audio:
  volume: 0.2

debug:
  panel: true

logging:
  level: "debug"
  log_file: "scene.log"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, configPath))

	assert.Equal(t, 1920, cfg.Graphics.Width)
	assert.Equal(t, 1080, cfg.Graphics.Height)
	assert.True(t, cfg.Graphics.Fullscreen)
	assert.False(t, cfg.Graphics.VSync)
	assert.False(t, cfg.Graphics.Shadows)

	assert.Equal(t, "/srv/haunted", cfg.Scene.AssetRoot)
	assert.Equal(t, 12, cfg.Scene.GraveCount)
	assert.Equal(t, int64(42), cfg.Scene.GraveSeed)
	assert.Equal(t, float32(40), cfg.Scene.FogFar)
	// Untouched keys keep their defaults.
	assert.Equal(t, "#262837", cfg.Scene.FogColor)

	assert.Equal(t, float32(60), cfg.Camera.FOV)
	assert.Equal(t, [3]float32{1, 3, 8}, cfg.Camera.Position)
	assert.Equal(t, float32(100), cfg.Camera.Far)

	assert.Equal(t, 0.2, cfg.Audio.Volume)
	assert.Equal(t, "sounds/ambience.wav", cfg.Audio.Ambience)

	assert.True(t, cfg.Debug.Panel)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "scene.log", cfg.Logging.LogFile)
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidYAML), 0644))

	assert.Error(t, loadFromFile(Default(), configPath))
}

func TestLoadFromFileMissing(t *testing.T) {
	assert.Error(t, loadFromFile(Default(), "/nonexistent/path/config.yaml"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"flat fov", func(c *Config) { c.Camera.FOV = 0 }},
		{"fog inverted", func(c *Config) { c.Scene.FogFar = 1 }},
		{"negative graves", func(c *Config) { c.Scene.GraveCount = -1 }},
		{"loud audio", func(c *Config) { c.Audio.Volume = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateFixesPixelRatio(t *testing.T) {
	cfg := Default()
	cfg.Graphics.PixelRatioCap = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(1), cfg.Graphics.PixelRatioCap)
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	assert.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir), "ConfigDir should return absolute path, got %s", dir)
}

func TestFindConfigFile(t *testing.T) {
	origDir, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	assert.Empty(t, findConfigFile())

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("graphics:\n  width: 800\n"), 0644))
	assert.NotEmpty(t, findConfigFile())
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.True(t, cfg.Debug.ShowFPS)
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "panel flag",
			setup: func() { *flagPanel = true },
			verify: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Debug.Panel)
			},
			teardown: func() { *flagPanel = false },
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/tmp/assets" },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/assets", cfg.Scene.AssetRoot)
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Graphics.Fullscreen)
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "size flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2560, cfg.Graphics.Width)
				assert.Equal(t, 1440, cfg.Graphics.Height)
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "grave flags",
			setup: func() {
				*flagGraves = 0
				*flagSeed = 7
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 0, cfg.Scene.GraveCount)
				assert.Equal(t, int64(7), cfg.Scene.GraveSeed)
			},
			teardown: func() {
				*flagGraves = -1
				*flagSeed = 0
			},
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.Audio.Ambience)
			},
			teardown: func() { *flagMute = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("graphics:\n  width: 1600\n  height: 900\n"), 0644))

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Graphics.Width, "flag beats file")
	assert.Equal(t, 900, cfg.Graphics.Height, "file beats default")
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.GraveSeed = 99
	require.NoError(t, cfg.SaveTo(path))

	loaded := Default()
	require.NoError(t, loadFromFile(loaded, path))
	assert.Equal(t, cfg, loaded)
}
