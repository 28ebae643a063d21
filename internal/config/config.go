// Package config handles scene configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Audio    AudioConfig    `yaml:"audio"`
	Camera   CameraConfig   `yaml:"camera"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	PixelRatioCap float32 `yaml:"pixel_ratio_cap"`
	Shadows       bool    `yaml:"shadows"`
	SoftShadows   bool    `yaml:"soft_shadows"` // PCF filtering of the shadow map
	Anisotropy    float32 `yaml:"anisotropy"`
}

// SceneConfig holds content settings for the haunted house.
type SceneConfig struct {
	AssetRoot  string  `yaml:"asset_root"`
	GraveCount int     `yaml:"grave_count"`
	GraveSeed  int64   `yaml:"grave_seed"` // 0 picks a time-based seed
	FogColor   string  `yaml:"fog_color"`
	FogNear    float32 `yaml:"fog_near"`
	FogFar     float32 `yaml:"fog_far"`
	GhostFade  float32 `yaml:"ghost_fade"` // seconds for a ghost to fade in after loading
	Ghosts     bool    `yaml:"ghosts"`
}

// AudioConfig holds the background ambience settings.
type AudioConfig struct {
	Ambience string  `yaml:"ambience"` // WAV path under the asset root, empty for silence
	Volume   float64 `yaml:"volume"`
}

// CameraConfig holds the viewpoint and orbit control settings.
type CameraConfig struct {
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Damping  float32    `yaml:"damping"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	Panel   bool `yaml:"panel"`
	ShowFPS bool `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			PixelRatioCap: 2,
			Shadows:       true,
			SoftShadows:   true,
			Anisotropy:    4,
		},
		Scene: SceneConfig{
			AssetRoot:  "static",
			GraveCount: 60,
			GraveSeed:  0,
			FogColor:   "#262837",
			FogNear:    2,
			FogFar:     25,
			GhostFade:  1.5,
			Ghosts:     true,
		},
		Audio: AudioConfig{
			Ambience: "sounds/ambience.wav",
			Volume:   0.5,
		},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      100,
			Position: [3]float32{4, 2, 5},
			Damping:  0.05,
		},
		Debug: DebugConfig{
			Panel:   false,
			ShowFPS: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
