package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagPanel      = flag.Bool("panel", false, "Show the debug parameter panel")
	flagAssets     = flag.String("assets", "", "Asset root directory")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagGraves     = flag.Int("graves", -1, "Number of graves to scatter")
	flagSeed       = flag.Int64("seed", 0, "Grave placement seed")
	flagMute       = flag.Bool("mute", false, "Disable the background ambience")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowFPS = true
	}
	if *flagPanel {
		cfg.Debug.Panel = true
	}
	if *flagAssets != "" {
		cfg.Scene.AssetRoot = *flagAssets
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagGraves >= 0 {
		cfg.Scene.GraveCount = *flagGraves
	}
	if *flagSeed != 0 {
		cfg.Scene.GraveSeed = *flagSeed
	}
	if *flagMute {
		cfg.Audio.Ambience = ""
	}
}
