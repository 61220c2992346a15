// Package config handles game configuration loading and management.
package config

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Assets   AssetsConfig   `yaml:"assets"`
	Game     GameConfig     `yaml:"game"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// AssetsConfig holds asset file paths.
type AssetsConfig struct {
	// Dir is the directory holding the OBJ meshes and their materials.
	Dir string `yaml:"dir"`
	// ShaderDir optionally overrides the built-in shaders with scene.vert
	// and scene.frag files from disk.
	ShaderDir string `yaml:"shader_dir"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	ShowFPS bool `yaml:"show_fps"`
	// Debug starts the game with collisions off and the fly camera enabled.
	Debug bool `yaml:"debug"`
	// Seed fixes the obstacle respawn sequence; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
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
			Width:      640,
			Height:     480,
			Fullscreen: false,
			VSync:      true,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Assets: AssetsConfig{
			Dir:       "assets/objects",
			ShaderDir: "",
		},
		Game: GameConfig{
			ShowFPS: false,
			Debug:   false,
			Seed:    0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
