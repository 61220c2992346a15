package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 480 {
		t.Errorf("expected height 480, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test audio defaults
	if cfg.Audio.MasterVolume != 0.8 {
		t.Errorf("expected master volume 0.8, got %f", cfg.Audio.MasterVolume)
	}
	if cfg.Audio.SFXVolume != 0.8 {
		t.Errorf("expected sfx volume 0.8, got %f", cfg.Audio.SFXVolume)
	}

	// Test asset defaults
	if cfg.Assets.Dir != "assets/objects" {
		t.Errorf("expected assets dir 'assets/objects', got %s", cfg.Assets.Dir)
	}
	if cfg.Assets.ShaderDir != "" {
		t.Errorf("expected empty shader dir, got %s", cfg.Assets.ShaderDir)
	}

	// Test game defaults
	if cfg.Game.ShowFPS {
		t.Error("expected show_fps to be false by default")
	}
	if cfg.Game.Debug {
		t.Error("expected debug to be false by default")
	}
	if cfg.Game.Seed != 0 {
		t.Errorf("expected seed 0, got %d", cfg.Game.Seed)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1280
  height: 720
  fullscreen: true
  vsync: false

audio:
  master_volume: 0.5
  sfx_volume: 0.7
  muted: true

assets:
  dir: "data/meshes"
  shader_dir: "data/shaders"

game:
  show_fps: true
  debug: true
  seed: 42

logging:
  level: "debug"
  log_file: "game.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Audio.MasterVolume != 0.5 {
		t.Errorf("expected master volume 0.5, got %f", cfg.Audio.MasterVolume)
	}
	if !cfg.Audio.Muted {
		t.Error("expected muted to be true")
	}

	if cfg.Assets.Dir != "data/meshes" {
		t.Errorf("expected assets dir 'data/meshes', got %s", cfg.Assets.Dir)
	}
	if cfg.Assets.ShaderDir != "data/shaders" {
		t.Errorf("expected shader dir 'data/shaders', got %s", cfg.Assets.ShaderDir)
	}

	if !cfg.Game.ShowFPS {
		t.Error("expected show_fps to be true")
	}
	if !cfg.Game.Debug {
		t.Error("expected debug to be true")
	}
	if cfg.Game.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Game.Seed)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "game.log" {
		t.Errorf("expected log file 'game.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS; it just has to be a real absolute path.
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0o644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Game.Debug {
					t.Error("expected debug mode with debug flag")
				}
				if !cfg.Game.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "assets flag",
			setup: func() {
				*flagAssets = "elsewhere/objects"
			},
			verify: func(cfg *Config) {
				if cfg.Assets.Dir != "elsewhere/objects" {
					t.Errorf("expected assets dir 'elsewhere/objects', got %s", cfg.Assets.Dir)
				}
			},
			teardown: func() {
				*flagAssets = ""
			},
		},
		{
			name: "seed flag",
			setup: func() {
				*flagSeed = 1234
			},
			verify: func(cfg *Config) {
				if cfg.Game.Seed != 1234 {
					t.Errorf("expected seed 1234, got %d", cfg.Game.Seed)
				}
			},
			teardown: func() {
				*flagSeed = 0
			},
		},
		{
			name: "mute flag",
			setup: func() {
				*flagMute = true
			},
			verify: func(cfg *Config) {
				if !cfg.Audio.Muted {
					t.Error("expected muted with mute flag")
				}
			},
			teardown: func() {
				*flagMute = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 800
				*flagHeight = 600
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 800 {
					t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 600 {
					t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 800
	cfg.Game.Seed = 7

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Graphics.Width != 800 {
		t.Errorf("expected width 800 after round trip, got %d", loaded.Graphics.Width)
	}
	if loaded.Game.Seed != 7 {
		t.Errorf("expected seed 7 after round trip, got %d", loaded.Game.Seed)
	}
}
