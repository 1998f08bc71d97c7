package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Editor settings
	Editor EditorConfig `yaml:"editor"`

	// Media probing and playback backends
	Media MediaConfig `yaml:"media"`
}

type EditorConfig struct {
	// Preview surface dimensions in pixels
	CanvasWidth  int `yaml:"canvas_width"`
	CanvasHeight int `yaml:"canvas_height"`

	// Provisional duration for freshly added clips, seconds
	DefaultClipDuration float64 `yaml:"default_clip_duration"`

	// Render loop rate, ticks per second
	TickRate int `yaml:"tick_rate"`

	// Quiet period before coalesced audio reconciliation, milliseconds
	AudioDebounceMS int `yaml:"audio_debounce_ms"`

	// Initial volume in [0,1]
	Volume float64 `yaml:"volume"`
}

// AudioDebounce returns the reconciliation quiet period as a duration
func (e EditorConfig) AudioDebounce() time.Duration {
	return time.Duration(e.AudioDebounceMS) * time.Millisecond
}

type MediaConfig struct {
	FFprobePath string `yaml:"ffprobe_path" env:"STORYREEL_FFPROBE"`
	FFplayPath  string `yaml:"ffplay_path" env:"STORYREEL_FFPLAY"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			CanvasWidth:         1280,
			CanvasHeight:        720,
			DefaultClipDuration: 5,
			TickRate:            60,
			AudioDebounceMS:     100,
			Volume:              1,
		},
		Media: MediaConfig{
			FFprobePath: "ffprobe",
			FFplayPath:  "ffplay",
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".storyreel", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores the config in the context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves the config from the context, or defaults
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
