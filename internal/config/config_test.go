package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Editor.CanvasWidth != 1280 || cfg.Editor.CanvasHeight != 720 {
		t.Errorf("default canvas = %dx%d, want 1280x720", cfg.Editor.CanvasWidth, cfg.Editor.CanvasHeight)
	}
	if cfg.Editor.DefaultClipDuration != 5 {
		t.Errorf("default clip duration = %v, want 5", cfg.Editor.DefaultClipDuration)
	}
	if cfg.Editor.TickRate != 60 {
		t.Errorf("default tick rate = %v, want 60", cfg.Editor.TickRate)
	}
	if got := cfg.Editor.AudioDebounce(); got != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", got)
	}
	if cfg.Media.FFprobePath != "ffprobe" {
		t.Errorf("default ffprobe path = %q", cfg.Media.FFprobePath)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
editor:
  canvas_width: 640
  canvas_height: 360
  audio_debounce_ms: 250
media:
  ffplay_path: /opt/ffmpeg/ffplay
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Editor.CanvasWidth != 640 || cfg.Editor.CanvasHeight != 360 {
		t.Errorf("canvas = %dx%d, want 640x360", cfg.Editor.CanvasWidth, cfg.Editor.CanvasHeight)
	}
	if got := cfg.Editor.AudioDebounce(); got != 250*time.Millisecond {
		t.Errorf("debounce = %v, want 250ms", got)
	}
	if cfg.Media.FFplayPath != "/opt/ffmpeg/ffplay" {
		t.Errorf("ffplay path = %q", cfg.Media.FFplayPath)
	}
	// Untouched keys keep their defaults
	if cfg.Editor.TickRate != 60 {
		t.Errorf("tick rate = %v, want default 60", cfg.Editor.TickRate)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	cfg.Editor.Volume = 0.25
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Editor.Volume != 0.25 {
		t.Errorf("volume = %v after round trip, want 0.25", loaded.Editor.Volume)
	}
}

func TestContextStorage(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	cfg.Editor.TickRate = 30

	ctx := WithConfig(context.Background(), cfg)
	if got := FromContext(ctx); got.Editor.TickRate != 30 {
		t.Errorf("FromContext tick rate = %v, want 30", got.Editor.TickRate)
	}

	// A bare context yields defaults
	if got := FromContext(context.Background()); got.Editor.TickRate != 60 {
		t.Errorf("bare context tick rate = %v, want default 60", got.Editor.TickRate)
	}
}
