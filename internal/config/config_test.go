package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	if cfg.Window != want.Window || cfg.Deck != want.Deck || cfg.Log != want.Log {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
window:
  id: 10
  width: 1280
  scale_factor: 1.5
coordinator:
  drain_interval: 20ms
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Window.ID != 10 || cfg.Window.Width != 1280 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Window.ScaleFactor != 1.5 {
		t.Errorf("expected scale 1.5, got %v", cfg.Window.ScaleFactor)
	}
	if cfg.Window.Height != 640 || cfg.Window.Title != "pointerflow" {
		t.Errorf("expected unset fields to keep defaults: %+v", cfg.Window)
	}
	if cfg.Coordinator.DrainInterval != 20*time.Millisecond {
		t.Errorf("expected 20ms drain interval, got %s", cfg.Coordinator.DrainInterval)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "log:\n  level: warn\nwindow:\n  scale_factor: 1.5\n")
	t.Setenv("POINTERFLOW_LOG_LEVEL", "error")
	t.Setenv("POINTERFLOW_SCALE_FACTOR", "2")
	t.Setenv("POINTERFLOW_RECORD", "/tmp/session.jsonl")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "error" || cfg.Window.ScaleFactor != 2 || cfg.Record.Path != "/tmp/session.jsonl" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  string
	}{
		{name: "bad yaml", body: "window: [\n"},
		{name: "negative scale", body: "window:\n  scale_factor: -1\n"},
		{name: "shared window id", body: "window:\n  id: 3\ndeck:\n  window_id: 3\n"},
		{name: "brightness", body: "deck:\n  brightness: 150\n"},
		{name: "bad env scale", env: "wide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("POINTERFLOW_SCALE_FACTOR", tt.env)
			}
			if _, err := LoadFromPath(writeFile(t, tt.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Record.Path = "out.jsonl"
	cfg.Deck.Serial = "AL12K1A00000"
	if err := WriteConfigFileTo(path, cfg); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Record.Path != "out.jsonl" || got.Deck.Serial != "AL12K1A00000" {
		t.Fatalf("values lost: %+v", got)
	}
}

func TestDefaultConfigPathEnv(t *testing.T) {
	t.Setenv("POINTERFLOW_CONFIG", "/etc/pointerflow.yaml")
	if got := DefaultConfigPath(); got != "/etc/pointerflow.yaml" {
		t.Fatalf("got %q", got)
	}
}
