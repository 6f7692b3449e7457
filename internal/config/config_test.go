package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "solar" {
		t.Errorf("expected scene solar, got %s", cfg.Scene)
	}
	if cfg.Tuning.G != DefaultG {
		t.Errorf("expected G %v, got %v", DefaultG, cfg.Tuning.G)
	}
	if cfg.Tuning.Theta != DefaultTheta {
		t.Errorf("expected theta %v, got %v", DefaultTheta, cfg.Tuning.Theta)
	}
	if !cfg.UseBarnesHut() {
		t.Error("default algorithm should be barnes-hut")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Scene = "binary"
	cfg.Seed = 42
	cfg.Tuning.Theta = 0.3
	cfg.Algorithm = "direct"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Scene != "binary" || loaded.Seed != 42 {
		t.Errorf("loaded %+v", loaded)
	}
	if loaded.Tuning.Theta != 0.3 {
		t.Errorf("theta = %v, want 0.3", loaded.Tuning.Theta)
	}
	if loaded.UseBarnesHut() {
		t.Error("algorithm should be direct")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("scene: collapse\ndt: 0.002\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Scene != "collapse" || cfg.Dt != 0.002 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Tuning.MaxDepth != DefaultMaxDepth {
		t.Errorf("unset field should keep default, got %d", cfg.Tuning.MaxDepth)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"zero g", func(c *Config) { c.Tuning.G = 0 }},
		{"negative theta", func(c *Config) { c.Tuning.Theta = -0.1 }},
		{"zero max depth", func(c *Config) { c.Tuning.MaxDepth = 0 }},
		{"zero min cell", func(c *Config) { c.Tuning.MinCellSize = 0 }},
		{"bad algorithm", func(c *Config) { c.Algorithm = "quantum" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("solar", "fast")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.TimeScale != 5.0 {
		t.Errorf("expected time scale 5, got %v", cfg.TimeScale)
	}
	if cfg.Tuning.G != DefaultG {
		t.Error("preset should inherit default tuning")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("solar", "nonexistent") != nil {
		t.Error("expected nil for unknown variant")
	}
	if GetPreset("nonexistent", "default") != nil {
		t.Error("expected nil for unknown scene")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("binary"); len(presets) == 0 {
		t.Error("expected presets for binary")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for unknown scene")
	}
}
