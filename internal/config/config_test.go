package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/neuralgrid/internal/field"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Params() != field.DefaultParams() {
		t.Errorf("default params drifted: %+v", cfg.Params())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Field.MaxParticles != 400 {
		t.Errorf("expected 400 particles, got %d", cfg.Field.MaxParticles)
	}
	if cfg.Field.LinkDistance != field.DefaultLinkDistance {
		t.Errorf("untouched fields should keep defaults, got %v", cfg.Field.LinkDistance)
	}
	if cfg.Preset != "dense" {
		t.Errorf("expected preset name dense, got %s", cfg.Preset)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "calm" {
		t.Errorf("expected sorted names, got %v", presets)
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	cfg := GetPreset("calm")
	cfg.Seed = 77

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "width: 300\nfield:\n  link_distance: 90\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != DefaultHeight {
		t.Errorf("unexpected surface %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.Field.LinkDistance != 90 || cfg.Field.PointerRadius != field.DefaultPointerRadius {
		t.Errorf("unexpected field section %+v", cfg.Field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"zero frames", func(c *Config) { c.Frames = 0 }},
		{"negative sampling", func(c *Config) { c.SampleEvery = -1 }},
		{"inverted radius", func(c *Config) { c.Field.MinRadius, c.Field.MaxRadius = 3, 1 }},
		{"negative max particles", func(c *Config) { c.Field.MaxParticles = -1 }},
		{"negative link opacity", func(c *Config) { c.Field.LinkOpacity = -1 }},
		{"negative pointer radius", func(c *Config) { c.Field.PointerRadius = -50 }},
		{"negative pointer force", func(c *Config) { c.Field.PointerForce = -0.1 }},
		{"negative spacing", func(c *Config) { c.Field.Spacing = -15 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	zero := DefaultConfig()
	zero.Width = 0
	if err := zero.Validate(); err != nil {
		t.Errorf("zero width should be valid, got %v", err)
	}
}
