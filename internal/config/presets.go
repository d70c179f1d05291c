package config

import (
	"errors"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Presets tweak the default config. Only non-zero fields override.
var Presets = map[string]*Config{
	"default": {},
	"dense": {
		Width: 1920, Height: 1080,
		Field: FieldConfig{MaxParticles: 400, Spacing: 5},
	},
	"calm": {
		FPS:   30,
		Field: FieldConfig{MaxSpeed: 0.1, LinkDistance: 120},
	},
	"wide": {
		Width: 3840, Height: 1080, Theme: "ocean",
	},
	"storm": {
		Frames: 1200,
		Field:  FieldConfig{MaxSpeed: 1.5, PointerRadius: 200, PointerForce: 0.001},
	},
}

// GetPreset returns the default config with the named preset applied, or nil
// when no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Preset = name
	cfg.apply(p)
	return cfg
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) apply(p *Config) {
	if p.Width != 0 {
		c.Width = p.Width
	}
	if p.Height != 0 {
		c.Height = p.Height
	}
	if p.FPS != 0 {
		c.FPS = p.FPS
	}
	if p.Frames != 0 {
		c.Frames = p.Frames
	}
	if p.Theme != "" {
		c.Theme = p.Theme
	}
	f, pf := &c.Field, p.Field
	if pf.MaxParticles != 0 {
		f.MaxParticles = pf.MaxParticles
	}
	if pf.Spacing != 0 {
		f.Spacing = pf.Spacing
	}
	if pf.MaxSpeed != 0 {
		f.MaxSpeed = pf.MaxSpeed
	}
	if pf.LinkDistance != 0 {
		f.LinkDistance = pf.LinkDistance
	}
	if pf.PointerRadius != 0 {
		f.PointerRadius = pf.PointerRadius
	}
	if pf.PointerForce != 0 {
		f.PointerForce = pf.PointerForce
	}
}
