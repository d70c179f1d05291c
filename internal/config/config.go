package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/neuralgrid/internal/field"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultFPS         = 60
	DefaultFrames      = 600
	DefaultSampleEvery = 10
	DefaultTheme       = "matrix"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Preset      string      `yaml:"preset,omitempty"`
	Width       float64     `yaml:"width"`
	Height      float64     `yaml:"height"`
	Seed        int64       `yaml:"seed"`
	FPS         int         `yaml:"fps"`
	Frames      int         `yaml:"frames"`
	SampleEvery int         `yaml:"sample_every"`
	Theme       string      `yaml:"theme"`
	Script      string      `yaml:"script,omitempty"`
	Field       FieldConfig `yaml:"field"`
}

// FieldConfig mirrors field.Params; zero values keep the field defaults.
type FieldConfig struct {
	MaxParticles  int     `yaml:"max_particles"`
	Spacing       float64 `yaml:"spacing"`
	MaxSpeed      float64 `yaml:"max_speed"`
	MinRadius     float64 `yaml:"min_radius"`
	MaxRadius     float64 `yaml:"max_radius"`
	LinkDistance  float64 `yaml:"link_distance"`
	LinkOpacity   float64 `yaml:"link_opacity"`
	PointerRadius float64 `yaml:"pointer_radius"`
	PointerForce  float64 `yaml:"pointer_force"`
}

func DefaultConfig() *Config {
	p := field.DefaultParams()
	return &Config{
		Preset:      "default",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		FPS:         DefaultFPS,
		Frames:      DefaultFrames,
		SampleEvery: DefaultSampleEvery,
		Theme:       DefaultTheme,
		Field: FieldConfig{
			MaxParticles:  p.MaxParticles,
			Spacing:       p.Spacing,
			MaxSpeed:      p.MaxSpeed,
			MinRadius:     p.MinRadius,
			MaxRadius:     p.MaxRadius,
			LinkDistance:  p.LinkDistance,
			LinkOpacity:   p.LinkOpacity,
			PointerRadius: p.PointerRadius,
			PointerForce:  p.PointerForce,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the field or the frame loop cannot run with.
// Zero width is allowed and yields an empty field.
func (c *Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: surface %vx%v must not be negative", ErrInvalid, c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case c.Frames <= 0:
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalid, c.Frames)
	case c.SampleEvery < 0:
		return fmt.Errorf("%w: sample_every must not be negative, got %d", ErrInvalid, c.SampleEvery)
	case c.Field.MaxRadius != 0 && c.Field.MaxRadius < c.Field.MinRadius:
		return fmt.Errorf("%w: max_radius %v below min_radius %v", ErrInvalid, c.Field.MaxRadius, c.Field.MinRadius)
	}
	return c.Field.validate()
}

// validate rejects negative field values. Zero means "use the default", so a
// negative value would otherwise be replaced silently.
func (f FieldConfig) validate() error {
	if f.MaxParticles < 0 {
		return fmt.Errorf("%w: max_particles must not be negative, got %d", ErrInvalid, f.MaxParticles)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"spacing", f.Spacing},
		{"max_speed", f.MaxSpeed},
		{"min_radius", f.MinRadius},
		{"max_radius", f.MaxRadius},
		{"link_distance", f.LinkDistance},
		{"link_opacity", f.LinkOpacity},
		{"pointer_radius", f.PointerRadius},
		{"pointer_force", f.PointerForce},
	} {
		if v.val < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalid, v.name, v.val)
		}
	}
	return nil
}

// Params converts the field section into field.Params.
func (c *Config) Params() field.Params {
	return field.Params{
		MaxParticles:  c.Field.MaxParticles,
		Spacing:       c.Field.Spacing,
		MaxSpeed:      c.Field.MaxSpeed,
		MinRadius:     c.Field.MinRadius,
		MaxRadius:     c.Field.MaxRadius,
		LinkDistance:  c.Field.LinkDistance,
		LinkOpacity:   c.Field.LinkOpacity,
		PointerRadius: c.Field.PointerRadius,
		PointerForce:  c.Field.PointerForce,
	}
}
