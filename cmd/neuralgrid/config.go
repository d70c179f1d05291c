package main

import (
	"fmt"
	"time"

	"github.com/san-kum/neuralgrid/internal/config"
	"github.com/san-kum/neuralgrid/internal/viz"
	"github.com/spf13/cobra"
)

// resolveConfig builds the effective config: the preset, replaced by the
// config file when one is given, then any flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	return resolvePreset(cmd, preset)
}

// resolvePreset is resolveConfig with the preset named by the caller instead
// of the --preset flag.
func resolvePreset(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", config.ErrUnknownPreset, name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if cmd.Name() == "run" && flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("scenario") {
		cfg.Script = scenarioFile
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := viz.LookupTheme(cfg.Theme); err != nil {
		return nil, err
	}
	return cfg, nil
}
