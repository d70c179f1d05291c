package main

import (
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/san-kum/neuralgrid/internal/config"
	"github.com/san-kum/neuralgrid/internal/export"
	"github.com/san-kum/neuralgrid/internal/field"
	"github.com/san-kum/neuralgrid/internal/sim"
	"github.com/san-kum/neuralgrid/internal/storage"
	"github.com/san-kum/neuralgrid/internal/stream"
	"github.com/san-kum/neuralgrid/internal/viz"
	"github.com/san-kum/neuralgrid/internal/window"
	"github.com/spf13/cobra"
)

func runLive(cmd *cobra.Command, args []string) error {
	if pick && configFile != "" {
		return fmt.Errorf("--pick chooses a preset and cannot be combined with --config")
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if pick {
		return viz.RunInteractive(cfg, pickResolver(cmd, cfg))
	}
	return viz.RunLive(cfg)
}

// pickResolver layers the command's flags over the preset chosen in the
// picker. A config file replaces presets outright, so it cannot be combined
// with --pick.
func pickResolver(cmd *cobra.Command, base *config.Config) viz.PresetResolver {
	return func(name string) (*config.Config, error) {
		cfg, err := resolvePreset(cmd, name)
		if err != nil {
			return nil, err
		}
		cfg.Seed = base.Seed
		return cfg, nil
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return window.Run(cfg, logger)
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := newSimulator(cfg, cfg.Seed)
	logger.Info("field ready", "preset", cfg.Preset, "seed", cfg.Seed, "particles", s.Field().Len())
	return stream.NewServer(s, cfg.FPS, logger).ListenAndServe(ctx, addr)
}

// themed restyles the field and bursts in the theme's primary colour and
// returns the theme background.
func themed(s *sim.Simulator, name string) color.NRGBA {
	primary, background := viz.GetTheme(name).RGBA()
	style := field.DefaultStyle()
	style.Dot.Color, style.Glow.Paint.Color, style.Line = primary, primary, primary
	s.Field().Style = style
	s.Bursts().Style = style
	return background
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var s *sim.Simulator
	if fromRun != "" {
		f, err := storage.New(dataDir).LoadField(fromRun)
		if err != nil {
			return err
		}
		s = sim.New(f, rand.New(rand.NewSource(cfg.Seed)))
	} else {
		s = newSimulator(cfg, cfg.Seed)
		_, script, err := loadScript(cfg)
		if err != nil {
			return err
		}
		for i := 0; i < snapFrames; i++ {
			for _, e := range script[i] {
				s.Apply(e)
			}
			s.Step()
		}
	}
	bg := themed(s, cfg.Theme)
	f := s.Field()

	if outFile == "" {
		outFile = "neuralgrid." + format
	}
	out, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case "svg":
		surf := export.NewSVGSurface(f.Width, f.Height, bg)
		s.Render(surf)
		_, err = surf.WriteTo(out)
	case "png":
		surf := export.NewRasterSurface(int(f.Width*scale), int(f.Height*scale), scale, bg)
		s.Render(surf)
		err = export.WritePNG(out, surf.Image())
	default:
		return fmt.Errorf("unknown format %q (svg, png)", format)
	}
	if err != nil {
		return err
	}
	logger.Info("snapshot written", "file", outFile, "frame", s.Frame(), "particles", f.Len(), "links", f.LinkCount())
	return nil
}

type benchCase struct {
	name          string
	width, height float64
	params        field.Params
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	dense := cfg.Params()
	dense.MaxParticles, dense.Spacing = 2000, 2

	cases := []benchCase{
		{"config", cfg.Width, cfg.Height, cfg.Params()},
		{"hd", 1920, 1080, cfg.Params()},
		{"4k", 3840, 2160, cfg.Params()},
		{"dense-hd", 1920, 1080, dense},
		{"dense-4k", 3840, 2160, dense},
	}

	fmt.Printf("benchmarking %d frames per case\n\n", benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CASE\tSURFACE\tPARTICLES\tLINKS\tTIME\tFRAMES/SEC")

	for _, c := range cases {
		cc := *cfg
		cc.Width, cc.Height = c.width, c.height
		cc.Field = config.FieldConfig(c.params)
		s := newSimulator(&cc, cfg.Seed)

		var links []field.Link
		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			s.Field().Advance()
			links = s.Field().Links(links[:0])
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%.0fx%.0f\t%d\t%d\t%v\t%.0f\n",
			c.name, c.width, c.height, s.Field().Len(), len(links),
			elapsed.Round(time.Millisecond), float64(benchFrames)/elapsed.Seconds())
	}
	return w.Flush()
}
