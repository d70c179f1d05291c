package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/neuralgrid/internal/automation"
	"github.com/san-kum/neuralgrid/internal/config"
	"github.com/san-kum/neuralgrid/internal/field"
	"github.com/san-kum/neuralgrid/internal/metrics"
	"github.com/san-kum/neuralgrid/internal/sim"
	"github.com/san-kum/neuralgrid/internal/storage"
	"github.com/spf13/cobra"
)

// newSimulator seeds a field from cfg and attaches the standard metrics.
func newSimulator(cfg *config.Config, seed int64) *sim.Simulator {
	rng := rand.New(rand.NewSource(seed))
	s := sim.New(field.NewWithParams(cfg.Width, cfg.Height, cfg.Params(), rng), rng)
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}
	return s
}

// loadScript reads the scenario named by cfg, if any.
func loadScript(cfg *config.Config) (*automation.Scenario, map[int][]sim.Event, error) {
	if cfg.Script == "" {
		return nil, nil, nil
	}
	sc, err := automation.LoadScenario(cfg.Script)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	script, err := sc.Script()
	if err != nil {
		return nil, nil, err
	}
	return sc, script, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sc, script, err := loadScript(cfg)
	if err != nil {
		return err
	}
	if sc != nil && sc.LastFrame() >= cfg.Frames {
		logger.Warn("scenario runs past the last frame, extending", "scenario", sc.Name, "frames", sc.LastFrame()+1)
		cfg.Frames = sc.LastFrame() + 1
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simCfg := sim.Config{Frames: cfg.Frames, SampleEvery: cfg.SampleEvery, Seed: cfg.Seed, Script: script}
	ensemble := sim.NewEnsemble(func(seed int64) *sim.Simulator {
		return newSimulator(cfg, seed)
	}, max(numRuns, 1), cfg.Seed)

	fmt.Printf("running %s: %d frames on %.0fx%.0f...\n", cfg.Preset, cfg.Frames, cfg.Width, cfg.Height)
	start := time.Now()
	results, err := ensemble.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for i, result := range results {
		meta := storage.RunMetadata{
			Preset:      cfg.Preset,
			Seed:        cfg.Seed + int64(i),
			Width:       cfg.Width,
			Height:      cfg.Height,
			Particles:   result.Final.Len(),
			Frames:      result.Frames,
			SampleEvery: cfg.SampleEvery,
			Params:      result.Final.Params,
		}
		if sc != nil {
			meta.Scenario = sc.Name
		}
		runID, err := st.Save(meta, result)
		if err != nil {
			return err
		}
		logger.Debug("run stored", "id", runID, "dir", filepath.Join(dataDir, runID))

		fmt.Printf("\nrun id: %s (seed %d)\n", runID, meta.Seed)
		names := make([]string, 0, len(result.Metrics))
		for name := range result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
		}
	}
	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSURFACE\tPARTICLES\tFRAMES\tSCENARIO")

	for _, run := range runs {
		scenario := run.Scenario
		if scenario == "" {
			scenario = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fx%.0f\t%d\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Particles,
			run.Frames,
			scenario,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	columns, samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))

	for col, name := range columns {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = s.Values[col]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(name+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSURFACE\tPARTICLES\tSPEED\tLINK\tFPS\tTHEME")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		p := cfg.Params()
		fmt.Fprintf(w, "%s\t%.0fx%.0f\t%d\t%.2f\t%.0f\t%d\t%s\n",
			name, cfg.Width, cfg.Height,
			p.Count(cfg.Width), p.MaxSpeed, p.LinkDistance, cfg.FPS, cfg.Theme)
	}
	return w.Flush()
}
