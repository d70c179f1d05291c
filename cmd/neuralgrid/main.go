package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/neuralgrid/internal/config"
	"github.com/san-kum/neuralgrid/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	logLevel   string
	width      float64
	height     float64
	fps        int
	theme      string

	frames       int
	snapFrames   int
	benchFrames  int
	sampleEvery  int
	scenarioFile string
	numRuns      int

	pick bool

	outFile string
	format  string
	scale   float64
	fromRun string

	addr string

	logger *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "neuralgrid",
		Short:        "particle network field simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			logger = log.NewWithOptions(os.Stderr, log.Options{
				Level:           level,
				Prefix:          "neuralgrid",
				ReportTimestamp: true,
				TimeFormat:      time.Kitchen,
			})
			return nil
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".neuralgrid", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "default", "preset configuration ("+strings.Join(config.ListPresets(), ", ")+")")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.Float64Var(&width, "width", config.DefaultWidth, "surface width in field units")
	pf.Float64Var(&height, "height", config.DefaultHeight, "surface height in field units")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the field in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset and theme first")
	rootCmd.Flags().AddFlagSet(liveCmd.Flags())

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the field in a native window",
		RunE:  runWindow,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and store sampled metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "frames between metric samples")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scripted input scenario (yaml)")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "independent runs with consecutive seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metrics of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to SVG or PNG",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default neuralgrid.<format>)")
	snapshotCmd.Flags().StringVar(&format, "format", "png", "svg or png")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 1, "pixels per field unit (png)")
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 120, "frames to advance before rendering")
	snapshotCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scripted input scenario (yaml)")
	snapshotCmd.Flags().StringVar(&fromRun, "run", "", "render the final state of a stored run")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame cost across surface sizes",
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 2000, "frames per case")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream the field to browsers over websockets",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liveCmd, windowCmd, runCmd, listCmd, plotCmd, exportJSONCmd, snapshotCmd, benchCmd, serveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
