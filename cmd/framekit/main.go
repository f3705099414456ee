package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/san-kum/framekit/internal/composition"
	"github.com/san-kum/framekit/internal/config"
	"github.com/san-kum/framekit/internal/scenes"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "framekit.yaml"

var (
	configFile string
	dataDir    string
	logLevel   string

	cfg      *config.Config
	logger   *log.Logger
	registry *composition.Registry

	// render / bench
	fromFrame int
	toFrame   int
	workers   int
	shuffle   bool
	seed      int64
	outFile   string
	benchRuns int

	// manifest
	format string

	// config init
	forceInit bool

	// springs
	springPreset string
	mass         float64
	stiffness    float64
	damping      float64
	fps          int
	frames       int

	// plot curve
	curvePad int

	// export-svg
	scale  float64
	svgOut string

	// preview
	theme string

	// tune / sweep
	targetSettle    int
	targetOvershoot float64
	tuneMass        float64
	sweepParam      string
	sweepMin        float64
	sweepMax        float64
	sweepSteps      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "framekit",
		Short:             "frame-driven animation and timeline engine",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml, default ./framekit.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for stored runs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list registered compositions",
		RunE:  listCompositions,
	}

	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "print the composition manifest",
		RunE:  printManifest,
	}
	manifestCmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml, json)")
	manifestCmd.AddCommand(&cobra.Command{
		Use:   "check [manifest.yaml]",
		Short: "compare a saved manifest against the registered compositions",
		Args:  cobra.ExactArgs(1),
		RunE:  checkManifest,
	})

	describeCmd := &cobra.Command{
		Use:   "describe [composition]",
		Short: "print the timeline tree of a composition",
		Args:  cobra.ExactArgs(1),
		RunE:  describeComposition,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample [composition] [frame]",
		Short: "print the display list of one frame as JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  sampleFrame,
	}

	renderCmd := &cobra.Command{
		Use:   "render [composition]",
		Short: "evaluate a frame range in parallel and store it as a run",
		Args:  cobra.ExactArgs(1),
		RunE:  renderComposition,
	}
	renderCmd.Flags().IntVar(&fromFrame, "from", 0, "first frame")
	renderCmd.Flags().IntVar(&toFrame, "to", 0, "end frame, exclusive (0 = duration)")
	renderCmd.Flags().IntVar(&workers, "workers", 0, "concurrent frames (0 = config or cpu count)")
	renderCmd.Flags().BoolVar(&shuffle, "shuffle", false, "evaluate frames in random order")
	renderCmd.Flags().Int64Var(&seed, "seed", 1, "shuffle seed")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "also export frames as JSON (- for stdout)")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id|latest|latest:composition] [element] [prop]",
		Short: "plot an element property of a stored run",
		Args:  cobra.ExactArgs(3),
		RunE:  plotRun,
	}

	plotSpringCmd := &cobra.Command{
		Use:   "spring",
		Short: "plot a spring response",
		RunE:  plotSpring,
	}
	springFlags(plotSpringCmd)

	plotCurveCmd := &cobra.Command{
		Use:   "curve [name]",
		Short: "plot a curve from the config file",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCurve,
	}
	plotCurveCmd.Flags().IntVar(&curvePad, "pad", 10, "frames to sample past each end of the curve")
	plotCmd.AddCommand(plotSpringCmd, plotCurveCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "analysis tools",
	}
	analyzeSpringCmd := &cobra.Command{
		Use:   "spring",
		Short: "compare a sampled spring against its analytic frequency and settle time",
		RunE:  analyzeSpring,
	}
	springFlags(analyzeSpringCmd)
	analyzeCmd.AddCommand(analyzeSpringCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [composition] [frame]",
		Short: "draw one frame as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportFrameSVG,
	}
	exportSVGCmd.Flags().Float64Var(&scale, "scale", 0.5, "output scale")
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "-", "output file (- for stdout)")

	exportSpringSVGCmd := &cobra.Command{
		Use:   "spring",
		Short: "draw a spring response curve as SVG",
		RunE:  exportSpringSVG,
	}
	springFlags(exportSpringSVGCmd)
	exportSpringSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "-", "output file (- for stdout)")
	exportSVGCmd.AddCommand(exportSpringSVGCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list spring presets",
		RunE:  listPresets,
	}

	easingsCmd := &cobra.Command{
		Use:   "easings",
		Short: "list named easing curves",
		Run:   listEasings,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [composition]",
		Short: "scrub through a composition in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	benchCmd := &cobra.Command{
		Use:   "bench [composition]",
		Short: "benchmark frame evaluation and check determinism",
		Args:  cobra.ExactArgs(1),
		RunE:  benchComposition,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 3, "repetitions per mode")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "search spring parameters for a target settle frame and overshoot",
		RunE:  tuneSpring,
	}
	tuneCmd.Flags().IntVar(&targetSettle, "settle", 30, "target settle frame")
	tuneCmd.Flags().Float64Var(&targetOvershoot, "overshoot", 0, "target overshoot fraction (0.1 = 10%)")
	tuneCmd.Flags().Float64Var(&tuneMass, "mass", 1, "spring mass")
	tuneCmd.Flags().IntVar(&fps, "fps", scenes.FPS, "frame rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure spring responses across a parameter range",
		RunE:  sweepSpring,
	}
	springFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "damping", "parameter to vary (mass, stiffness, damping)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 2, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 40, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration file tools",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration as yaml (default ./framekit.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [jobs.yaml]",
		Short: "run a YAML list of range renders and store each as a run",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(listCmd, manifestCmd, describeCmd, sampleCmd, renderCmd, runsCmd, plotCmd, analyzeCmd,
		exportSVGCmd, presetsCmd, easingsCmd, previewCmd, benchCmd, tuneCmd, sweepCmd, batchCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func springFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&springPreset, "preset", "default", "spring preset or config spring name")
	cmd.Flags().Float64Var(&mass, "mass", 0, "override mass")
	cmd.Flags().Float64Var(&stiffness, "stiffness", 0, "override stiffness")
	cmd.Flags().Float64Var(&damping, "damping", 0, "override damping")
	cmd.Flags().IntVar(&fps, "fps", scenes.FPS, "frame rate")
	cmd.Flags().IntVar(&frames, "frames", 120, "frames to sample")
}

// setup loads the config file, builds the logger and registers the
// bundled scenes. Flags override file values only when set explicitly.
func setup(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = defaultConfigFile
	}
	loaded, err := config.Load(path)
	switch {
	case err == nil:
		cfg = loaded
	case configFile == "" && errors.Is(err, fs.ErrNotExist):
		cfg = config.DefaultConfig()
	default:
		return err
	}

	if cmd.Flags().Changed("data") {
		cfg.Render.DataDir = dataDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	level, err := log.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "framekit",
		ReportTimestamp: level == log.DebugLevel,
	})

	registry = composition.NewRegistry()
	if err := scenes.Register(registry); err != nil {
		return err
	}
	logger.Debug("registry ready", "compositions", registry.Len(), "config", path)
	return nil
}
