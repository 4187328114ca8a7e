package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/scisim/internal/automation"
	"github.com/san-kum/scisim/internal/catalog"
	"github.com/san-kum/scisim/internal/config"
	"github.com/san-kum/scisim/internal/scene"
	"github.com/san-kum/scisim/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logFile  string
	logger   *slog.Logger

	// Run settings shared by the export and viewer commands.
	configFile string
	preset     string
	sets       []string
	output     string
	simTime    float64
	speed      float64
	fps        int
	width      int
	height     int
	theme      string
	frames     int
	workers    int
	paused     bool

	// list filters
	subject    string
	difficulty string

	// sweep
	sweepParam    string
	sweepFrom     float64
	sweepTo       float64
	sweepSteps    int
	sweepQuantity string

	// plot
	column string

	// run
	duration float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scisim",
		Short: "interactive science simulations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := catalog.Load()
			if err != nil {
				return err
			}
			return viz.RunInteractive(entries, viz.Options{Theme: config.DefaultTheme, Logger: logger})
		},
	}
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".scisim", "data directory for traces")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list simulations in the catalog",
		Args:  cobra.NoArgs,
		RunE:  listCatalog,
	}
	listCmd.Flags().StringVar(&subject, "subject", "", "only this subject")
	listCmd.Flags().StringVar(&difficulty, "difficulty", "", "only this difficulty (easy, medium, hard)")

	paramsCmd := &cobra.Command{
		Use:   "params [sim]",
		Short: "show the parameters of a simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  showParams,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [sim]",
		Short: "list available presets for a simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for simulation: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render [sim]",
		Short: "render one frame to png or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	addRunFlags(renderCmd)
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "output file (.png or .svg)")

	animateCmd := &cobra.Command{
		Use:   "animate [sim]",
		Short: "render an animated gif",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnimate,
	}
	addRunFlags(animateCmd)
	animateCmd.Flags().StringVarP(&output, "output", "o", "", "output file (.gif)")
	animateCmd.Flags().IntVar(&frames, "frames", 120, "number of frames")
	animateCmd.Flags().IntVar(&workers, "workers", 0, "render workers (0 = one per CPU)")
	animateCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "playback frame rate")

	traceCmd := &cobra.Command{
		Use:   "trace [sim]",
		Short: "record per-frame quantities as a run",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrace,
	}
	addRunFlags(traceCmd)
	traceCmd.Flags().StringVarP(&output, "output", "o", "", "run directory (defaults to --data)")
	traceCmd.Flags().IntVar(&frames, "frames", 200, "number of frames")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id | trace.csv]",
		Short: "plot a trace column in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTrace,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "quantity to plot (default: first column)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [sim]",
		Short: "chart a quantity across a parameter range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVarP(&output, "output", "o", "", "output chart (.png)")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "start value (degrees for angles)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "end value (degrees for angles)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 50, "number of samples")
	sweepCmd.Flags().StringVar(&sweepQuantity, "quantity", "", "quantity to chart")
	_ = sweepCmd.MarkFlagRequired("param")
	_ = sweepCmd.MarkFlagRequired("quantity")

	runCmd := &cobra.Command{
		Use:   "run [sim]",
		Short: "run a simulation headless and report frame statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeadless,
	}
	addRunFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "duration", 5, "wall-clock seconds to run")
	runCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	runCmd.Flags().StringVarP(&output, "output", "o", "", "write the last frame as png")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted list of export jobs",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	liveCmd := &cobra.Command{
		Use:   "live [sim]",
		Short: "terminal view (catalog picker without a sim)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")
	liveCmd.Flags().BoolVar(&paused, "paused", false, "start paused")

	guiCmd := &cobra.Command{
		Use:   "gui [sim]",
		Short: "open a simulation in a window",
		Args:  cobra.ExactArgs(1),
		RunE:  runGUI,
	}
	addRunFlags(guiCmd)
	guiCmd.Flags().BoolVar(&paused, "paused", false, "start paused")

	rootCmd.AddCommand(listCmd, paramsCmd, presetsCmd, renderCmd, animateCmd, traceCmd, runsCmd,
		plotCmd, sweepCmd, runCmd, batchCmd, liveCmd, guiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addRunFlags registers the settings every simulation command accepts.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "override a parameter, name=value (repeatable)")
	cmd.Flags().Float64Var(&simTime, "time", 0, "elapsed simulation time")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "animation speed")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "output width in pixels")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "output height in pixels")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme")
}

func setupLogger(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		w = f
	} else if cmd.Name() == "live" || cmd.Root() == cmd {
		// The terminal belongs to the UI.
		w = io.Discard
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// buildJob resolves the run settings for sim. The preset is applied
// first, then the config file and --set values, then flags given
// explicitly.
func buildJob(cmd *cobra.Command, kind automation.Kind, sim string) (automation.Job, error) {
	s, err := scene.Get(sim)
	if err != nil {
		return automation.Job{}, err
	}
	cfg := config.DefaultConfig()
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return automation.Job{}, fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg.Simulation = s.ID()
	for _, kv := range sets {
		if err := cfg.Assign(s.Schema(), kv); err != nil {
			return automation.Job{}, fmt.Errorf("--set: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("time") {
		cfg.Time = simTime
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = fps
	}
	if err := cfg.Validate(); err != nil {
		return automation.Job{}, err
	}

	job := automation.Job{
		Kind:   kind,
		Preset: preset,
		Output: output,
		Config: *cfg,
	}
	if flags.Lookup("frames") != nil {
		job.Frames = frames
	}
	if flags.Lookup("workers") != nil {
		job.Workers = workers
	}
	return job, nil
}

// defaultOutput names an output after the simulation when -o is absent.
func defaultOutput(sim, ext string) string {
	if output != "" {
		return output
	}
	return strings.ReplaceAll(sim, "/", "_") + ext
}
