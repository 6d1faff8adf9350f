package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/san-kum/inetmap/internal/config"
	"github.com/san-kum/inetmap/internal/loader"
	"github.com/san-kum/inetmap/internal/scale"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile   string
	preset       string
	geometry     string
	observations string
	duplicates   string
	logLevel     string
	logFile      string
	// timing overrides
	introDelay time.Duration
	tick       time.Duration
	// play
	theme      string
	showSeries bool
	// render
	outDir string
	width  int
	height int
	year   int
	hover  string
	// legend, init-config
	legendSVG string
	force     bool
)

// main registers commands and flags, runs the interactive map when no
// subcommand is given, and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "inetmap",
		Short:         "animated map of internet adoption",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPlay,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "timing preset (see presets)")
	pf.StringVar(&geometry, "geometry", config.DefaultGeometry, "GeoJSON country boundaries")
	pf.StringVar(&observations, "observations", config.DefaultObservations, "CSV of country,year,subscriptions_per100")
	pf.StringVar(&duplicates, "duplicates", "last", "duplicate (country, year) policy: last, first, error")
	pf.StringVar(&logLevel, "log-level", "info", "log level")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.DurationVar(&introDelay, "intro", 3*time.Second, "delay before auto-play")
	pf.DurationVar(&tick, "tick", time.Second, "time per year during auto-play")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "interactive terminal map",
		RunE:  runPlay,
	}
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().StringVar(&theme, "theme", "ocean", "color theme")
		c.Flags().BoolVar(&showSeries, "series", true, "show the hovered country's series")
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "write SVG frames of the animation",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&outDir, "out", "frames", "output directory")
	renderCmd.Flags().IntVar(&width, "width", 960, "frame width")
	renderCmd.Flags().IntVar(&height, "height", 600, "frame height")
	renderCmd.Flags().IntVar(&year, "year", 0, "render one interactive frame for this year")
	renderCmd.Flags().StringVar(&hover, "hover", "", "country to hover in the single frame")

	seriesCmd := &cobra.Command{
		Use:   "series [country]",
		Short: "plot one country's series",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeries,
	}

	yearsCmd := &cobra.Command{
		Use:   "years",
		Short: "list years and coverage",
		RunE:  runYears,
	}

	legendCmd := &cobra.Command{
		Use:   "legend",
		Short: "print the color legend",
		RunE:  runLegend,
	}
	legendCmd.Flags().StringVar(&legendSVG, "svg", "", "also write the legend as SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list timing presets",
		RunE:  runPresets,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [path]",
		Short: "export the joined dataset to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportJSON,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInitConfig,
	}
	initConfigCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(playCmd, renderCmd, seriesCmd, yearsCmd, legendCmd, presetsCmd, exportJSONCmd, initConfigCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, the config file, the preset and changed
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Timing = *p
	}

	flags := cmd.Flags()
	if flags.Changed("geometry") {
		cfg.Geometry = geometry
	}
	if flags.Changed("observations") {
		cfg.Observations = observations
	}
	if flags.Changed("duplicates") {
		cfg.Duplicates = duplicates
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("intro") {
		cfg.Timing.IntroDelay = introDelay
	}
	if flags.Changed("tick") {
		cfg.Timing.Tick = tick
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// initLogging installs the global logger. The terminal UI owns the screen,
// so it logs nowhere unless a log file is configured.
func initLogging(cfg *config.Config, tui bool) error {
	if tui && cfg.Log.File == "" {
		zap.ReplaceGlobals(zap.NewNop())
		return nil
	}
	return config.InitLogger(cfg.Log)
}

func loadDataset(ctx context.Context, cfg *config.Config) (*loader.Dataset, *scale.Scale, error) {
	opts, err := cfg.LoaderOptions()
	if err != nil {
		return nil, nil, err
	}
	ds, err := loader.Load(ctx, cfg.Sources(), opts)
	if err != nil {
		return nil, nil, err
	}
	scOpts, err := cfg.ScaleOptions()
	if err != nil {
		return nil, nil, err
	}
	return ds, scale.New(ds.Max, scOpts), nil
}

// setup resolves config, logging and data for commands that need all three.
func setup(cmd *cobra.Command, tui bool) (*config.Config, *loader.Dataset, *scale.Scale, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := initLogging(cfg, tui); err != nil {
		return nil, nil, nil, err
	}
	ds, sc, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, ds, sc, nil
}
