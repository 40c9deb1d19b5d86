package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/export"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/gui"
	"github.com/san-kum/driftfield/internal/motion"
	"github.com/san-kum/driftfield/internal/observability"
	"github.com/san-kum/driftfield/internal/storage"
	"github.com/san-kum/driftfield/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir       string
	configFile    string
	logLevel      string
	preset        string
	reducedMotion bool
	// tui
	theme string
	// snapshot
	frames  int
	outFile string
	seed    int64
	snapW   float64
	snapH   float64
	// bench
	benchFrames int
	benchSeed   int64
	benchJSON   string
	// config init
	overwrite bool
)

// main registers the commands, runs the window front end when no
// subcommand is given and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "driftfield",
		Short:         "interactive particle field",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&preset, "preset", "", "use preset motion profile")
	flags.BoolVar(&reducedMotion, "reduced-motion", false, "report the system reduced-motion setting as on")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "show the field in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "show the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme,
		"panel theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render frames headless and save the last one as SVG",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&frames, "frames", 120, "number of frames to render")
	snapshotCmd.Flags().StringVar(&outFile, "out", "driftfield.svg", "output file")
	snapshotCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	snapshotCmd.Flags().Float64Var(&snapW, "width", 0, "surface width (default render.width)")
	snapshotCmd.Flags().Float64Var(&snapH, "height", 0, "surface height (default render.height)")

	motionCmd := &cobra.Command{
		Use:       "motion [on|off|auto|status]",
		Short:     "show or store the motion preference",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off", "auto", "status"},
		RunE:      motionPreference,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame throughput for each preset",
		Args:  cobra.NoArgs,
		RunE:  benchPresets,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per run")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 42, "random seed")
	benchCmd.Flags().StringVar(&benchJSON, "json", "", "also write results as JSON (- for stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available motion presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&overwrite, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, snapshotCmd, benchCmd, motionCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env is what every command shares: the effective config, a logger and
// the preference store.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *storage.Store
}

// setup loads the config, applies flag overrides and opens the logger and
// store. Terminal mode keeps the console free and logs to a file only.
func setup(cmd *cobra.Command, terminal bool) (*env, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg.Motion = p
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logger.Level = logLevel
	}
	if cmd.Flags().Changed("reduced-motion") {
		cfg.System.ReducedMotion = reducedMotion
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("init data dir: %w", err)
	}

	console := observability.Stderr()
	if terminal {
		console = nil
		if cfg.Logger.File == "" {
			cfg.Logger.File = filepath.Join(cfg.DataDir, "driftfield.log")
		}
	}
	log, err := observability.New(cfg.Logger, console)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: store}, nil
}

// startField builds the scheduler and the motion policy feeding it, and
// resolves the starting motion state.
func (e *env) startField(b field.Bounds, rng *rand.Rand, ind *motion.Indicator) (*field.Scheduler, *motion.Policy) {
	sched := field.NewScheduler(field.New(b, rng), e.log.Named("scheduler"))
	opts := []motion.Option{
		motion.WithPresets(e.cfg.Motion.Enabled, e.cfg.Motion.Disabled),
		motion.WithLogger(e.log.Named("motion")),
	}
	if ind != nil {
		opts = append(opts, motion.WithIndicator(ind.Set))
	}
	policy := motion.New(e.store,
		func(s field.Settings, enabled bool) {
			sched.Post(field.MotionChanged{Settings: s, Enabled: enabled})
		},
		opts...,
	)
	policy.Init(e.cfg.System.ReducedMotion)
	return sched, policy
}

// watchSystem follows system.reduced_motion in the config file while the
// front end runs.
func (e *env) watchSystem(cmd *cobra.Command, policy *motion.Policy) {
	if configFile == "" || cmd.Flags().Changed("reduced-motion") {
		return
	}
	last := e.cfg.System.ReducedMotion
	err := config.Watch(configFile, func(cfg *config.Config) {
		if cfg.System.ReducedMotion == last {
			return
		}
		last = cfg.System.ReducedMotion
		applied := policy.SystemChanged(last)
		e.log.Info("system reduced-motion changed", zap.Bool("reduced", last), zap.Bool("applied", applied))
	}, func(err error) {
		e.log.Warn("config reload failed", zap.Error(err))
	})
	if err != nil {
		e.log.Warn("config watch disabled", zap.Error(err))
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer observability.Sync(e.log)

	r := e.cfg.Render
	ind := &motion.Indicator{}
	sched, policy := e.startField(field.Bounds{W: float64(r.Width), H: float64(r.Height)}, nil, ind)
	e.watchSystem(cmd, policy)

	app := gui.New(sched, policy, ind, e.log.Named("gui"), r.Background)
	if err := gui.Run(app, gui.Options{Title: "driftfield", Width: r.Width, Height: r.Height, FPS: r.FPS}); err != nil {
		e.log.Error("window closed", zap.Error(err))
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer observability.Sync(e.log)

	ind := &motion.Indicator{}
	sched, policy := e.startField(field.Bounds{}, nil, ind)
	e.watchSystem(cmd, policy)

	r := e.cfg.Render
	if cmd.Flags().Changed("theme") {
		r.Theme = theme
	}
	model := viz.NewModel(sched, policy, viz.Options{FPS: r.FPS, Theme: r.Theme, Background: r.Background, Indicator: ind})
	if err := viz.Run(model); err != nil {
		e.log.Error("terminal closed", zap.Error(err))
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if frames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", frames)
	}
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer observability.Sync(e.log)

	w, h := snapW, snapH
	if w <= 0 {
		w = float64(e.cfg.Render.Width)
	}
	if h <= 0 {
		h = float64(e.cfg.Render.Height)
	}
	svg := export.NewSVG(w, h, e.cfg.Render.Background)
	sched, _ := e.startField(field.Bounds{W: w, H: h}, rand.New(rand.NewSource(seed)), nil)

	ticks := make(chan time.Time, frames)
	for i := 0; i < frames; i++ {
		ticks <- time.Time{}
	}
	close(ticks)
	if err := sched.Run(cmd.Context(), svg, ticks); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := svg.WriteFile(outFile); err != nil {
		return err
	}
	stats := sched.Last()
	e.log.Info("snapshot written",
		zap.String("path", outFile),
		zap.Uint64("frames", sched.Frames()),
		zap.Int("particles", stats.Particles),
		zap.Int("links", stats.Edges))
	fmt.Printf("saved %s (%d particles, %d links)\n", outFile, stats.Particles, stats.Edges)
	return nil
}

func motionPreference(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer observability.Sync(e.log)

	policy := motion.New(e.store, nil, motion.WithLogger(e.log.Named("motion")))
	switch args[0] {
	case "on", "off":
		enabled, err := motion.ParsePreference(args[0])
		if err != nil {
			return err
		}
		policy.SetEnabled(enabled, motion.User)
		v, _, err := e.store.Get(motion.PreferenceKey)
		if err != nil {
			return err
		}
		if v != args[0] {
			return fmt.Errorf("motion preference not saved to %s", e.store.Path())
		}
		fmt.Printf("motion %s (stored in %s)\n", args[0], e.store.Path())
	case "auto":
		if err := policy.Forget(); err != nil {
			return err
		}
		fmt.Println("motion follows the system setting")
	case "status":
		enabled, _ := policy.Resolve(e.cfg.System.ReducedMotion)
		from := "system"
		if v, found, err := e.store.Get(motion.PreferenceKey); err != nil {
			return err
		} else if found {
			if _, err := motion.ParsePreference(v); err != nil {
				from = "system, stored value ignored"
			} else {
				from = "stored preference"
			}
		}
		fmt.Printf("motion %s (%s)\n", motion.FormatPreference(enabled), from)
	default:
		return errors.New("expected on, off, auto or status")
	}
	return nil
}

// discard is a surface that draws nothing, so bench times the field alone.
type discard struct{ w, h float64 }

func (d discard) Size() (float64, float64)                      { return d.w, d.h }
func (discard) Clear()                                          {}
func (discard) FillCircle(_, _, _ float64, _ color.NRGBA)       {}
func (discard) StrokeLine(_, _, _, _, _ float64, _ color.NRGBA) {}

func benchPresets(cmd *cobra.Command, args []string) error {
	if benchFrames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", benchFrames)
	}
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer observability.Sync(e.log)

	names := config.ListPresets()
	if preset != "" {
		names = []string{preset}
	}
	w, h := float64(e.cfg.Render.Width), float64(e.cfg.Render.Height)
	report := export.BenchReport{Width: w, Height: h, Seed: benchSeed}

	fmt.Printf("benchmarking %d frames at %.0fx%.0f\n\n", benchFrames, w, h)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tMOTION\tPARTICLES\tLINKS\tTIME\tFRAMES/SEC")

	for _, name := range names {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		for _, enabled := range []bool{true, false} {
			settings := p.Disabled
			if enabled {
				settings = p.Enabled
			}
			f := field.New(field.Bounds{W: w, H: h}, rand.New(rand.NewSource(benchSeed)))
			f.Apply(settings, enabled)
			sched := field.NewScheduler(f, e.log.Named("scheduler"))
			surface := discard{w, h}

			// keep the pointer in play so the repulsion branch is timed
			sched.Post(field.PointerMoved{X: w / 2, Y: h / 2})
			start := time.Now()
			var stats field.Stats
			for i := 0; i < benchFrames; i++ {
				stats = sched.Frame(surface)
			}
			elapsed := time.Since(start)

			r := export.BenchResult{
				Preset:       name,
				Enabled:      enabled,
				Particles:    stats.Particles,
				Links:        stats.Edges,
				Frames:       benchFrames,
				Elapsed:      elapsed,
				FramesPerSec: float64(benchFrames) / elapsed.Seconds(),
			}
			report.Results = append(report.Results, r)
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%v\t%.0f\n",
				name, motion.FormatPreference(enabled), r.Particles, r.Links, elapsed.Round(time.Microsecond), r.FramesPerSec)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	switch benchJSON {
	case "":
	case "-":
		return export.WriteJSON(os.Stdout, report)
	default:
		if err := export.ExportJSON(benchJSON, report); err != nil {
			return fmt.Errorf("write %s: %w", benchJSON, err)
		}
		e.log.Info("bench report written", zap.String("path", benchJSON))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPARTICLES\tDISTANCE\tPOINTER\tREDUCED")
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%d\n", name,
			p.Enabled.ParticleCount, p.Enabled.ConnectionDistance, p.Enabled.PointerRadius,
			p.Disabled.ParticleCount)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "driftfield.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
