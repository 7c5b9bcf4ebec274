package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"clens/internal/config"
	"clens/internal/diagfmt"
	"clens/internal/driver"
	"clens/internal/observ"
	"clens/internal/prof"
)

// session is the resolved configuration of one CLI invocation: clens.toml
// overlaid with the flags the user set explicitly.
type session struct {
	cfg     *config.Config
	opts    driver.Options
	pretty  diagfmt.PrettyOpts
	quiet   bool
	timings bool

	metricsOut   string
	traceCleanup func()
	profiling    *prof.Session
}

var current *session

// errDiagnostics makes the process exit with status 1 without printing
// anything beyond the report itself.
var errDiagnostics = errors.New("error diagnostics reported")

func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	logLevel, _ := flags.GetString("log-level")
	if err := setupLogging(logLevel); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	useColor := cfg.Output.Color == "always" || (cfg.Output.Color == "auto" && isTerminal(os.Stdout))
	color.NoColor = !useColor

	pathMode, _ := config.ParsePathMode(cfg.Output.PathMode) // проверено в Validate
	wd, _ := os.Getwd()
	s := &session{
		cfg:  cfg,
		opts: cfg.DriverOptions(),
		pretty: diagfmt.PrettyOpts{
			Color:       useColor,
			PathMode:    pathMode,
			BaseDir:     wd,
			ShowContext: true,
		},
	}
	s.quiet, _ = flags.GetBool("quiet")
	s.timings, _ = flags.GetBool("timings")
	s.metricsOut, _ = flags.GetString("metrics-out")
	s.opts.Timings = s.timings
	s.opts.CrashDump = cmd.ErrOrStderr()

	s.traceCleanup, err = setupTracing(cmd)
	if err != nil {
		return err
	}
	s.profiling, err = setupProfiling(cmd)
	if err != nil {
		s.traceCleanup()
		return err
	}
	current = s
	return nil
}

// teardown flushes tracing, stops profiling and writes metrics. cobra skips
// post-run hooks when a command fails, so main calls it again; the second
// call is a no-op.
func teardown(_ *cobra.Command, _ []string) error {
	s := current
	if s == nil {
		return nil
	}
	current = nil
	if s.traceCleanup != nil {
		s.traceCleanup()
	}
	if err := s.profiling.Stop(); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	if s.metricsOut != "" {
		return observ.WriteMetrics(s.metricsOut)
	}
	return nil
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	path, err := config.Find(".")
	if errors.Is(err, config.ErrNotFound) {
		slog.Debug("no config file, using defaults")
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("using config", "path", path)
	return config.Load(path)
}

// applyFlags overrides config values with flags that were set explicitly.
// Subcommand-local flags (format, jobs, ...) are handled here too; Lookup
// returns nil for flags the command does not define.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	var err error
	setString := func(name string, dst *string) {
		if err == nil && changed(name) {
			*dst, err = flags.GetString(name)
		}
	}
	setInt := func(name string, dst *int) {
		if err == nil && changed(name) {
			*dst, err = flags.GetInt(name)
		}
	}
	setStrings := func(name string, dst *[]string) {
		if err == nil && changed(name) {
			*dst, err = flags.GetStringSlice(name)
		}
	}

	setString("color", &cfg.Output.Color)
	setString("format", &cfg.Output.Format)
	setString("path-mode", &cfg.Output.PathMode)
	setInt("max-diagnostics", &cfg.Output.MaxDiagnostics)
	setString("scope-mode", &cfg.Analysis.ScopeMode)
	setInt("context-radius", &cfg.Analysis.ContextRadius)
	setInt("jobs", &cfg.Batch.Jobs)
	setStrings("include", &cfg.Batch.Include)
	setStrings("exclude", &cfg.Batch.Exclude)
	if err == nil && changed("delay") {
		cfg.Analysis.Delay, err = flags.GetDuration("delay")
	}
	if err == nil && changed("debounce") {
		cfg.Watch.Debounce, err = flags.GetDuration("debounce")
	}
	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}
	return nil
}

// renderOpts returns the output options for the configured format.
func (s *session) renderOpts() diagfmt.RenderOpts {
	format, _ := diagfmt.ParseFormat(s.cfg.Output.Format) // проверено в Validate
	return diagfmt.RenderOpts{
		Format:  format,
		Pretty:  s.pretty,
		JSON:    diagfmt.JSONOpts{Indent: true},
		Timings: s.timings,
	}
}
