// Package config loads clens.toml. The file is optional; every key has a
// default and command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"clens/internal/diagfmt"
	"clens/internal/driver"
	"clens/internal/symbols"
)

// FileName is the name looked up by Find.
const FileName = "clens.toml"

// ErrNotFound is returned by Find when no clens.toml exists up to the
// filesystem root.
var ErrNotFound = errors.New(FileName + " not found")

// Config mirrors clens.toml.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Output   Output   `toml:"output"`
	Batch    Batch    `toml:"batch"`
	Watch    Watch    `toml:"watch"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type Analysis struct {
	ScopeMode     string        `toml:"scope_mode"`
	ContextRadius int           `toml:"context_radius"`
	Delay         time.Duration `toml:"delay"`
}

type Output struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"` // auto|always|never
	MaxDiagnostics int    `toml:"max_diagnostics"`
	PathMode       string `toml:"path_mode"`
}

type Batch struct {
	Jobs    int      `toml:"jobs"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Analysis: Analysis{
			ScopeMode:     symbols.ModeBlock.String(),
			ContextRadius: 5,
		},
		Output: Output{
			Format:   diagfmt.FormatPretty.String(),
			Color:    "auto",
			PathMode: diagfmt.PathModeAuto.String(),
		},
		Batch: Batch{
			Include: slices.Clone(driver.DefaultInclude),
			Exclude: slices.Clone(driver.DefaultExclude),
		},
		Watch: Watch{Debounce: 200 * time.Millisecond},
	}
}

// Find walks up from startDir to locate clens.toml.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load decodes path over the defaults. Keys the file leaves out keep their
// default; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("batch", "include") && len(cfg.Batch.Include) == 0 {
		return nil, fmt.Errorf("%s: batch.include must not be empty", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest clens.toml, falling back to Default
// when there is none.
func Discover(startDir string) (*Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := symbols.ParseMode(c.Analysis.ScopeMode); err != nil {
		return fmt.Errorf("analysis.scope_mode: %w", err)
	}
	if c.Analysis.ContextRadius < 0 {
		return fmt.Errorf("analysis.context_radius must be >= 0, got %d", c.Analysis.ContextRadius)
	}
	if c.Analysis.Delay < 0 {
		return fmt.Errorf("analysis.delay must be >= 0, got %s", c.Analysis.Delay)
	}
	if _, err := diagfmt.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be one of: auto, always, never")
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("output.max_diagnostics must be >= 0, got %d", c.Output.MaxDiagnostics)
	}
	if _, err := ParsePathMode(c.Output.PathMode); err != nil {
		return fmt.Errorf("output.path_mode: %w", err)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("batch.jobs must be >= 0, got %d", c.Batch.Jobs)
	}
	if _, err := driver.NewFilter(c.Batch.Include, c.Batch.Exclude); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %s", c.Watch.Debounce)
	}
	return nil
}

// ParsePathMode maps a config value to a diagfmt.PathMode.
func ParsePathMode(s string) (diagfmt.PathMode, error) {
	for _, m := range []diagfmt.PathMode{diagfmt.PathModeAuto, diagfmt.PathModeAbsolute, diagfmt.PathModeRelative, diagfmt.PathModeBasename} {
		if s == m.String() || (s == "" && m == diagfmt.PathModeAuto) {
			return m, nil
		}
	}
	return diagfmt.PathModeAuto, fmt.Errorf("unknown path mode %q", s)
}

// DriverOptions converts the analysis and output sections. The config is
// expected to be valid.
func (c *Config) DriverOptions() driver.Options {
	mode, _ := symbols.ParseMode(c.Analysis.ScopeMode) // проверено в Validate
	return driver.Options{
		ScopeMode:      mode,
		ContextRadius:  c.Analysis.ContextRadius,
		MaxDiagnostics: c.Output.MaxDiagnostics,
		Delay:          c.Analysis.Delay,
	}
}

// BatchOptions converts the batch section.
func (c *Config) BatchOptions() driver.BatchOptions {
	return driver.BatchOptions{
		Jobs:    c.Batch.Jobs,
		Include: c.Batch.Include,
		Exclude: c.Batch.Exclude,
	}
}
