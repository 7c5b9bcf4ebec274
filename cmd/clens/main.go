package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clens/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "clens",
	Short: "Static analysis of C-like code fragments",
	Long: `clens tokenizes and parses short fragments of a C-like language and reports
scopes, control flow, a heuristic complexity estimate and compiler-style
diagnostics.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(complexityCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to clens.toml (default: search upwards from the working directory)")
	pf.String("color", "", "colorize output (auto|always|never)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show per-stage timings")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = unlimited)")
	pf.String("scope-mode", "", "scope tracking after control constructs (block|sticky)")
	pf.Int("context-radius", 0, "tokens quoted on each side of an invalid token")
	pf.Duration("delay", 0, "artificial delay before each analysis")
	pf.String("path-mode", "", "how file paths are printed (auto|absolute|relative|basename)")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("metrics-out", "", "write prometheus metrics to this file on exit")

	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "error", "trace level (off|error|stage|debug); error keeps a ring for crash dumps only")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 1024, "events kept in memory for crash dumps")

	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main executes the root command. Exit status is 1 on any error, including
// `diag` finding error diagnostics.
func main() {
	err := rootCmd.Execute()
	if terr := teardown(nil, nil); err == nil {
		err = terr
	}
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
