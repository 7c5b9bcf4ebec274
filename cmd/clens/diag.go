package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"clens/internal/diagfmt"
	"clens/internal/driver"
	"clens/internal/source"
	"clens/internal/ui"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file|dir|-]",
	Short: "Report diagnostics for a file or every source file under a directory",
	Long: `Diag prints only the diagnostics. Directories are walked recursively and
filtered by the include/exclude globs; files are analysed in parallel.
With json or msgpack each file is written as a separate document.
The exit status is 1 when any error diagnostic is reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiag,
}

func init() {
	addInputFlags(diagCmd)
	diagCmd.Flags().String("format", "", "output format (pretty|short|json|msgpack)")
	diagCmd.Flags().Int("jobs", 0, "parallel analyses for directories (0 = GOMAXPROCS)")
	diagCmd.Flags().StringSlice("include", nil, "file globs to analyse (default *.c,*.h)")
	diagCmd.Flags().StringSlice("exclude", nil, "file and directory globs to skip")
	diagCmd.Flags().String("progress", "auto", "progress view for directories (auto|on|off)")
}

func runDiag(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && args[0] != "-" {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if info.IsDir() {
			return runDiagDir(cmd, args[0])
		}
	}

	file, res, err := analyzeInput(cmd, args)
	if err != nil {
		return err
	}
	if err := writeDiagnostics(cmd.OutOrStdout(), file, res); err != nil {
		return err
	}
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func runDiagDir(cmd *cobra.Command, dir string) error {
	batch := current.cfg.BatchOptions()
	files, err := driver.ListFiles(dir, batch)
	if err != nil {
		return err
	}

	showProgress, err := progressEnabled(cmd)
	if err != nil {
		return err
	}

	var results []driver.FileResult
	if showProgress && len(files) > 0 {
		events := make(chan driver.Event, len(files))
		batch.Sink = driver.ChannelSink{Ch: events}
		uiErr := make(chan error, 1)
		go func() { uiErr <- ui.RunProgress("clens diag", files, events, cmd.ErrOrStderr()) }()
		results, err = driver.AnalyzeDir(cmd.Context(), dir, current.opts, batch)
		close(events)
		if e := <-uiErr; e != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "progress view: %v\n", e)
		}
	} else {
		results, err = driver.AnalyzeDir(cmd.Context(), dir, current.opts, batch)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, fr := range results {
		if fr.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", fr.Path, fr.Err)
			failed = true
			continue
		}
		if err := writeDiagnostics(out, fr.File, fr.Result); err != nil {
			return err
		}
		failed = failed || fr.HasErrors()
	}
	if !current.quiet && current.renderOpts().Format == diagfmt.FormatPretty {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) analysed\n", len(results))
	}
	if failed {
		return errDiagnostics
	}
	return nil
}

// writeDiagnostics prints the diagnostics of one file. With --quiet, clean
// files print nothing in pretty mode.
func writeDiagnostics(w io.Writer, file *source.File, res *driver.Result) error {
	opts := current.renderOpts()
	path := file.FormatPath(opts.Pretty.PathMode.String(), opts.Pretty.BaseDir)
	switch opts.Format {
	case diagfmt.FormatJSON:
		return diagfmt.JSON(w, diagfmt.NewFileDiagnostics(path, res.Diagnostics), diagfmt.JSONOpts{})
	case diagfmt.FormatMsgpack:
		return diagfmt.Msgpack(w, diagfmt.NewFileDiagnostics(path, res.Diagnostics))
	case diagfmt.FormatShort:
		return diagfmt.Short(w, res.Diagnostics, path)
	}
	if current.quiet && len(res.Diagnostics) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "== %s ==\n", path); err != nil {
		return err
	}
	if err := diagfmt.RenderDiagnostics(w, res, file, opts.Pretty); err != nil {
		return err
	}
	if opts.Timings {
		return diagfmt.FormatTimings(w, res.Timings)
	}
	return nil
}

func progressEnabled(cmd *cobra.Command) (bool, error) {
	mode, _ := cmd.Flags().GetString("progress")
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return !current.quiet && isTerminal(os.Stderr), nil
	}
	return false, fmt.Errorf("invalid --progress %q (want auto|on|off)", mode)
}
