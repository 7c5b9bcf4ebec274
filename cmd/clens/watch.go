package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"clens/internal/driver"
	"clens/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] file|dir...",
	Short: "Re-run diagnostics whenever watched sources change",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringSlice("include", nil, "file globs to analyse (default *.c,*.h)")
	watchCmd.Flags().StringSlice("exclude", nil, "file and directory globs to skip")
	watchCmd.Flags().Duration("debounce", 0, "quiet period before re-analysis")
	watchCmd.Flags().String("format", "", "output format (pretty|short|json|msgpack)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	filter, err := driver.NewFilter(current.cfg.Batch.Include, current.cfg.Batch.Exclude)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	analyse := func(paths []string) {
		for _, path := range paths {
			fr, err := driver.AnalyzeFile(ctx, path, current.opts)
			if err != nil {
				// файл мог быть удалён между событием и анализом
				if !errors.Is(err, os.ErrNotExist) {
					slog.Warn("cannot analyse changed file", "path", path, "error", err)
				}
				continue
			}
			if err := writeDiagnostics(out, fr.File, fr.Result); err != nil {
				slog.Error("write report", "error", err)
			}
		}
	}

	w, err := watch.New(filter, current.cfg.Watch.Debounce, analyse)
	if err != nil {
		return err
	}
	defer w.Close()

	var initial []string
	for _, root := range args {
		if err := w.Add(root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		files, err := initialFiles(root, filter)
		if err != nil {
			return err
		}
		initial = append(initial, files...)
	}
	analyse(initial)
	if !current.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %d path(s), %s debounce; Ctrl-C to stop\n",
			len(args), current.cfg.Watch.Debounce.Round(time.Millisecond))
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func initialFiles(root string, filter *driver.Filter) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	return filter.List(root)
}
