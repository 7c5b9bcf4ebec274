package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"clens/internal/source"
	"clens/internal/trace"
)

// AnalyzeFile loads path (normalising BOM, CRLF and NFC) and analyses it.
func AnalyzeFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	return &FileResult{
		Path:   path,
		Flags:  file.Flags,
		File:   file,
		Result: AnalyzeSource(ctx, file, opts),
	}, nil
}

// BatchOptions configure AnalyzeDir.
type BatchOptions struct {
	Jobs    int // 0 = GOMAXPROCS
	Include []string
	Exclude []string
	Sink    ProgressSink
}

// ListFiles returns the files AnalyzeDir would analyse under dir.
func ListFiles(dir string, batch BatchOptions) ([]string, error) {
	filter, err := NewFilter(batch.Include, batch.Exclude)
	if err != nil {
		return nil, err
	}
	return filter.List(dir)
}

// AnalyzeDir analyses every matching file under dir in parallel. Results are
// in the lexical order of the paths. A file that cannot be read gets a
// FileResult with Err set and does not stop the batch.
func AnalyzeDir(ctx context.Context, dir string, opts Options, batch BatchOptions) ([]FileResult, error) {
	files, err := ListFiles(dir, batch)
	if err != nil {
		return nil, err
	}

	span, ctx := trace.Start(ctx, trace.ScopeDriver, "batch")
	defer span.End(fmt.Sprintf("files=%d", len(files)))

	for _, path := range files {
		emit(batch.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := batch.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			emit(batch.Sink, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})

			fr, err := AnalyzeFile(gctx, path, opts)
			if err != nil {
				results[i] = FileResult{Path: path, Err: err}
				emit(batch.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(started)})
				return nil
			}
			results[i] = *fr

			status := StatusDone
			if fr.HasErrors() {
				status = StatusError
			}
			emit(batch.Sink, Event{File: path, Stage: StageAnalyze, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
