// Package watch re-runs analysis when watched sources change on disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"clens/internal/driver"
	"clens/internal/observ"
)

// DefaultDebounce groups bursts of events from a single save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher collects changed source paths and reports them in debounced
// batches. Directories are watched recursively through Filter; files added
// explicitly are reported regardless of the include patterns.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	filter     *driver.Filter
	debounce   time.Duration
	onChange   func([]string)
	callbackMu sync.Mutex

	mu      sync.Mutex
	files   map[string]bool // явно добавленные файлы
	dirs    map[string]bool // каталоги, просматриваемые через фильтр
	pending map[string]struct{}
	timer   *time.Timer
}

// New creates a watcher. onChange receives sorted, de-duplicated paths and
// is never called concurrently with itself.
func New(filter *driver.Filter, debounce time.Duration, onChange func([]string)) (*Watcher, error) {
	if onChange == nil || filter == nil {
		return nil, os.ErrInvalid
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		filter:    filter,
		debounce:  debounce,
		onChange:  onChange,
		files:     make(map[string]bool),
		dirs:      make(map[string]bool),
		pending:   make(map[string]struct{}),
	}, nil
}

// Add watches path: a directory recursively, a file through its parent
// directory (editors often replace files on save, which drops a direct watch).
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		clean := filepath.Clean(path)
		w.mu.Lock()
		w.files[clean] = true
		w.mu.Unlock()
		return w.fsWatcher.Add(filepath.Dir(clean))
	}
	return w.addRecursive(path)
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.filter.ExcludeDir(path) {
			return filepath.SkipDir
		}
		w.mu.Lock()
		w.dirs[filepath.Clean(path)] = true
		w.mu.Unlock()
		return w.fsWatcher.Add(path)
	})
}

// Run dispatches events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			observ.WatcherEventsTotal.Inc()
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if w.watchedDir(filepath.Dir(path)) && !w.filter.ExcludeDir(path) {
				if err := w.addRecursive(path); err != nil {
					slog.Warn("failed to watch new directory", "path", path, "error", err)
				} else {
					w.enqueueExisting(path)
				}
			}
			return
		}
	}
	if !w.accept(path) {
		return
	}
	if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		w.schedule(path)
	}
}

func (w *Watcher) watchedDir(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirs[dir]
}

func (w *Watcher) accept(path string) bool {
	w.mu.Lock()
	explicit, inDir := w.files[path], w.dirs[filepath.Dir(path)]
	w.mu.Unlock()
	return explicit || (inDir && w.filter.Match(path))
}

func (w *Watcher) enqueueExisting(root string) {
	files, err := w.filter.List(root)
	if err != nil {
		slog.Warn("failed to list new directory", "path", root, "error", err)
		return
	}
	for _, f := range files {
		w.schedule(f)
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

// Close stops the watcher. Pending changes are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsWatcher.Close()
}
