// Package watcher reports batches of changed project files once the tree has
// been quiet for a debounce interval.
package watcher

import (
	"ejbctx/internal/shared/observability"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

type Watcher struct {
	fs        *fsnotify.Watcher
	skipDirs  []glob.Glob
	skipFiles []glob.Glob
	exts      map[string]bool
	names     map[string]bool
	onChange  func([]string)
	// flushMu keeps callbacks from overlapping.
	flushMu sync.Mutex

	mu       sync.Mutex
	debounce time.Duration
	pending  map[string]struct{}
	timer    *time.Timer
	closed   bool
}

// NewWatcher compiles the base-name glob excludes. By default only .java files
// and ejb-jar.xml count as changes.
func NewWatcher(debounce time.Duration, excludeDirs, excludeFiles []string, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}
	skipDirs, err := compileAll(excludeDirs)
	if err != nil {
		return nil, err
	}
	skipFiles, err := compileAll(excludeFiles)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:        fsw,
		skipDirs:  skipDirs,
		skipFiles: skipFiles,
		onChange:  onChange,
		debounce:  debounce,
		pending:   make(map[string]struct{}),
	}
	w.SetFilters([]string{".java"}, []string{"ejb-jar.xml"})
	return w, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// SetFilters replaces the extensions and exact base names that count as
// changes. Matching is case-insensitive.
func (w *Watcher) SetFilters(extensions, filenames []string) {
	w.exts = lowerSet(extensions)
	w.names = lowerSet(filenames)
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			set[v] = true
		}
	}
	return set
}

func (w *Watcher) SetDebounce(debounce time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = debounce
}

// Watch registers every non-excluded directory under roots and starts the
// event loop.
func (w *Watcher) Watch(roots []string) error {
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			return err
		}
	}
	go w.loop()
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir(path) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			observability.WatchEventsTotal.Inc()
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.skipDir(event.Name) {
				return
			}
			// Files may land before the directory watch exists.
			if err := w.addTree(event.Name); err != nil {
				slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
				return
			}
			w.queueTree(event.Name)
			return
		}
	}
	if event.Op&relevantOps == 0 || !w.accepts(event.Name) {
		return
	}
	w.queue(event.Name)
}

func (w *Watcher) queue(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) queueTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err == nil && d != nil && !d.IsDir() && w.accepts(path) {
			w.queue(path)
		}
		return nil
	})
}

// flush hands the pending paths, sorted, to the callback.
func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	sort.Strings(paths)
	w.flushMu.Lock()
	defer w.flushMu.Unlock()
	w.onChange(paths)
}

func (w *Watcher) skipDir(path string) bool {
	return matchesAny(w.skipDirs, filepath.Base(path))
}

func (w *Watcher) accepts(path string) bool {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	if !w.names[lower] && !w.exts[strings.ToLower(filepath.Ext(lower))] {
		return false
	}
	return !matchesAny(w.skipFiles, base)
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Close stops the event loop. Pending changes are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fs.Close()
}
