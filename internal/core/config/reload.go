package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// restartOnly lists keys whose new values are reported but only take effect
// after the process restarts.
var restartOnly = map[string]bool{
	"paths.project_root":            true,
	"paths.state_dir":               true,
	"store.enabled":                 true,
	"store.path":                    true,
	"store.collection":              true,
	"watch.debounce":                true,
	"observability.metrics_address": true,
	"observability.otlp_endpoint":   true,
	"observability.service_name":    true,
}

// Reloader re-reads a config file after it is edited and hands the result to
// apply when any setting differs from the one in effect.
type Reloader struct {
	path  string
	apply func(*Config)

	mu      sync.Mutex
	current *Config
	pending *time.Timer

	cancel context.CancelFunc
	done   chan struct{}
}

// NewReloader tracks path. current is the configuration already in effect
// and is the baseline for the first diff.
func NewReloader(path string, current *Config, apply func(*Config)) *Reloader {
	return &Reloader{path: filepath.Clean(path), current: current, apply: apply}
}

// Start watches the file's directory, so editors that save by rename are
// seen. Invalid edits are logged and the previous settings stay in effect.
func (r *Reloader) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(r.path)); err != nil {
		_ = fsw.Close()
		return err
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	slog.Info("watching config file", "path", r.path)
	go r.run(ctx, fsw)
	return nil
}

// Stop ends the watch and waits for it to exit. It is safe to call more
// than once.
func (r *Reloader) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Reloader) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(r.done)
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			if r.pending != nil {
				r.pending.Stop()
			}
			r.mu.Unlock()
			return
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) == r.path && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				r.schedule()
			}
		}
	}
}

func (r *Reloader) schedule() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		r.pending = time.AfterFunc(reloadDebounce, r.reload)
		return
	}
	r.pending.Reset(reloadDebounce)
}

func (r *Reloader) reload() {
	next, err := Load(r.path)
	if err != nil {
		slog.Warn("config edit rejected, keeping previous settings", "path", r.path, "error", err)
		return
	}

	r.mu.Lock()
	changed := Changes(r.current, next)
	r.current = next
	r.mu.Unlock()

	if len(changed) == 0 {
		slog.Debug("config file saved without changes", "path", r.path)
		return
	}
	slog.Info("configuration reloaded", "path", r.path, "changed", changed)
	for _, key := range changed {
		if restartOnly[key] {
			slog.Warn("setting takes effect after restart", "key", key)
		}
	}
	if r.apply != nil {
		r.apply(next)
	}
}

// Changes returns the dotted TOML keys whose values differ between prev and
// next, in declaration order. A nil side yields no changes.
func Changes(prev, next *Config) []string {
	if prev == nil || next == nil {
		return nil
	}

	var keys []string
	check := func(key string, same bool) {
		if !same {
			keys = append(keys, key)
		}
	}

	check("paths.project_root", prev.Paths.ProjectRoot == next.Paths.ProjectRoot)
	check("paths.state_dir", prev.Paths.StateDir == next.Paths.StateDir)
	check("exclude.dirs", slices.Equal(prev.Exclude.Dirs, next.Exclude.Dirs))
	check("exclude.files", slices.Equal(prev.Exclude.Files, next.Exclude.Files))
	check("exclude.extensions", slices.Equal(prev.Exclude.Extensions, next.Exclude.Extensions))
	check("analysis.sample_limit", prev.Analysis.SampleLimit == next.Analysis.SampleLimit)
	check("analysis.method_extractor", prev.Analysis.MethodExtractor == next.Analysis.MethodExtractor)
	check("analysis.max_source_bytes", prev.Analysis.MaxSourceBytes == next.Analysis.MaxSourceBytes)
	check("output.backup_dir", prev.Output.BackupDir == next.Output.BackupDir)
	check("output.write_backups", prev.Output.BackupsEnabled() == next.Output.BackupsEnabled())
	check("output.manifest", prev.Output.Manifest == next.Output.Manifest)
	check("store.enabled", prev.Store.IsEnabled() == next.Store.IsEnabled())
	check("store.path", prev.Store.Path == next.Store.Path)
	check("store.collection", prev.Store.Collection == next.Store.Collection)
	check("watch.debounce", prev.Watch.Debounce == next.Watch.Debounce)
	check("observability.metrics_address", prev.Observability.MetricsAddress == next.Observability.MetricsAddress)
	check("observability.otlp_endpoint", prev.Observability.OTLPEndpoint == next.Observability.OTLPEndpoint)
	check("observability.service_name", prev.Observability.ServiceName == next.Observability.ServiceName)
	check("generation.requests_per_second", prev.Generation.RequestsPerSecond == next.Generation.RequestsPerSecond)
	check("generation.burst", prev.Generation.Burst == next.Generation.Burst)
	check("generation.output_dir", prev.Generation.OutputDir == next.Generation.OutputDir)
	check("generation.command", slices.Equal(prev.Generation.Command, next.Generation.Command))
	return keys
}
