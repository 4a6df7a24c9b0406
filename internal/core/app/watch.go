package app

import (
	"context"
	"ejbctx/internal/core/errors"
	"ejbctx/internal/core/watcher"
	"ejbctx/internal/engine/project"
	"ejbctx/internal/engine/scanner"
	"ejbctx/internal/shared/observability"
	"log/slog"
	"os"
)

// Watch analyzes root once, then re-runs the full analysis whenever Java
// sources or the deployment descriptor change, until ctx is done. onResult
// receives every run's result and may be nil.
func (a *App) Watch(ctx context.Context, root string, onResult func(Result)) error {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return errors.AddContext(errors.New(errors.CodeValidationError, "watch requires a project directory"), errors.CtxPath, root)
	}

	report := func(res Result) {
		if onResult != nil {
			onResult(res)
		}
	}

	report(a.Analyze(ctx, AnalyzeRequest{Path: root}))

	cfg := a.config()
	w, err := watcher.NewWatcher(cfg.Watch.Debounce, cfg.Exclude.Dirs, cfg.Exclude.Files, func(paths []string) {
		if ctx.Err() != nil {
			return
		}
		observability.RescansTotal.Inc()
		slog.Info("sources changed, rescanning", "files", len(paths))
		report(a.Analyze(ctx, AnalyzeRequest{Path: root}))
	})
	if err != nil {
		return err
	}
	defer w.Close()
	w.SetFilters([]string{scanner.JavaExtension}, []string{project.DescriptorName})

	if err := w.Watch([]string{root}); err != nil {
		return err
	}
	slog.Info("watching project", "path", root, "debounce", cfg.Watch.Debounce)

	<-ctx.Done()
	return nil
}
