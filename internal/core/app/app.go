// Package app wires the analysis pipeline, the context store and document
// generation behind one entry point used by the CLI.
package app

import (
	"ejbctx/internal/core/config"
	"ejbctx/internal/core/ports"
	"ejbctx/internal/data/contextstore"
	"ejbctx/internal/engine/ejb"
	"ejbctx/internal/engine/javasrc"
	"ejbctx/internal/engine/scanner"
	"ejbctx/internal/engine/supercontext"
	"ejbctx/internal/shared/util"
	"fmt"
	"os"
	"sync"
)

// Options supplies collaborators. A nil Store is opened from the config when
// the store is enabled; a nil Generator disables document generation.
type Options struct {
	Store     ports.ContextStore
	Generator ports.DocumentGenerator
}

type App struct {
	Config    *config.Config
	Store     ports.ContextStore
	Generator ports.DocumentGenerator

	limiter   *util.Limiter
	ownsStore bool

	// analyzeMu serialises full runs; the store is cleared and refilled per run.
	analyzeMu sync.Mutex
	configMu  sync.RWMutex
}

func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	a := &App{
		Config:    cfg,
		Store:     opts.Store,
		Generator: opts.Generator,
		limiter:   util.NewLimiter(cfg.Generation.RequestsPerSecond, cfg.Generation.Burst),
	}

	if a.Store == nil && cfg.Store.IsEnabled() {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		paths, err := config.ResolvePaths(cfg, cwd)
		if err != nil {
			return nil, err
		}
		store, err := contextstore.Open(paths.StorePath, cfg.Store.Collection)
		if err != nil {
			return nil, err
		}
		a.Store = store
		a.ownsStore = true
	}

	return a, nil
}

// Close releases the store if New opened it.
func (a *App) Close() error {
	if a.ownsStore && a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// SetConfig swaps the configuration used by subsequent runs.
func (a *App) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.Config = cfg
	a.limiter = util.NewLimiter(cfg.Generation.RequestsPerSecond, cfg.Generation.Burst)
}

func (a *App) config() *config.Config {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return a.Config
}

// ScannerOptions maps the exclude section onto scanner options.
func ScannerOptions(cfg *config.Config) scanner.Options {
	return scanner.Options{
		ExcludeDirs:       cfg.Exclude.Dirs,
		ExcludeFiles:      cfg.Exclude.Files,
		IgnoredExtensions: cfg.Exclude.Extensions,
	}
}

// ParserOptions maps the config onto parser options.
func ParserOptions(cfg *config.Config) ejb.Options {
	return ejb.Options{
		Scanner:   ScannerOptions(cfg),
		Extractor: javasrc.ExtractorFor(cfg.Analysis.MethodExtractor),
	}
}

func contextOptions(cfg *config.Config) supercontext.Options {
	return supercontext.Options{MaxSourceBytes: cfg.Analysis.MaxSourceBytes}
}
