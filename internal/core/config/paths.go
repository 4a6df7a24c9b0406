package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolvedPaths holds the absolute locations derived from a config. The backup
// directory is not included: it is relative to each analyzed project.
type ResolvedPaths struct {
	BaseDir       string
	StateDir      string
	StorePath     string
	GenerationDir string
}

// ResolvePaths anchors relative config paths at paths.project_root, or at cwd
// when that is unset.
func ResolvePaths(cfg *Config, cwd string) (ResolvedPaths, error) {
	if strings.TrimSpace(cwd) == "" {
		return ResolvedPaths{}, fmt.Errorf("cwd must not be empty")
	}

	base := ResolveRelative(cwd, cfg.Paths.ProjectRoot)
	return ResolvedPaths{
		BaseDir:       base,
		StateDir:      ResolveRelative(base, cfg.Paths.StateDir),
		StorePath:     ResolveRelative(base, cfg.Store.Path),
		GenerationDir: ResolveRelative(base, cfg.Generation.OutputDir),
	}, nil
}

func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}
