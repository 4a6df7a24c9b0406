package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

func validateVersion(cfg *Config) error {
	if cfg.Version < 1 {
		return fmt.Errorf("version must be >= 1, got %d", cfg.Version)
	}
	if cfg.Version > 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for i, pattern := range cfg.Exclude.Dirs {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.dirs[%d] invalid pattern %q: %w", i, pattern, err)
		}
	}
	for i, pattern := range cfg.Exclude.Files {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.files[%d] invalid pattern %q: %w", i, pattern, err)
		}
	}
	for i, ext := range cfg.Exclude.Extensions {
		if !strings.HasPrefix(strings.TrimSpace(ext), ".") {
			return fmt.Errorf("exclude.extensions[%d] must start with '.', got %q", i, ext)
		}
	}
	return nil
}

func validateAnalysis(cfg *Config) error {
	switch cfg.Analysis.MethodExtractor {
	case MethodExtractorRegex, MethodExtractorTreeSitter:
	default:
		return fmt.Errorf("analysis.method_extractor must be one of: %s, %s", MethodExtractorRegex, MethodExtractorTreeSitter)
	}
	if cfg.Analysis.SampleLimit < 1 {
		return fmt.Errorf("analysis.sample_limit must be >= 1, got %d", cfg.Analysis.SampleLimit)
	}
	return nil
}

func validateStore(cfg *Config) error {
	if !cfg.Store.IsEnabled() {
		return nil
	}
	if strings.TrimSpace(cfg.Store.Path) == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if cfg.Store.Collection == "" {
		return fmt.Errorf("store.collection must not be empty")
	}
	return nil
}

func validateGeneration(cfg *Config) error {
	if cfg.Generation.RequestsPerSecond > 100 {
		return fmt.Errorf("generation.requests_per_second must be <= 100, got %v", cfg.Generation.RequestsPerSecond)
	}
	return nil
}
