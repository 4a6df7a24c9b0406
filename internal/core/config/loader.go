package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	return finalize(&cfg)
}

func finalize(cfg *Config) (*Config, error) {
	ApplyEnvOverrides(cfg)
	applyDefaults(cfg)
	normalizeAnalysis(cfg)

	if err := validateVersion(cfg); err != nil {
		return nil, err
	}
	if err := validateExclude(cfg); err != nil {
		return nil, err
	}
	if err := validateAnalysis(cfg); err != nil {
		return nil, err
	}
	if err := validateStore(cfg); err != nil {
		return nil, err
	}
	if err := validateGeneration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults only when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return finalize(&Config{})
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return finalize(&Config{})
	}
	return Load(path)
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Paths.StateDir) == "" {
		cfg.Paths.StateDir = "data/state"
	}

	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = append([]string(nil), DefaultIgnoredDirs...)
	}
	if len(cfg.Exclude.Extensions) == 0 {
		cfg.Exclude.Extensions = append([]string(nil), DefaultIgnoredExtensions...)
	}

	if cfg.Analysis.SampleLimit <= 0 {
		cfg.Analysis.SampleLimit = 100
	}
	if strings.TrimSpace(cfg.Analysis.MethodExtractor) == "" {
		cfg.Analysis.MethodExtractor = MethodExtractorRegex
	}
	if cfg.Analysis.MaxSourceBytes <= 0 {
		cfg.Analysis.MaxSourceBytes = 256 * 1024
	}

	if strings.TrimSpace(cfg.Output.BackupDir) == "" {
		cfg.Output.BackupDir = ".ejb_contexts"
	}

	if strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = cfg.Paths.StateDir + "/contexts.db"
	}
	if strings.TrimSpace(cfg.Store.Collection) == "" {
		cfg.Store.Collection = "ejb_interfaces"
	}

	// Default debounce if not set.
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}

	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = "ejbctx"
	}

	if cfg.Generation.RequestsPerSecond <= 0 {
		cfg.Generation.RequestsPerSecond = 1
	}
	if cfg.Generation.Burst <= 0 {
		cfg.Generation.Burst = 1
	}
	if strings.TrimSpace(cfg.Generation.OutputDir) == "" {
		cfg.Generation.OutputDir = "docs/ejb"
	}
}

func normalizeAnalysis(cfg *Config) {
	cfg.Analysis.MethodExtractor = strings.ToLower(strings.TrimSpace(cfg.Analysis.MethodExtractor))
	cfg.Store.Collection = strings.TrimSpace(cfg.Store.Collection)
	cfg.Observability.OTLPEndpoint = strings.TrimSpace(cfg.Observability.OTLPEndpoint)
	cfg.Observability.MetricsAddress = strings.TrimSpace(cfg.Observability.MetricsAddress)
}
