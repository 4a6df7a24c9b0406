package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: EJBCTX_[SECTION]_[KEY] (e.g., EJBCTX_STORE_PATH).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Paths.ProjectRoot, "EJBCTX_PATHS_PROJECT_ROOT")
	setEnvString(&cfg.Paths.StateDir, "EJBCTX_PATHS_STATE_DIR")

	setEnvInt(&cfg.Analysis.SampleLimit, "EJBCTX_ANALYSIS_SAMPLE_LIMIT")
	setEnvString(&cfg.Analysis.MethodExtractor, "EJBCTX_ANALYSIS_METHOD_EXTRACTOR")
	setEnvInt(&cfg.Analysis.MaxSourceBytes, "EJBCTX_ANALYSIS_MAX_SOURCE_BYTES")

	setEnvString(&cfg.Output.BackupDir, "EJBCTX_OUTPUT_BACKUP_DIR")
	setEnvOptionalBool(&cfg.Output.WriteBackups, "EJBCTX_OUTPUT_WRITE_BACKUPS")
	setEnvString(&cfg.Output.Manifest, "EJBCTX_OUTPUT_MANIFEST")

	setEnvOptionalBool(&cfg.Store.Enabled, "EJBCTX_STORE_ENABLED")
	setEnvString(&cfg.Store.Path, "EJBCTX_STORE_PATH")
	setEnvString(&cfg.Store.Collection, "EJBCTX_STORE_COLLECTION")

	setEnvDuration(&cfg.Watch.Debounce, "EJBCTX_WATCH_DEBOUNCE")

	setEnvString(&cfg.Observability.MetricsAddress, "EJBCTX_OBSERVABILITY_METRICS_ADDRESS")
	setEnvString(&cfg.Observability.OTLPEndpoint, "EJBCTX_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvString(&cfg.Observability.ServiceName, "EJBCTX_OBSERVABILITY_SERVICE_NAME")

	setEnvFloat64(&cfg.Generation.RequestsPerSecond, "EJBCTX_GENERATION_REQUESTS_PER_SECOND")
	setEnvInt(&cfg.Generation.Burst, "EJBCTX_GENERATION_BURST")
	setEnvString(&cfg.Generation.OutputDir, "EJBCTX_GENERATION_OUTPUT_DIR")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvOptionalBool(target **bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = &b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
