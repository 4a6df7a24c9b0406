package config

import (
	"time"
)

type Config struct {
	Version       int           `toml:"version"`
	Paths         Paths         `toml:"paths"`
	Exclude       Exclude       `toml:"exclude"`
	Analysis      Analysis      `toml:"analysis"`
	Output        Output        `toml:"output"`
	Store         Store         `toml:"store"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
	Generation    Generation    `toml:"generation"`
}

type Paths struct {
	ProjectRoot string `toml:"project_root"`
	StateDir    string `toml:"state_dir"`
}

type Exclude struct {
	Dirs       []string `toml:"dirs"`       // Glob patterns matched against directory base names
	Files      []string `toml:"files"`      // Glob patterns matched against file base names
	Extensions []string `toml:"extensions"` // Binary/build artifacts never read
}

type Analysis struct {
	SampleLimit     int    `toml:"sample_limit"`
	MethodExtractor string `toml:"method_extractor"`
	MaxSourceBytes  int    `toml:"max_source_bytes"`
}

type Output struct {
	BackupDir    string `toml:"backup_dir"`
	WriteBackups *bool  `toml:"write_backups"`
	Manifest     string `toml:"manifest"`
}

type Store struct {
	Enabled    *bool  `toml:"enabled"`
	Path       string `toml:"path"`
	Collection string `toml:"collection"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Observability struct {
	MetricsAddress string `toml:"metrics_address"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
	ServiceName    string `toml:"service_name"`
}

type Generation struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	OutputDir         string  `toml:"output_dir"`
	// Command is run once per interface with the bundle on stdin; stdout is the markdown.
	Command []string `toml:"command"`
}

const (
	MethodExtractorRegex      = "regex"
	MethodExtractorTreeSitter = "treesitter"
)

// DefaultIgnoredDirs lists build, VCS and dependency directories skipped by the scanner.
var DefaultIgnoredDirs = []string{
	"__pycache__", "venv", "virtualenv", ".venv", ".virtualenv",
	"node_modules", ".git", ".svn", ".hg", ".idea",
	"build", "dist", "target", "bin", "obj",
	".tox", ".pytest_cache", ".mypy_cache",
	".eggs", "*.egg-info", ".vscode",
	".next", ".nuxt", "coverage", ".coverage",
	"vendor", "bower_components",
	".ejb_contexts",
}

// DefaultIgnoredExtensions lists binary and archive extensions never read as source.
var DefaultIgnoredExtensions = []string{
	".pyc", ".pyo", ".pyd", ".pyi",
	".so", ".dll", ".dylib", ".exe", ".bin",
	".o", ".a", ".lib", ".obj",
	".class", ".jar", ".war", ".ear",
	".log", ".bak", ".tmp", ".swp", ".swo",
	".zip", ".tar", ".gz", ".rar", ".7z",
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".svg",
	".mp3", ".mp4", ".avi", ".mov", ".wav",
	".ttf", ".otf", ".woff", ".woff2", ".eot",
	".pdb", ".idb", ".pch",
}

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func (o Output) BackupsEnabled() bool {
	if o.WriteBackups == nil {
		return true
	}
	return *o.WriteBackups
}

func (s Store) IsEnabled() bool {
	if s.Enabled == nil {
		return true
	}
	return *s.Enabled
}
