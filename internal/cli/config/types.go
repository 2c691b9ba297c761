// Package config provides configuration management for the FlowLens CLI.
//
// Configuration is layered: built-in defaults, then flowlens.yaml, then
// FLOWLENS_* environment variables, then command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	APIURL       string `koanf:"api_url"`
	APIToken     string `koanf:"api_token"`
	CachePath    string `koanf:"cache_path"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
	MaxDepth     int    `koanf:"max_depth"`
	Offline      bool   `koanf:"offline"`
	KeepSnaps    int    `koanf:"keep_snapshots"`
}

// Default configuration values.
const (
	DefaultCachePath = ".flowlens/cache.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultMaxDepth  = 3
	DefaultKeepSnaps = 5
)
