// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Rate limit backends.
const (
	LimiterLocal = "local"
	LimiterRedis = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// AthletesPath points at athlete_events.csv (optionally .gz).
	AthletesPath string `koanf:"athletes_path"`
	// RegionsPath points at noc_regions.csv. Optional.
	RegionsPath string `koanf:"regions_path"`

	// DefaultNOC is the initial selection when present in the data.
	DefaultNOC string `koanf:"default_noc"`

	// Top-N sports control.
	DefaultTopN int `koanf:"default_top_n"`
	TopNMin     int `koanf:"top_n_min"`
	TopNMax     int `koanf:"top_n_max"`

	// TopAthletes sets the length of the top athletes card.
	TopAthletes int `koanf:"top_athletes"`

	// Word cloud.
	WordCloudWords  int `koanf:"wordcloud_words"`
	WordCloudWidth  int `koanf:"wordcloud_width"`
	WordCloudHeight int `koanf:"wordcloud_height"`

	// Sessions.
	SessionBackend    string `koanf:"session_backend"`
	SessionTTLSeconds int    `koanf:"session_ttl_seconds"`
	SessionMaxEntries int    `koanf:"session_max_entries"`
	RedisAddr         string `koanf:"redis_addr"`
	RedisPassword     string `koanf:"redis_password"`
	RedisDB           int    `koanf:"redis_db"`
	RedisPrefix       string `koanf:"redis_prefix"`

	// Per-client request limiting; RateLimitRPS 0 disables it.
	RateLimitRPS     float64 `koanf:"rate_limit_rps"`
	RateLimitBurst   int     `koanf:"rate_limit_burst"`
	RateLimitBackend string  `koanf:"rate_limit_backend"`

	// TrustForwardedFor keys clients by the first X-Forwarded-For hop.
	// Enable only behind a proxy that overwrites the header.
	TrustForwardedFor bool `koanf:"trust_forwarded_for"`

	// SecureCookies marks the session cookie Secure (HTTPS deployments).
	SecureCookies bool `koanf:"secure_cookies"`

	// Metrics.
	MetricsEnabled        bool   `koanf:"metrics_enabled"`
	MetricsRefreshSeconds int    `koanf:"metrics_refresh_seconds"`
	MetricsInstance       string `koanf:"metrics_instance"`

	// IndexWorkers bounds the goroutines building the country index.
	IndexWorkers int `koanf:"index_workers"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		AthletesPath:          "data/athlete_events.csv",
		RegionsPath:           "data/noc_regions.csv",
		DefaultNOC:            "USA",
		DefaultTopN:           10,
		TopNMin:               3,
		TopNMax:               30,
		TopAthletes:           5,
		WordCloudWords:        20,
		WordCloudWidth:        800,
		WordCloudHeight:       400,
		SessionBackend:        BackendMemory,
		SessionTTLSeconds:     86400,
		SessionMaxEntries:     100_000,
		RedisPrefix:           "podium:session:",
		RateLimitRPS:          50,
		RateLimitBurst:        100,
		RateLimitBackend:      LimiterLocal,
		MetricsEnabled:        true,
		MetricsRefreshSeconds: 10,
		IndexWorkers:          runtime.NumCPU(),
	}
}
