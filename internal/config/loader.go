package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvConfigFile names the environment variable holding the YAML config path.
const EnvConfigFile = "PODIUM_CONFIG"

const envPrefix = "PODIUM_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PODIUM_CONFIG is set
//  3. env (prefix PODIUM_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// PODIUM_ATHLETES_PATH -> athletes_path (flat keys, underscores kept)
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.AthletesPath == "":
		return fmt.Errorf("%w: athletes_path must not be empty", ErrInvalidConfig)
	case c.TopNMin <= 0 || c.TopNMin > c.TopNMax:
		return fmt.Errorf("%w: top_n bounds [%d,%d]", ErrInvalidConfig, c.TopNMin, c.TopNMax)
	case c.SessionBackend != BackendMemory && c.SessionBackend != BackendRedis:
		return fmt.Errorf("%w: unknown session_backend %q", ErrInvalidConfig, c.SessionBackend)
	case c.RateLimitBackend != LimiterLocal && c.RateLimitBackend != LimiterRedis:
		return fmt.Errorf("%w: unknown rate_limit_backend %q", ErrInvalidConfig, c.RateLimitBackend)
	case (c.SessionBackend == BackendRedis || c.RateLimitBackend == LimiterRedis) && c.RedisAddr == "":
		return fmt.Errorf("%w: redis_addr is required for the redis backend", ErrInvalidConfig)
	case c.RateLimitRPS < 0 || c.RateLimitBurst < 0:
		return fmt.Errorf("%w: negative rate limit", ErrInvalidConfig)
	case c.MetricsRefreshSeconds <= 0:
		return fmt.Errorf("%w: metrics_refresh_seconds must be positive", ErrInvalidConfig)
	case c.WordCloudWidth <= 0 || c.WordCloudHeight <= 0:
		return fmt.Errorf("%w: word cloud size %dx%d", ErrInvalidConfig, c.WordCloudWidth, c.WordCloudHeight)
	}
	return nil
}
