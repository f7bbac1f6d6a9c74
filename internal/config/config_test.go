package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/podium/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DefaultNOC, convey.ShouldEqual, "USA")
			convey.So(cfg.DefaultTopN, convey.ShouldEqual, 10)
			convey.So(cfg.TopNMin, convey.ShouldEqual, 3)
			convey.So(cfg.TopNMax, convey.ShouldEqual, 30)
			convey.So(cfg.TopAthletes, convey.ShouldEqual, 5)
			convey.So(cfg.WordCloudWords, convey.ShouldEqual, 20)
			convey.So(cfg.WordCloudWidth, convey.ShouldEqual, 800)
			convey.So(cfg.WordCloudHeight, convey.ShouldEqual, 400)
			convey.So(cfg.SessionBackend, convey.ShouldEqual, config.BackendMemory)
			convey.So(cfg.SessionTTLSeconds, convey.ShouldEqual, 86400)
			convey.So(cfg.IndexWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.TrustForwardedFor, convey.ShouldBeFalse)
			convey.So(cfg.SecureCookies, convey.ShouldBeFalse)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsRefreshSeconds, convey.ShouldEqual, 10)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid configurations", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"empty athletes path", func(c *config.Config) { c.AthletesPath = "" }},
			{"inverted top-n bounds", func(c *config.Config) { c.TopNMin, c.TopNMax = 10, 5 }},
			{"zero top-n min", func(c *config.Config) { c.TopNMin = 0 }},
			{"unknown backend", func(c *config.Config) { c.SessionBackend = "memcached" }},
			{"unknown limiter", func(c *config.Config) { c.RateLimitBackend = "nginx" }},
			{"redis without addr", func(c *config.Config) { c.SessionBackend = config.BackendRedis }},
			{"redis limiter no addr", func(c *config.Config) { c.RateLimitBackend = config.LimiterRedis }},
			{"negative rate", func(c *config.Config) { c.RateLimitRPS = -1 }},
			{"zero metrics refresh", func(c *config.Config) { c.MetricsRefreshSeconds = 0 }},
			{"empty word cloud", func(c *config.Config) { c.WordCloudWidth = 0 }},
		}

		for _, tc := range cases {
			convey.Convey("When "+tc.name, func() {
				cfg := config.New()
				tc.mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("When redis is configured with an address", func() {
			cfg := config.New()
			cfg.SessionBackend = config.BackendRedis
			cfg.RedisAddr = "localhost:6379"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
