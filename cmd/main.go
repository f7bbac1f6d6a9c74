package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/http/site"
	"github.com/okian/podium/internal/adapters/http/swagger"
	"github.com/okian/podium/internal/adapters/session"
	app "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(metricsOptions(cfg)...)

	rdb, err := dialRedis(ctx, cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to connect to redis", logger.String("addr", cfg.RedisAddr), logger.Error(err))
		return
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	svc := app.New(serviceOptions(cfg, rdb, loggerInstance)...)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx, metrics.RefreshInterval())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, svc, rdb),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// dialRedis connects when a redis backend is configured and returns nil otherwise.
func dialRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.SessionBackend != config.BackendRedis && cfg.RateLimitBackend != config.LimiterRedis {
		return nil, nil
	}
	return session.Dial(ctx, session.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// serviceOptions maps configuration onto service options.
func serviceOptions(cfg *config.Config, rdb *redis.Client, l logger.Logger) []app.Option {
	ttl := time.Duration(cfg.SessionTTLSeconds) * time.Second
	opts := []app.Option{
		app.WithLogger(l),
		app.WithDataPaths(cfg.AthletesPath, cfg.RegionsPath),
		app.WithDefaultCountry(cfg.DefaultNOC),
		app.WithTopNBounds(cfg.TopNMin, cfg.TopNMax, cfg.DefaultTopN),
		app.WithTopAthletes(cfg.TopAthletes),
		app.WithWordCloud(cfg.WordCloudWords, cfg.WordCloudWidth, cfg.WordCloudHeight),
		app.WithIndexWorkers(cfg.IndexWorkers),
		app.WithSessionLimits(ttl, cfg.SessionMaxEntries),
	}
	if cfg.SessionBackend == config.BackendRedis && rdb != nil {
		opts = append(opts, app.WithSessionStore(session.NewRedisStore(rdb, cfg.RedisPrefix, ttl)))
	}
	return opts
}

// metricsOptions maps configuration onto the metrics manager.
func metricsOptions(cfg *config.Config) []metrics.Option {
	opts := []metrics.Option{
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithRefreshInterval(time.Duration(cfg.MetricsRefreshSeconds) * time.Second),
	}
	if cfg.MetricsInstance != "" {
		opts = append(opts, metrics.WithCustomLabels(map[string]string{"instance": cfg.MetricsInstance}))
	}
	return opts
}

// newLimiter returns the configured per-client limiter, or nil when disabled.
func newLimiter(cfg *config.Config, rdb *redis.Client) api.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	if cfg.RateLimitBackend == config.LimiterRedis && rdb != nil {
		return api.NewRedisLimiter(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst, "")
	}
	return api.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

// newMux registers docs, API and page routes.
func newMux(ctx context.Context, cfg *config.Config, svc *app.Service, rdb *redis.Client) *http.ServeMux {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)

	opts := []api.Option{
		api.WithSessionTTL(time.Duration(cfg.SessionTTLSeconds) * time.Second),
		api.WithSecureCookies(cfg.SecureCookies),
		api.WithTrustForwardedFor(cfg.TrustForwardedFor),
	}
	if l := newLimiter(cfg, rdb); l != nil {
		opts = append(opts, api.WithRateLimiter(l))
	}
	api.NewServer(svc, svc, opts...).Register(ctx, mux)

	site.Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater refreshes system gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
