package commands

import (
	"fmt"
	"io"

	"github.com/tradingfury/macroscore/internal/external/tradingeconomics"
	"github.com/tradingfury/macroscore/internal/pipeline"
	"github.com/tradingfury/macroscore/internal/s0_data/collector"
	"github.com/tradingfury/macroscore/pkg/config"
	"github.com/tradingfury/macroscore/pkg/httputil"
	"github.com/tradingfury/macroscore/pkg/logger"
	"github.com/tradingfury/macroscore/pkg/redis"
)

// loadConfig reads configuration and applies the global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger writes logs to w so table output on stdout stays clean
func newLogger(cfg *config.Config, w io.Writer) *logger.Logger {
	return logger.NewWithWriter(cfg, w)
}

// newService wires the fetch, cache, collect and score stack.
// The returned function releases the Redis connection.
func newService(cfg *config.Config, log *logger.Logger) (*pipeline.Service, func(), error) {
	// 1. Redis (cache + shared rate limit)
	rc, err := redis.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	if rc.Enabled() {
		log.WithField("prefix", rc.Prefix()).Info("Connected to Redis")
	}

	// 2. HTTP client
	httpClient := httputil.New(cfg, log).WithPacing(cfg.Source.RequestsPerSec)
	if rc.Enabled() {
		httpClient = httpClient.WithRateLimiter(redis.NewRateLimiter(rc), redis.SourceRateLimit)
	}

	// 3. Indicator source
	source := tradingeconomics.NewClient(httpClient, redis.NewCache(rc), cfg.Source.CacheTTL, cfg.Source.BaseURL, log)

	// 4. Collector + pipeline
	col := collector.NewCollector(source, tradingeconomics.Parser{}, log)
	svc := pipeline.NewService(col, collector.Config{Workers: cfg.Source.Workers}, log)

	cleanup := func() {
		if err := rc.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Redis")
		}
	}

	return svc, cleanup, nil
}
