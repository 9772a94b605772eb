package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/offer-composer/internal/cache"
	"github.com/jonathan/offer-composer/internal/config"
	"github.com/jonathan/offer-composer/internal/db"
	"github.com/jonathan/offer-composer/internal/document"
	"github.com/jonathan/offer-composer/internal/observability"
	"github.com/jonathan/offer-composer/internal/rendering"
	"github.com/sirupsen/logrus"
)

// settings resolves file, environment and defaults, then applies the flags that were set
func settings(overrides func(*config.Config)) (config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if overrides != nil {
		overrides(&cfg)
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// backends holds the connections shared by generate and serve
type backends struct {
	db    *db.DB
	redis *cache.Redis
	rates *cache.WageRates
	log   *logrus.Logger
}

func (b *backends) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.db != nil {
		b.db.Close()
	}
}

// connect opens the database and the optional rate cache
func connect(ctx context.Context, cfg config.Config, log *logrus.Logger) (*backends, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ttl := cache.DefaultTTLFromEnv()
	if cfg.RateCacheTTLSeconds > 0 {
		ttl = time.Duration(cfg.RateCacheTTLSeconds) * time.Second
	}
	redis := cache.NewRedis(ctx, cfg.RedisURL, log)

	return &backends{
		db:    database,
		redis: redis,
		rates: cache.NewWageRates(database, redis, ttl),
		log:   log,
	}, nil
}

// generator wires the stores, rate cache and renderer into a Generator. The downloader is
// left empty for the caller to supply.
func (b *backends) generator(cfg config.Config) (*document.Generator, error) {
	renderer, err := rendering.New(rendering.Options{
		Format:       cfg.Format,
		TemplatePath: cfg.Template,
		Currency:     cfg.Currency,
		PrintTimeout: time.Duration(cfg.PrintTimeoutSeconds) * time.Second,
		Logger:       b.log,
	})
	if err != nil {
		return nil, err
	}

	return document.NewGenerator(document.Collaborators{
		Employees: b.db,
		Offers:    b.db,
		Snapshots: b.db,
		Projects:  b.db,
		Rates:     b.rates,
		Renderer:  renderer,
	}, document.Options{
		MaxConcurrency: cfg.MaxConcurrency,
		Logger:         b.log,
	}), nil
}

func newLogger(cfg config.Config) *logrus.Logger {
	return observability.NewLogger(cfg.Verbose, nil)
}
