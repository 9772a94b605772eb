package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const wageRateKeyPrefix = "wage_rate:"

// RateSource is the authoritative wage-rate lookup
type RateSource interface {
	GetHourlyRate(ctx context.Context, rateCardLevel int) (decimal.Decimal, error)
}

// WageRates caches hourly rates in front of a RateSource. Cache failures never fail a lookup.
type WageRates struct {
	source RateSource
	cache  *Redis
	ttl    time.Duration
}

// NewWageRates wraps source. A non-positive ttl uses DefaultTTLFromEnv.
func NewWageRates(source RateSource, cache *Redis, ttl time.Duration) *WageRates {
	if cache == nil {
		cache = &Redis{log: logrus.New()}
	}
	return &WageRates{source: source, cache: cache, ttl: ttl}
}

// GetHourlyRate returns the cached rate or loads and caches it
func (w *WageRates) GetHourlyRate(ctx context.Context, rateCardLevel int) (decimal.Decimal, error) {
	key := wageRateKey(rateCardLevel)

	var cached decimal.Decimal
	hit, err := w.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		w.cache.log.WithError(err).WithField("key", key).Debug("wage rate cache read failed")
	}
	if hit {
		return cached, nil
	}

	rate, err := w.source.GetHourlyRate(ctx, rateCardLevel)
	if err != nil {
		return decimal.Zero, err
	}
	if err := w.cache.SetJSON(ctx, key, rate, w.ttl); err != nil {
		w.cache.log.WithError(err).WithField("key", key).Debug("wage rate cache write failed")
	}
	return rate, nil
}

// Invalidate drops the cached rate of one level
func (w *WageRates) Invalidate(ctx context.Context, rateCardLevel int) error {
	return w.cache.Delete(ctx, wageRateKey(rateCardLevel))
}

// InvalidateAll drops every cached rate
func (w *WageRates) InvalidateAll(ctx context.Context) error {
	return w.cache.DeleteByPattern(ctx, wageRateKeyPrefix+"*")
}

func wageRateKey(level int) string {
	return fmt.Sprintf("%s%d", wageRateKeyPrefix, level)
}
