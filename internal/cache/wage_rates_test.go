package cache

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	rates map[int]decimal.Decimal
	calls int
}

func (c *countingSource) GetHourlyRate(_ context.Context, level int) (decimal.Decimal, error) {
	c.calls++
	rate, ok := c.rates[level]
	if !ok {
		return decimal.Zero, errors.New("unknown level")
	}
	return rate, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewRedis_EmptyURLBypasses(t *testing.T) {
	r := NewRedis(context.Background(), "", quietLogger())
	assert.False(t, r.Available())
	assert.Error(t, r.Ping(context.Background()))
	assert.NoError(t, r.Close())
}

func TestNewRedis_InvalidURLBypasses(t *testing.T) {
	r := NewRedis(context.Background(), "not a url", quietLogger())
	assert.False(t, r.Available())
}

func TestNewRedis_UnreachableBypasses(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	r := NewRedis(ctx, "redis://127.0.0.1:1/0", quietLogger())
	assert.False(t, r.Available())
}

func TestRedis_BypassIsNoOp(t *testing.T) {
	r := &Redis{log: quietLogger()}
	ctx := context.Background()

	var out string
	hit, err := r.GetJSON(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, r.SetJSON(ctx, "k", "v", time.Minute))
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.DeleteByPattern(ctx, "k*"))

	var nilRedis *Redis
	assert.False(t, nilRedis.Available())
}

func TestWageRates_PassThroughWithoutRedis(t *testing.T) {
	source := &countingSource{rates: map[int]decimal.Decimal{3: decimal.RequireFromString("95.50")}}
	rates := NewWageRates(source, NewRedis(context.Background(), "", quietLogger()), 0)

	for i := 0; i < 2; i++ {
		rate, err := rates.GetHourlyRate(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "95.5", rate.String())
	}
	assert.Equal(t, 2, source.calls)

	_, err := rates.GetHourlyRate(context.Background(), 9)
	assert.Error(t, err)

	assert.NoError(t, rates.Invalidate(context.Background(), 3))
	assert.NoError(t, rates.InvalidateAll(context.Background()))
}

func TestWageRates_NilCache(t *testing.T) {
	source := &countingSource{rates: map[int]decimal.Decimal{8: decimal.NewFromInt(120)}}
	rate, err := NewWageRates(source, nil, time.Minute).GetHourlyRate(context.Background(), 8)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(120)))
}

func TestDefaultTTLFromEnv(t *testing.T) {
	t.Setenv("REDIS_TTL", "")
	assert.Equal(t, 600*time.Second, DefaultTTLFromEnv())
	t.Setenv("REDIS_TTL", "30")
	assert.Equal(t, 30*time.Second, DefaultTTLFromEnv())
	t.Setenv("REDIS_TTL", "-4")
	assert.Equal(t, 600*time.Second, DefaultTTLFromEnv())
}

func TestWageRateKey(t *testing.T) {
	assert.Equal(t, "wage_rate:8", wageRateKey(8))
}
