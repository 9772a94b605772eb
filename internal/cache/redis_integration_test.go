//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestRedis(t *testing.T) *Redis {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	r := NewRedis(context.Background(), url, quietLogger())
	if !r.Available() {
		t.Skip("redis not reachable")
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestWageRates_CachesAfterFirstLookup(t *testing.T) {
	r := getTestRedis(t)
	ctx := context.Background()
	source := &countingSource{rates: map[int]decimal.Decimal{42: decimal.RequireFromString("101.25")}}
	rates := NewWageRates(source, r, time.Minute)
	require.NoError(t, rates.Invalidate(ctx, 42))

	for i := 0; i < 3; i++ {
		rate, err := rates.GetHourlyRate(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, "101.25", rate.String())
	}
	assert.Equal(t, 1, source.calls)

	require.NoError(t, rates.InvalidateAll(ctx))
	_, err := rates.GetHourlyRate(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}
