package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(h float64) *float64 { return &h }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		hours    float64
		discount float64
		want     string
	}{
		{"no discount", "100", 40, 0, "4000.00"},
		{"ten percent", "95.50", 40, 0.1, "3438.00"},
		{"twenty percent", "120", 20, 0.2, "1920.00"},
		{"full discount", "120", 20, 1, "0.00"},
		{"fractional hours", "80", 12.5, 0, "1000.00"},
		{"rounds to cents", "33.33", 3, 0.15, "84.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := Calculate(3, decimal.RequireFromString(tt.rate), hours(tt.hours), tt.discount)
			require.NoError(t, err)
			require.NotNil(t, line)
			assert.Equal(t, tt.want, line.WeeklyPrice.StringFixed(2))
			assert.Equal(t, 3, line.RateCardLevel)
		})
	}
}

func TestCalculate_NoPlannedHoursNoLine(t *testing.T) {
	line, err := Calculate(8, decimal.NewFromInt(100), nil, 0.2)
	assert.NoError(t, err)
	assert.Nil(t, line)
}

func TestCalculate_NegativeRate(t *testing.T) {
	_, err := Calculate(8, decimal.NewFromInt(-1), hours(10), 0)
	assert.Error(t, err)
}

func TestTotal(t *testing.T) {
	a, _ := Calculate(3, decimal.NewFromInt(100), hours(10), 0)
	b, _ := Calculate(8, decimal.NewFromInt(50), hours(10), 0.5)
	assert.Equal(t, "1250.00", Total(a, nil, b).StringFixed(2))
	assert.True(t, Total().IsZero())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1234.50 EUR", Format(decimal.RequireFromString("1234.5"), "EUR"))
	assert.Equal(t, "7.00", Format(decimal.NewFromInt(7), ""))
}
