package money

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInstallment(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		term     int
		rate     decimal.Decimal
		expected decimal.Decimal
	}{
		{
			name:     "standard loan",
			amount:   decimal.NewFromInt(1000),
			term:     12,
			rate:     decimal.NewFromFloat(0.05),
			expected: decimal.NewFromFloat(85.60),
		},
		{
			name:     "single period pays everything",
			amount:   decimal.NewFromInt(1000),
			term:     1,
			rate:     decimal.NewFromFloat(0.05),
			expected: decimal.NewFromFloat(1050.00),
		},
		{
			name:     "high rate short term",
			amount:   decimal.NewFromFloat(100.10),
			term:     2,
			rate:     decimal.NewFromFloat(0.87),
			expected: decimal.NewFromFloat(84.65),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Installment(tt.amount, tt.term, tt.rate)
			assert.True(t, result.Equal(tt.expected),
				"expected %v, got %v", tt.expected, result)
		})
	}
}

func TestInstallment_Truncates(t *testing.T) {
	// 1000 at 0.05 over 12 periods is 85.6075... exactly; rounding would give
	// 85.61, truncation must give 85.60.
	result := Installment(decimal.NewFromInt(1000), 12, decimal.NewFromFloat(0.05))
	assert.Equal(t, "85.6", result.String())
}

func TestInstallment_Deterministic(t *testing.T) {
	a := Installment(decimal.NewFromFloat(2500.50), 24, decimal.NewFromFloat(0.12))
	b := Installment(decimal.NewFromFloat(2500.50), 24, decimal.NewFromFloat(0.12))
	assert.True(t, a.Equal(b))
}

func TestOutstandingBalance(t *testing.T) {
	installment := decimal.NewFromFloat(78.9)

	tests := []struct {
		name      string
		term      int
		madeCount int
		expected  decimal.Decimal
	}{
		{
			name:      "no payments equals full schedule",
			term:      12,
			madeCount: 0,
			expected:  decimal.NewFromFloat(946.80),
		},
		{
			name:      "each made payment reduces by one installment",
			term:      12,
			madeCount: 1,
			expected:  decimal.NewFromFloat(867.90),
		},
		{
			name:      "fully paid",
			term:      12,
			madeCount: 12,
			expected:  decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := OutstandingBalance(installment, tt.term, tt.madeCount)
			assert.True(t, result.Equal(tt.expected),
				"expected %v, got %v", tt.expected, result)
		})
	}
}

func TestTotalScheduled(t *testing.T) {
	total := TotalScheduled(decimal.NewFromFloat(85.6), 12)
	assert.True(t, total.Equal(decimal.NewFromFloat(1027.20)))
}

func TestBeforeCalendarDate(t *testing.T) {
	loanDate := time.Date(2017, 8, 5, 2, 18, 0, 0, time.UTC)

	tests := []struct {
		name     string
		a        time.Time
		expected bool
	}{
		{
			name:     "earlier day",
			a:        time.Date(2017, 8, 4, 23, 59, 0, 0, time.UTC),
			expected: true,
		},
		{
			name: "same day earlier time of day is not before",
			// time of day must be ignored
			a:        time.Date(2017, 8, 5, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			name:     "later day",
			a:        time.Date(2017, 9, 5, 0, 0, 0, 0, time.UTC),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BeforeCalendarDate(tt.a, loanDate))
		})
	}
}

func TestSameCalendarMonth(t *testing.T) {
	a := time.Date(2017, 8, 5, 2, 18, 0, 0, time.UTC)
	assert.True(t, SameCalendarMonth(a, time.Date(2017, 8, 28, 10, 0, 0, 0, time.UTC)))
	assert.False(t, SameCalendarMonth(a, time.Date(2017, 9, 5, 2, 18, 0, 0, time.UTC)))
	assert.False(t, SameCalendarMonth(a, time.Date(2018, 8, 5, 2, 18, 0, 0, time.UTC)))
}

func TestMonthsElapsed(t *testing.T) {
	start := time.Date(2017, 8, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{"same month", time.Date(2017, 8, 20, 0, 0, 0, 0, time.UTC), 1},
		{"next month", time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC), 2},
		{"one year later", time.Date(2018, 8, 5, 0, 0, 0, 0, time.UTC), 13},
		{"before start", time.Date(2017, 7, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsElapsed(start, tt.now))
		})
	}
}
