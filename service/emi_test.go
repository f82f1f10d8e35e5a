package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmortizedPayment(t *testing.T) {
	tests := []struct {
		name           string
		principal      int64
		annualRate     string
		durationMonths int
		expected       string
	}{
		{
			name:           "twelve percent over a year",
			principal:      10000,
			annualRate:     "12",
			durationMonths: 12,
			expected:       "888.49",
		},
		{
			name:           "twelve percent over six months",
			principal:      10000,
			annualRate:     "12",
			durationMonths: 6,
			expected:       "1725.48",
		},
		{
			name:           "zero rate is straight-line",
			principal:      1200,
			annualRate:     "0",
			durationMonths: 12,
			expected:       "100",
		},
		{
			name:           "zero rate with remainder",
			principal:      1000,
			annualRate:     "0",
			durationMonths: 3,
			expected:       "333.33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := decimal.NewFromString(tt.annualRate)
			assert.NoError(t, err)

			emi := AmortizedPayment(tt.principal, rate, tt.durationMonths)

			expected, err := decimal.NewFromString(tt.expected)
			assert.NoError(t, err)
			assert.True(t, emi.Equal(expected), "expected %s, got %s", expected, emi)
		})
	}
}

func TestAmortizedPayment_CoversInterest(t *testing.T) {
	// Total paid over the term must exceed the principal whenever the
	// rate is positive.
	rate := decimal.NewFromInt(8)
	for _, months := range []int{1, 6, 12, 24, 60} {
		emi := AmortizedPayment(50000, rate, months)
		total := emi.Mul(decimal.NewFromInt(int64(months)))
		assert.True(t, total.GreaterThan(decimal.NewFromInt(50000)),
			"total %s over %d months should exceed principal", total, months)
	}
}
