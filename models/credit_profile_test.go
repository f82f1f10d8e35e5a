package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditProfile_Remaining(t *testing.T) {
	p := &CreditProfile{TotalLimit: 5000, UsedLimit: 1200}
	assert.Equal(t, int64(3800), p.Remaining())
}

func TestCreditProfile_UsagePercent(t *testing.T) {
	tests := []struct {
		total    int64
		used     int64
		expected int
	}{
		{total: 1000, used: 0, expected: 0},
		{total: 1000, used: 500, expected: 50},
		{total: 1000, used: 1000, expected: 100},
		{total: 3000, used: 1000, expected: 33},
		{total: 0, used: 0, expected: 0},
	}

	for _, tt := range tests {
		p := &CreditProfile{TotalLimit: tt.total, UsedLimit: tt.used}
		assert.Equal(t, tt.expected, p.UsagePercent(), "used %d of %d", tt.used, tt.total)
	}
}

func TestCreditProfile_JSONKeys(t *testing.T) {
	// Stored documents use camelCase keys; changing them would orphan
	// existing data files.
	data, err := json.Marshal(&CreditProfile{TotalLimit: 5000, UsedLimit: 300})
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalLimit": 5000, "usedLimit": 300}`, string(data))
}

func TestRepaymentPlan(t *testing.T) {
	assert.True(t, RepaymentPlanWeekly.Valid())
	assert.True(t, RepaymentPlanMonthly.Valid())
	assert.False(t, RepaymentPlan("daily").Valid())
	assert.False(t, RepaymentPlan("").Valid())

	assert.Equal(t, 7*24*time.Hour, RepaymentPlanWeekly.FirstDueIn())
	assert.Equal(t, 30*24*time.Hour, RepaymentPlanMonthly.FirstDueIn())
}
