package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCoins(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{50000, "50,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCoins(tt.amount))
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(0))
	assert.Equal(t, "█████░░░░░", ProgressBar(50))
	assert.Equal(t, "██████████", ProgressBar(100))

	// Out-of-range inputs clamp
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(-10))
	assert.Equal(t, "██████████", ProgressBar(150))

	// Partial segments round down
	assert.Equal(t, "███░░░░░░░", ProgressBar(39))
}

func TestFormatDiscordTimestamp(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	assert.Equal(t, "<t:1700000000:D>", FormatDiscordTimestamp(ts, "D"))
	assert.Equal(t, "<t:1700000000:R>", FormatDiscordTimestamp(ts, "R"))
}
