package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatCoins formats a coin amount with thousand separators
func FormatCoins(amount int64) string {
	str := fmt.Sprintf("%d", amount)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// ProgressBar renders a ten-segment usage bar for a percentage in [0,100]
func ProgressBar(percentage int) string {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	full := percentage / 10
	return strings.Repeat("█", full) + strings.Repeat("░", 10-full)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
