package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration is returned by ParseDuration for unrecognized input.
var ErrInvalidDuration = errors.New("invalid duration")

// FormatDuration renders a countdown value as "mm:ss", or "h:mm:ss" from one
// hour up. Partial seconds round up so the display reaches 00:00 only at expiry.
func FormatDuration(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int64((value + time.Second - 1) / time.Second)
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// ParseDuration accepts Go durations ("90s", "1h30m") and clock notation
// ("5:00", "1:02:03"). Negative values are rejected.
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidDuration)
	}
	if !strings.Contains(value, ":") {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			if minutes, convErr := strconv.Atoi(value); convErr == nil {
				parsed, err = time.Duration(minutes)*time.Minute, nil
			}
		}
		if err != nil || parsed < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
		}
		return parsed, nil
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
	}
	var total time.Duration
	for index, part := range parts {
		number, err := strconv.Atoi(part)
		if err != nil || number < 0 || (index > 0 && number > 59) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
		}
		total = total*60 + time.Duration(number)
	}
	return total * time.Second, nil
}
