package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the calendar date format used on the wire ("2024-01-31").
const DateLayout = "2006-01-02"

// dateTimeLayouts are the accepted timestamp formats, most specific first. Local timestamps
// without an offset are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseDateTime parses a timestamp and returns the layout that matched, so callers can
// format derived values the same way.
func ParseDateTime(value string) (time.Time, string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("invalid timestamp %q", value)
}

// ParseOptionalDate parses value when it is not empty.
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseOptionalDateTime parses value when it is not empty. A bare date is accepted as
// midnight of that day.
func ParseOptionalDateTime(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	if t, _, err := ParseDateTime(value); err == nil {
		return &t, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q", value)
	}
	return &t, nil
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
