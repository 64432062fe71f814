package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a due date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date format")

// DateTimeLayout is the naive ISO-8601 form used for stored and rendered times.
const DateTimeLayout = "2006-01-02T15:04:05"

var offsetSuffix = regexp.MustCompile(`(Z|z|[+-]\d{2}(:?\d{2})?)$`)

var dueDateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDueDate parses an ISO-8601 date or date-time. A trailing UTC offset is
// dropped, not applied: "2024-01-01T10:00:00+02:00" yields 10:00 wall clock.
// The result carries the UTC location.
func ParseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	// Only strip when a time part exists, so "2024-01-01" keeps its day.
	if i := strings.IndexAny(value, "T "); i >= 0 {
		value = value[:i+1] + offsetSuffix.ReplaceAllString(value[i+1:], "")
	}

	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

const dateTimeMicroLayout = DateTimeLayout + ".000000"

// FormatDateTime renders t as a naive UTC timestamp. Microseconds are
// appended only when non-zero; finer precision is dropped.
func FormatDateTime(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format(DateTimeLayout)
	}
	return t.Format(dateTimeMicroLayout)
}
