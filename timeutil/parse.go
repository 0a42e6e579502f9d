package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var timeOfDayPattern = regexp.MustCompile(`^(?P<hour>\d{1,2}):(?P<minute>\d{2})(?::(?P<second>\d{2}))?$`)

// LocalNow returns the current local time with seconds precision.
func LocalNow() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.Local)
}

// ParseDate parses a date string in YYYY-MM-DD format as local midnight.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// ParseTimeOfDay parses HH:MM or HH:MM:SS.
func ParseTimeOfDay(value string) (hour, minute, second int, err error) {
	matches := timeOfDayPattern.FindStringSubmatch(value)
	if matches == nil {
		return 0, 0, 0, fmt.Errorf("invalid time format: %s", value)
	}

	hour, _ = strconv.Atoi(matches[1])
	minute, _ = strconv.Atoi(matches[2])
	if matches[3] != "" {
		second, _ = strconv.Atoi(matches[3])
	}

	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, fmt.Errorf("invalid time value: %s", value)
	}
	return hour, minute, second, nil
}

// ParseWhen parses an absolute instant typed by a user. Accepted forms:
//   - "2006-01-02 15:04:05" (the picker's own display format)
//   - "2006-01-02T15:04:05" or "2006-01-02 15:04"
//   - "2006-01-02" (local midnight)
//   - "HH:MM[:SS]" on the day of fallback
//
// An empty value returns fallback.
func ParseWhen(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}

	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}

	hour, minute, second, err := ParseTimeOfDay(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse time: %s", value)
	}

	day := fallback.Local()
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, time.Local), nil
}

// FormatDuration formats a duration as "XhYYm".
func FormatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	sign := ""
	if totalSeconds < 0 {
		sign = "-"
		totalSeconds = -totalSeconds
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%s%dh%02dm", sign, hours, minutes)
}
