package timeutil

import (
	"fmt"
	"strings"
)

// TimeUnit is the unit of a relative time expression such as "15m".
type TimeUnit string

const (
	Second TimeUnit = "s"
	Minute TimeUnit = "m"
	Hour   TimeUnit = "h"
	Day    TimeUnit = "d"
	Week   TimeUnit = "w"
	Month  TimeUnit = "M"
	Year   TimeUnit = "y"
)

// TimeUnitOption describes a unit for selection lists.
type TimeUnitOption struct {
	Label      string   `json:"label" yaml:"label"`
	Value      TimeUnit `json:"value" yaml:"value"`
	ShortLabel string   `json:"short_label" yaml:"short_label"`
}

// DefaultTimeUnits returns the built-in unit catalog, seconds to years.
func DefaultTimeUnits() []TimeUnitOption {
	return []TimeUnitOption{
		{Label: "Seconds", Value: Second, ShortLabel: "sec"},
		{Label: "Minutes", Value: Minute, ShortLabel: "min"},
		{Label: "Hours", Value: Hour, ShortLabel: "hr"},
		{Label: "Days", Value: Day, ShortLabel: "day"},
		{Label: "Weeks", Value: Week, ShortLabel: "wk"},
		{Label: "Months", Value: Month, ShortLabel: "mo"},
		{Label: "Years", Value: Year, ShortLabel: "yr"},
	}
}

// ParseTimeUnit accepts a unit token ("m", "M") or a unit name ("minutes", "months").
// Single-letter tokens are case-sensitive because "m" and "M" differ.
func ParseTimeUnit(value string) (TimeUnit, error) {
	value = strings.TrimSpace(value)
	switch TimeUnit(value) {
	case Second, Minute, Hour, Day, Week, Month, Year:
		return TimeUnit(value), nil
	}

	name := strings.ToLower(value)
	for _, opt := range DefaultTimeUnits() {
		plural := strings.ToLower(opt.Label)
		if name == plural || name == opt.ShortLabel || name == strings.TrimSuffix(plural, "s") {
			return opt.Value, nil
		}
	}
	return "", fmt.Errorf("unknown time unit: %q", value)
}

// ParseRelativeExpression parses a compact expression like "15m" or "2y".
func ParseRelativeExpression(expr string) (int, TimeUnit, error) {
	expr = strings.TrimSpace(expr)
	i := 0
	for i < len(expr) && expr[i] >= '0' && expr[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", fmt.Errorf("relative expression must start with a number: %q", expr)
	}

	value, ok := ParseLeadingInt(expr[:i])
	if !ok || value <= 0 {
		return 0, "", fmt.Errorf("relative expression must be positive: %q", expr)
	}

	unit, err := ParseTimeUnit(expr[i:])
	if err != nil {
		return 0, "", err
	}
	return value, unit, nil
}

// FormatRelativeExpression is the inverse of ParseRelativeExpression.
func FormatRelativeExpression(value int, unit TimeUnit) string {
	return fmt.Sprintf("%d%s", value, unit)
}

// BuildRelativeLabel renders "Last {value} {unit name}" using the default unit catalog.
func BuildRelativeLabel(value int, unit TimeUnit) string {
	return BuildRelativeLabelWith(DefaultTimeUnits(), value, unit)
}

// BuildRelativeLabelWith is BuildRelativeLabel over a caller-provided unit catalog.
// Units missing from the catalog fall back to the raw token.
func BuildRelativeLabelWith(units []TimeUnitOption, value int, unit TimeUnit) string {
	name := string(unit)
	for _, u := range units {
		if u.Value == unit {
			name = strings.ToLower(u.Label)
			break
		}
	}
	return fmt.Sprintf("Last %d %s", value, name)
}

// ParseLeadingInt reads an optionally signed integer prefix, ignoring
// surrounding whitespace and any trailing characters ("12abc" is 12).
// It reports false when no digits are present.
func ParseLeadingInt(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	sign := 1
	switch value[0] {
	case '-':
		sign = -1
		value = value[1:]
	case '+':
		value = value[1:]
	}

	n := 0
	digits := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if n > 1<<31 {
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}
	return sign * n, true
}
