// Package scope is the stateful core of the picker. A RangeState owns the
// canonical {from, to} pair; QuickRanges, RelativeRange, Navigator and
// LiveRefresh read it and request updates through it; ChronoScope wires
// them together. Rendering lives elsewhere.
package scope

import (
	"chronoscope/timeutil"
)

// ChangeSource tags why a range change happened.
type ChangeSource string

const (
	SourceQuick    ChangeSource = "quick"
	SourceAbsolute ChangeSource = "absolute"
	SourceRelative ChangeSource = "relative"
	SourceShift    ChangeSource = "shift"
	SourceZoom     ChangeSource = "zoom"
	SourceLive     ChangeSource = "live"
)

// ChangeMeta is attached to every change notification.
// Empty strings mean the field does not apply.
type ChangeMeta struct {
	Source             ChangeSource `json:"source" yaml:"source"`
	QuickLabel         string       `json:"quick_label,omitempty" yaml:"quick_label,omitempty"`
	RelativeExpression string       `json:"relative_expression,omitempty" yaml:"relative_expression,omitempty"`
}

// ChangeFunc receives committed range changes.
type ChangeFunc func(r timeutil.TimeRange, meta ChangeMeta)

// QuickRange is a named "N units back from now" preset. Label is its identity.
type QuickRange struct {
	Label string            `json:"label" yaml:"label" mapstructure:"label"`
	Value int               `json:"value" yaml:"value" mapstructure:"value"`
	Unit  timeutil.TimeUnit `json:"unit" yaml:"unit" mapstructure:"unit"`
	Group string            `json:"group,omitempty" yaml:"group,omitempty" mapstructure:"group"`
}

// Expression returns the compact form, e.g. "15m".
func (q QuickRange) Expression() string {
	return timeutil.FormatRelativeExpression(q.Value, q.Unit)
}

// SelectionMode is the active picker panel.
type SelectionMode string

const (
	ModeQuick    SelectionMode = "quick"
	ModeAbsolute SelectionMode = "absolute"
	ModeRelative SelectionMode = "relative"
)

// DefaultQuickRanges returns the built-in catalog, 5 minutes to 2 years.
func DefaultQuickRanges() []QuickRange {
	return []QuickRange{
		{Label: "Last 5 minutes", Value: 5, Unit: timeutil.Minute, Group: "Minutes"},
		{Label: "Last 15 minutes", Value: 15, Unit: timeutil.Minute, Group: "Minutes"},
		{Label: "Last 30 minutes", Value: 30, Unit: timeutil.Minute, Group: "Minutes"},
		{Label: "Last 1 hour", Value: 1, Unit: timeutil.Hour, Group: "Hours"},
		{Label: "Last 3 hours", Value: 3, Unit: timeutil.Hour, Group: "Hours"},
		{Label: "Last 6 hours", Value: 6, Unit: timeutil.Hour, Group: "Hours"},
		{Label: "Last 12 hours", Value: 12, Unit: timeutil.Hour, Group: "Hours"},
		{Label: "Last 24 hours", Value: 24, Unit: timeutil.Hour, Group: "Hours"},
		{Label: "Last 2 days", Value: 2, Unit: timeutil.Day, Group: "Days"},
		{Label: "Last 7 days", Value: 7, Unit: timeutil.Day, Group: "Days"},
		{Label: "Last 30 days", Value: 30, Unit: timeutil.Day, Group: "Days"},
		{Label: "Last 90 days", Value: 90, Unit: timeutil.Day, Group: "Days"},
		{Label: "Last 6 months", Value: 6, Unit: timeutil.Month, Group: "Months & years"},
		{Label: "Last 1 year", Value: 1, Unit: timeutil.Year, Group: "Months & years"},
		{Label: "Last 2 years", Value: 2, Unit: timeutil.Year, Group: "Months & years"},
	}
}
