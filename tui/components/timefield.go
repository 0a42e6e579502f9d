package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chronoscope/theme"
	"chronoscope/timeinput"
)

// Time editor fields, in display order.
const (
	FieldHours = iota
	FieldMinutes
	FieldSeconds
	FieldPeriod
)

// TimeFields lists the editable fields for the given display options.
func TimeFields(showSeconds, twelveHour bool) []int {
	fields := []int{FieldHours, FieldMinutes}
	if showSeconds {
		fields = append(fields, FieldSeconds)
	}
	if twelveHour {
		fields = append(fields, FieldPeriod)
	}
	return fields
}

// RenderTimeInput renders "HH : MM [: SS] [AM]". focus is the focused
// field, or -1.
func RenderTimeInput(label string, ti *timeinput.TimeInput, showSeconds bool, focus int, th theme.Theme) string {
	field := func(id int, text string) string {
		if id == focus {
			return th.Render(theme.TimeFieldFocused, text)
		}
		return th.Render(theme.TimeField, text)
	}
	sep := th.Render(theme.TimeSeparator, ":")

	parts := []string{field(FieldHours, ti.Hours()), sep, field(FieldMinutes, ti.Minutes())}
	if showSeconds {
		parts = append(parts, sep, field(FieldSeconds, ti.Seconds()))
	}
	if ti.TwelveHour() {
		parts = append(parts, " ", field(FieldPeriod, string(ti.Period())))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		th.Render(theme.CalendarLabel, strings.ToUpper(label))+" ",
		strings.Join(parts, ""),
	)
}
