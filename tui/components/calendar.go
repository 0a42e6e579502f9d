package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chronoscope/calendar"
	"chronoscope/theme"
)

// calendarCellWidth is the width of one day column.
const calendarCellWidth = 3

// CalendarWidth is the rendered width of RenderCalendar's grid.
const CalendarWidth = 7 * calendarCellWidth

// RenderCalendar renders one month grid. cursor is the highlighted day of
// the viewed month when focused, or 0 for none.
func RenderCalendar(label string, cal *calendar.Calendar, cursor int, focused bool, th theme.Theme) string {
	var lines []string

	labelStyle := th.Style(theme.CalendarLabel)
	if focused {
		labelStyle = labelStyle.Underline(true)
	}
	lines = append(lines, labelStyle.Render(strings.ToUpper(label)))

	title := fmt.Sprintf("%s %d", cal.MonthName(), cal.ViewYear())
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		th.Render(theme.NavButton, "‹"),
		lipgloss.PlaceHorizontal(CalendarWidth-2, lipgloss.Center, th.Render(theme.CalendarTitle, title)),
		th.Render(theme.NavButton, "›"),
	)
	lines = append(lines, header)

	var week []string
	for _, wd := range cal.WeekDays() {
		week = append(week, th.Style(theme.CalendarWeekDay).Width(calendarCellWidth).Align(lipgloss.Right).Render(wd))
	}
	lines = append(lines, strings.Join(week, ""))

	var row []string
	for _, d := range cal.Days() {
		row = append(row, renderDay(d, cursor, focused, th))
		if len(row) == 7 {
			lines = append(lines, strings.Join(row, ""))
			row = nil
		}
	}
	if len(row) > 0 {
		lines = append(lines, strings.Join(row, ""))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderDay(d calendar.Day, cursor int, focused bool, th theme.Theme) string {
	cell := lipgloss.NewStyle().Width(calendarCellWidth).Align(lipgloss.Right)
	if !d.IsCurrentMonth {
		return th.Style(theme.CalendarDayEmpty).Inherit(cell).Render("")
	}

	style := th.Style(theme.CalendarDay)
	switch {
	case d.IsDisabled:
		style = th.Style(theme.CalendarDayDisabled)
	case d.IsSelected:
		style = th.Style(theme.CalendarDaySelected)
	case d.IsInRange:
		style = th.Style(theme.CalendarDayInRange)
	case d.IsToday:
		style = th.Style(theme.CalendarDayToday)
	}
	if focused && d.Day == cursor {
		style = th.Style(theme.CalendarDayCursor).Inherit(style)
	}
	return style.Inherit(cell).Render(fmt.Sprintf("%d", d.Day))
}
