package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chronoscope/scope"
	"chronoscope/theme"
	"chronoscope/timeutil"
	"chronoscope/tui/components"
)

const quickListHeight = 12

// View renders the toolbar, the time axis, the dropdown when open, and the
// status and help lines.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width < 60 {
		width = 60
	}

	state := m.picker.Range
	r := state.Range()

	toolbar := components.RenderToolbar(state.DisplayLabel(), state.IsOpen(), m.live, width, m.theme)
	axis := components.RenderAxis(r.From, r.To, width, m.theme)

	sections := []string{toolbar.View, axis}
	top := lipgloss.Height(toolbar.View) + lipgloss.Height(axis)

	dropdown := ""
	if state.IsOpen() {
		dropdown = m.renderDropdown(width)
		sections = append(sections, dropdown)
	}
	m.hits.set(toolbar, lipgloss.Height(toolbar.View), 0, top,
		lipgloss.Width(dropdown), heightOf(dropdown))

	since := m.now().Sub(m.lastRefresh)
	sections = append(sections,
		components.RenderLiveStatus(m.live, since, m.picker.Live.Interval(), timeutil.RangeDuration(r), width, m.theme),
		m.renderLastChange(),
		renderFooter(state.IsOpen(), m.picker.Mode(), width, m.theme),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func heightOf(s string) int {
	if s == "" {
		return 0
	}
	return lipgloss.Height(s)
}

func (m Model) renderDropdown(width int) string {
	inner := width - 4
	if inner > 72 {
		inner = 72
	}

	var panel string
	switch m.picker.Mode() {
	case scope.ModeAbsolute:
		panel = m.renderAbsolute(inner)
	case scope.ModeRelative:
		panel = m.renderRelative(inner)
	default:
		panel = m.renderQuick(inner)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		components.RenderTabs(m.picker.Mode(), m.theme),
		"",
		panel,
	)
	return m.theme.Style(theme.Dropdown).Width(inner).Render(body)
}

func (m Model) renderQuick(width int) string {
	groups := m.picker.Quick.Groups()
	rows := BuildQuickRows(groups)
	cursor := clampCursor(m.quickCursor, len(SelectableRanges(groups)))
	active, _ := m.picker.Quick.ActiveLabel()

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Style(theme.QuickSearch).Render(m.filter.View()),
		components.RenderQuickList(rows, active, cursor, width, quickListHeight, m.theme),
	)
}

func (m Model) renderAbsolute(width int) string {
	calFocus := func(s side) bool { return m.side == s && m.absFocus == focusCalendar }
	fieldFocus := func(s side, twelveHour bool) int {
		if m.side != s || m.absFocus != focusTime {
			return -1
		}
		fields := components.TimeFields(m.showSeconds, twelveHour)
		return fields[clampCursor(m.timeField[s], len(fields))]
	}

	fromTime, toTime := m.picker.FromTime(), m.picker.ToTime()
	from := lipgloss.JoinVertical(lipgloss.Left,
		components.RenderCalendar("From", m.picker.FromCalendar(), m.dayCursor[fromSide], calFocus(fromSide), m.theme),
		"",
		components.RenderTimeInput("Time", fromTime, m.showSeconds, fieldFocus(fromSide, fromTime.TwelveHour()), m.theme),
	)
	to := lipgloss.JoinVertical(lipgloss.Left,
		components.RenderCalendar("To", m.picker.ToCalendar(), m.dayCursor[toSide], calFocus(toSide), m.theme),
		"",
		components.RenderTimeInput("Time", toTime, m.showSeconds, fieldFocus(toSide, toTime.TwelveHour()), m.theme),
	)

	state := m.picker.Range
	summary := fmt.Sprintf("%s  →  %s", state.FormattedFrom(), state.FormattedTo())
	apply := m.theme.Render(theme.ApplyButton, "Apply")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, from, "    ", to),
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Left, m.theme.Render(theme.Muted, summary)),
		apply,
	)
}

func (m Model) renderRelative(width int) string {
	rel := m.picker.Relative
	units := rel.TimeUnits()
	unit := units[clampCursor(m.unitIndex, len(units))].Label

	input := lipgloss.JoinHorizontal(lipgloss.Top,
		"Last ",
		m.theme.Style(theme.TimeFieldFocused).Render(m.relValue.View()),
		" ",
		m.theme.Render(theme.RelativeAccent, "‹ "+unit+" ›"),
	)

	preview := m.theme.Render(theme.RelativePreview,
		fmt.Sprintf("%s  →  now", timeutil.FormatDateTime(rel.Preview())))

	var hint string
	if n, ok := timeutil.ParseLeadingInt(rel.Value()); !ok || n <= 0 {
		hint = m.theme.Render(theme.Error, "Enter a positive number.")
	} else {
		hint = m.theme.Render(theme.Muted, "Applies "+timeutil.BuildRelativeLabelWith(units, n, rel.Unit()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		input,
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Left, preview),
		hint,
		m.theme.Render(theme.ApplyButton, "Apply"),
	)
}

func (m Model) renderLastChange() string {
	if m.last == nil {
		return m.theme.Render(theme.Muted, "no changes yet")
	}
	meta := m.last.Meta
	parts := []string{string(meta.Source)}
	if meta.QuickLabel != "" {
		parts = append(parts, meta.QuickLabel)
	}
	if meta.RelativeExpression != "" {
		parts = append(parts, meta.RelativeExpression)
	}
	return m.theme.Render(theme.Muted, fmt.Sprintf("last change: %s (%s)",
		strings.Join(parts, " · "), timeutil.FormatDuration(timeutil.RangeDuration(m.last.Range))))
}

func renderFooter(open bool, mode scope.SelectionMode, width int, th theme.Theme) string {
	help := "[enter] Open  [ [ / ] ] Shift  [-/+] Zoom  [l] Live  [q] Quit"
	if open {
		switch mode {
		case scope.ModeQuick:
			help = "[type] Filter  [↑/↓] Move  [enter] Select  [tab] Panel  [esc] Close"
		case scope.ModeRelative:
			help = "[0-9] Amount  [←/→] Unit  [enter] Apply  [tab] Panel  [esc] Close"
		case scope.ModeAbsolute:
			help = "[f/t] Side  [c/e] Calendar/Time  [←↑↓→] Move  [</>] Month  [enter] Pick  [ctrl+s] Apply  [esc] Close"
		}
	}
	return th.Style(theme.Footer).Width(width).Render(help)
}
