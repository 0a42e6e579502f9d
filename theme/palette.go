package theme

import "github.com/charmbracelet/lipgloss"

type palette struct {
	Bg      lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Muted   lipgloss.Color
	Live    lipgloss.Color
	Error   lipgloss.Color
}

var palettes = map[string]palette{
	"dark": {
		Bg: "#0f172a", Surface: "#1e293b", Border: "#334155", Accent: "#2dd4bf",
		Text: "#e2e8f0", Dim: "#94a3b8", Muted: "#64748b", Live: "#4ade80", Error: "#f87171",
	},
	"light": {
		Bg: "#f8fafc", Surface: "#ffffff", Border: "#cbd5e1", Accent: "#0d9488",
		Text: "#1e293b", Dim: "#64748b", Muted: "#94a3b8", Live: "#16a34a", Error: "#dc2626",
	},
	"bootstrap-dark": {
		Bg: "#212529", Surface: "#2b3035", Border: "#495057", Accent: "#0dcaf0",
		Text: "#f8f9fa", Dim: "#adb5bd", Muted: "#6c757d", Live: "#20c997", Error: "#ea868f",
	},
	"bootstrap-light": {
		Bg: "#ffffff", Surface: "#ffffff", Border: "#dee2e6", Accent: "#0d6efd",
		Text: "#212529", Dim: "#6c757d", Muted: "#adb5bd", Live: "#198754", Error: "#dc3545",
	},
}

func fromPalette(name string, p palette) Theme {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	return New(name, map[Slot]lipgloss.Style{
		Toolbar:   lipgloss.NewStyle(),
		NavButton: box.Foreground(p.Dim),

		Trigger:      box.Foreground(p.Text),
		TriggerOpen:  box.BorderForeground(p.Accent).Foreground(p.Text),
		TriggerLabel: fg(p.Text).Bold(true),

		LiveButton:       box.Foreground(p.Dim).Bold(true),
		LiveButtonActive: box.BorderForeground(p.Live).Foreground(p.Live).Bold(true),
		LiveDot:          fg(p.Muted),
		LiveDotActive:    fg(p.Live),

		Dropdown:  box.BorderForeground(p.Border).Padding(0, 1),
		Tab:       fg(p.Dim).Padding(0, 2),
		TabActive: fg(p.Accent).Bold(true).Underline(true).Padding(0, 2),

		QuickSearch:     box.Foreground(p.Text),
		QuickGroup:      fg(p.Muted).Bold(true),
		QuickItem:       fg(p.Text),
		QuickItemActive: fg(p.Accent).Bold(true),
		QuickItemCursor: lipgloss.NewStyle().Background(p.Surface).Foreground(p.Accent),
		QuickEmpty:      fg(p.Muted).Italic(true),

		CalendarLabel:       fg(p.Muted).Bold(true),
		CalendarTitle:       fg(p.Text).Bold(true),
		CalendarWeekDay:     fg(p.Muted),
		CalendarDay:         fg(p.Text),
		CalendarDayEmpty:    lipgloss.NewStyle(),
		CalendarDayToday:    fg(p.Accent).Bold(true),
		CalendarDaySelected: lipgloss.NewStyle().Background(p.Accent).Foreground(p.Bg).Bold(true),
		CalendarDayInRange:  lipgloss.NewStyle().Background(p.Surface).Foreground(p.Text),
		CalendarDayDisabled: fg(p.Muted).Faint(true),
		CalendarDayCursor:   lipgloss.NewStyle().Underline(true),

		TimeField:        fg(p.Text),
		TimeFieldFocused: lipgloss.NewStyle().Background(p.Accent).Foreground(p.Bg),
		TimeSeparator:    fg(p.Muted),

		ApplyButton:     lipgloss.NewStyle().Background(p.Accent).Foreground(p.Bg).Bold(true).Padding(0, 1),
		RelativeAccent:  fg(p.Accent).Bold(true),
		RelativePreview: fg(p.Dim),

		Axis:   fg(p.Muted),
		Footer: fg(p.Muted),
		Muted:  fg(p.Muted),
		Error:  fg(p.Error).Bold(true),
	})
}
