package components

import (
	"github.com/charmbracelet/lipgloss"

	"chronoscope/scope"
	"chronoscope/theme"
)

var tabs = []struct {
	Mode  scope.SelectionMode
	Label string
}{
	{scope.ModeQuick, "⚡ Quick"},
	{scope.ModeAbsolute, "▦ Absolute"},
	{scope.ModeRelative, "↺ Relative"},
}

// RenderTabs renders the panel selector with active highlighted.
func RenderTabs(active scope.SelectionMode, th theme.Theme) string {
	var views []string
	for _, t := range tabs {
		if t.Mode == active {
			views = append(views, th.Render(theme.TabActive, t.Label))
		} else {
			views = append(views, th.Render(theme.Tab, t.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// NextMode returns the panel after m, wrapping. Negative step goes back.
func NextMode(m scope.SelectionMode, step int) scope.SelectionMode {
	for i, t := range tabs {
		if t.Mode == m {
			n := ((i+step)%len(tabs) + len(tabs)) % len(tabs)
			return tabs[n].Mode
		}
	}
	return scope.ModeQuick
}
