package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chronoscope/scope"
	"chronoscope/theme"
)

// QuickRow is one rendered line of the preset list: a group header or a
// selectable preset.
type QuickRow struct {
	Header string
	Range  scope.QuickRange
	// Index is the preset's position among selectable rows, -1 for headers.
	Index int
}

// RenderQuickList renders grouped presets with a dotted leader to the
// compact expression. The window scrolls to keep cursor visible.
func RenderQuickList(rows []QuickRow, active string, cursor, width, height int, th theme.Theme) string {
	if len(rows) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			th.Render(theme.QuickEmpty, "No matching ranges."))
	}

	cursorRow := 0
	for i, r := range rows {
		if r.Index == cursor {
			cursorRow = i
			break
		}
	}
	start := 0
	if cursorRow >= height {
		start = cursorRow - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}

	var lines []string
	for _, row := range rows[start:end] {
		if row.Index < 0 {
			lines = append(lines, th.Render(theme.QuickGroup, strings.ToUpper(row.Header)))
			continue
		}

		marker := "  "
		style := th.Style(theme.QuickItem)
		if row.Range.Label == active {
			marker = "• "
			style = th.Style(theme.QuickItemActive)
		}
		expr := row.Range.Expression()
		label := marker + row.Range.Label
		dots := strings.Repeat(".", max(1, width-lipgloss.Width(label)-len(expr)-2))
		line := style.Render(label) + " " + th.Render(theme.Muted, dots) + " " + th.Render(theme.Muted, expr)
		if row.Index == cursor {
			line = th.Style(theme.QuickItemCursor).Render(label + " " + dots + " " + expr)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
