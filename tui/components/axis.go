package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"chronoscope/theme"
	"chronoscope/timeutil"
)

// AxisLayout picks a tick label format suited to the span of the range.
func AxisLayout(span time.Duration) string {
	switch {
	case span <= 2*time.Minute:
		return "15:04:05"
	case span <= 36*time.Hour:
		return "15:04"
	case span <= 60*24*time.Hour:
		return "Jan 2"
	default:
		return "Jan 2006"
	}
}

// RenderAxis renders a horizontal time axis across width columns with
// evenly spaced ticks between from and to.
func RenderAxis(from, to time.Time, width int, th theme.Theme) string {
	if width < 10 || !to.After(from) {
		return th.Render(theme.Axis, strings.Repeat("─", max(0, width)))
	}

	layout := AxisLayout(to.Sub(from))
	labelWidth := len(layout) + 2
	count := width / (labelWidth + 2)
	if count < 2 {
		count = 2
	}
	ticks := timeutil.GenerateTicks(from, to, count)

	rule := []rune(strings.Repeat("─", width))
	labels := []rune(strings.Repeat(" ", width))
	for i, tick := range ticks {
		x := i * (width - 1) / (count - 1)
		rule[x] = '┴'

		text := []rune(tick.Format(layout))
		pos := x - len(text)/2
		if pos < 0 {
			pos = 0
		}
		if pos+len(text) > width {
			pos = width - len(text)
		}
		for j, r := range text {
			if pos+j >= 0 && pos+j < width {
				labels[pos+j] = r
			}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		th.Render(theme.Axis, string(rule)),
		th.Render(theme.Axis, string(labels)),
	)
}
