package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"chronoscope/theme"
)

// RenderProgressBar renders label, a bar filled to fraction, and a suffix.
func RenderProgressBar(fraction float64, label, suffix string, width int, barStyle lipgloss.Style) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	barWidth := width - lipgloss.Width(label) - lipgloss.Width(suffix) - 3
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(float64(barWidth) * fraction)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	return lipgloss.JoinHorizontal(lipgloss.Left,
		label+" ",
		barStyle.Render(bar),
		" "+suffix,
	)
}

// RenderLiveStatus shows how far the live refresh is into its interval,
// or the range duration when live is off.
func RenderLiveStatus(live bool, sinceRefresh, interval, span time.Duration, width int, th theme.Theme) string {
	if !live || interval <= 0 {
		return th.Render(theme.Muted, fmt.Sprintf("span %s · live off", formatSpan(span)))
	}
	fraction := float64(sinceRefresh%interval) / float64(interval)
	remaining := (interval - sinceRefresh%interval).Round(time.Second)
	return RenderProgressBar(fraction, th.Render(theme.LiveDotActive, "● live"),
		fmt.Sprintf("next in %s · span %s", remaining, formatSpan(span)),
		width, th.Style(theme.LiveDotActive))
}

func formatSpan(d time.Duration) string {
	if d >= 48*time.Hour {
		return fmt.Sprintf("%dd%02dh", int(d.Hours())/24, int(d.Hours())%24)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h == 0 && m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
