package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chronoscope/theme"
)

// Toolbar is the rendered toolbar plus the horizontal extent of each
// button, for mapping mouse presses back to actions.
type Toolbar struct {
	View     string
	Segments []Segment
}

// Segment is one clickable toolbar element spanning columns [Start, End).
type Segment struct {
	Name       string
	Start, End int
}

// Hit returns the segment containing column x.
func (t Toolbar) Hit(x int) (string, bool) {
	for _, s := range t.Segments {
		if x >= s.Start && x < s.End {
			return s.Name, true
		}
	}
	return "", false
}

// RenderTrigger renders the button that opens the picker, showing the
// current display label.
func RenderTrigger(label string, open bool, width int, th theme.Theme) string {
	chevron := "▾"
	style := th.Style(theme.Trigger)
	if open {
		chevron = "▴"
		style = th.Style(theme.TriggerOpen)
	}

	// Border and padding take four columns.
	inner := width - 4
	if inner < 8 {
		inner = 8
	}
	icon := "◷ "
	room := inner - lipgloss.Width(icon) - lipgloss.Width(chevron) - 1
	if lipgloss.Width(label) > room {
		label = truncate(label, room)
	}
	text := icon + th.Render(theme.TriggerLabel, label)
	gap := inner - lipgloss.Width(text) - lipgloss.Width(chevron)
	if gap < 1 {
		gap = 1
	}
	return style.Width(width - 2).Render(text + strings.Repeat(" ", gap) + chevron)
}

// RenderLiveButton renders the live toggle.
func RenderLiveButton(live bool, th theme.Theme) string {
	if live {
		return th.Style(theme.LiveButtonActive).Render(th.Render(theme.LiveDotActive, "●") + " LIVE")
	}
	return th.Style(theme.LiveButton).Render(th.Render(theme.LiveDot, "○") + " LIVE")
}

// RenderNavButton renders a single navigation button.
func RenderNavButton(icon string, th theme.Theme) string {
	return th.Style(theme.NavButton).Render(icon)
}

// RenderToolbar lays out navigation, trigger and live toggle on one row.
// The trigger takes whatever width the buttons leave.
func RenderToolbar(label string, open, live bool, width int, th theme.Theme) Toolbar {
	type part struct {
		name string
		view string
	}
	left := []part{
		{"shift-back", RenderNavButton("«", th)},
		{"zoom-out", RenderNavButton("−", th)},
		{"zoom-in", RenderNavButton("+", th)},
		{"shift-forward", RenderNavButton("»", th)},
	}
	liveView := RenderLiveButton(live, th)

	used := lipgloss.Width(liveView) + 1
	for _, p := range left {
		used += lipgloss.Width(p.view)
	}
	triggerWidth := width - used - 1
	if triggerWidth < 24 {
		triggerWidth = 24
	}

	parts := append(left, part{"trigger", " " + RenderTrigger(label, open, triggerWidth, th)})
	parts = append(parts, part{"live", " " + liveView})

	var (
		views    []string
		segments []Segment
		x        int
	)
	for _, p := range parts {
		w := lipgloss.Width(p.view)
		segments = append(segments, Segment{Name: p.name, Start: x, End: x + w})
		views = append(views, p.view)
		x += w
	}
	return Toolbar{View: lipgloss.JoinHorizontal(lipgloss.Top, views...), Segments: segments}
}

func truncate(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
