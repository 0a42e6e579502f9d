// Package theme holds the lipgloss styles for every visual slot of the
// picker, a few built-in palettes, and layered overrides.
package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Slot names one styled element of the picker.
type Slot string

const (
	Toolbar   Slot = "toolbar"
	NavButton Slot = "navButton"

	Trigger      Slot = "trigger"
	TriggerOpen  Slot = "triggerOpen"
	TriggerLabel Slot = "triggerLabel"

	LiveButton       Slot = "liveButton"
	LiveButtonActive Slot = "liveButtonActive"
	LiveDot          Slot = "liveDot"
	LiveDotActive    Slot = "liveDotActive"

	Dropdown  Slot = "dropdown"
	Tab       Slot = "tab"
	TabActive Slot = "tabActive"

	QuickSearch     Slot = "quickSearch"
	QuickGroup      Slot = "quickGroup"
	QuickItem       Slot = "quickItem"
	QuickItemActive Slot = "quickItemActive"
	QuickItemCursor Slot = "quickItemCursor"
	QuickEmpty      Slot = "quickEmpty"

	CalendarLabel       Slot = "calendarLabel"
	CalendarTitle       Slot = "calendarTitle"
	CalendarWeekDay     Slot = "calendarWeekDay"
	CalendarDay         Slot = "calendarDay"
	CalendarDayEmpty    Slot = "calendarDayEmpty"
	CalendarDayToday    Slot = "calendarDayToday"
	CalendarDaySelected Slot = "calendarDaySelected"
	CalendarDayInRange  Slot = "calendarDayInRange"
	CalendarDayDisabled Slot = "calendarDayDisabled"
	CalendarDayCursor   Slot = "calendarDayCursor"

	TimeField        Slot = "timeField"
	TimeFieldFocused Slot = "timeFieldFocused"
	TimeSeparator    Slot = "timeSeparator"

	ApplyButton     Slot = "applyButton"
	RelativeAccent  Slot = "relativeAccent"
	RelativePreview Slot = "relativePreview"

	Axis   Slot = "axis"
	Footer Slot = "footer"
	Muted  Slot = "muted"
	Error  Slot = "error"
)

// Theme is a named set of slot styles. Missing slots render unstyled.
type Theme struct {
	Name   string
	styles map[Slot]lipgloss.Style
}

// New builds a theme from explicit styles.
func New(name string, styles map[Slot]lipgloss.Style) Theme {
	t := Theme{Name: name, styles: make(map[Slot]lipgloss.Style, len(styles))}
	for k, v := range styles {
		t.styles[k] = v
	}
	return t
}

// Style returns the style for slot.
func (t Theme) Style(slot Slot) lipgloss.Style {
	if s, ok := t.styles[slot]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Render is shorthand for t.Style(slot).Render(s).
func (t Theme) Render(slot Slot, s string) string {
	return t.Style(slot).Render(s)
}

// Override is a per-slot change applied by Merge. By default the override
// is layered on top of the base style: properties it sets win and the
// rest are kept. With Replace the base style is discarded.
type Override struct {
	Style   lipgloss.Style
	Replace bool
}

// Merge applies overrides left to right on a copy of base.
func Merge(base Theme, overrides ...map[Slot]Override) Theme {
	out := New(base.Name, base.styles)
	for _, layer := range overrides {
		for slot, o := range layer {
			if o.Replace {
				out.styles[slot] = o.Style
				continue
			}
			prev, ok := out.styles[slot]
			if !ok {
				out.styles[slot] = o.Style
				continue
			}
			out.styles[slot] = o.Style.Inherit(prev)
		}
	}
	return out
}

// Lookup returns a built-in theme by name.
func Lookup(name string) (Theme, bool) {
	p, ok := palettes[name]
	if !ok {
		if name == Unstyled().Name {
			return Unstyled(), true
		}
		return Theme{}, false
	}
	return fromPalette(name, p), true
}

// Names lists the built-in themes.
func Names() []string {
	names := []string{Unstyled().Name}
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the theme used when none is configured.
func Default() Theme {
	t, _ := Lookup("dark")
	return t
}

// Unstyled renders plain text with only the markers needed to read the
// grid: selection and the cursor are reversed.
func Unstyled() Theme {
	return New("unstyled", map[Slot]lipgloss.Style{
		CalendarDaySelected: lipgloss.NewStyle().Reverse(true),
		CalendarDayCursor:   lipgloss.NewStyle().Underline(true),
		QuickItemCursor:     lipgloss.NewStyle().Reverse(true),
		TabActive:           lipgloss.NewStyle().Underline(true),
		TimeFieldFocused:    lipgloss.NewStyle().Reverse(true),
	})
}
