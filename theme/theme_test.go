package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		th, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, th.Name)
	}
	_, ok := Lookup("neon")
	assert.False(t, ok)
	assert.Contains(t, Names(), "unstyled")
	assert.Equal(t, "dark", Default().Name)
}

func TestMissingSlotIsUnstyled(t *testing.T) {
	th := New("empty", nil)
	assert.Equal(t, "x", th.Render(QuickItem, "x"))
}

func TestMergeLayersByDefault(t *testing.T) {
	base := New("base", map[Slot]lipgloss.Style{
		QuickItem: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Italic(true),
	})

	merged := Merge(base, map[Slot]Override{
		QuickItem: {Style: lipgloss.NewStyle().Bold(true).Italic(false)},
		Footer:    {Style: lipgloss.NewStyle().Underline(true)},
	})

	s := merged.Style(QuickItem)
	assert.True(t, s.GetBold())
	assert.False(t, s.GetItalic())
	assert.Equal(t, lipgloss.Color("#ff0000"), s.GetForeground())
	assert.True(t, merged.Style(Footer).GetUnderline())

	// The base is not mutated.
	assert.False(t, base.Style(QuickItem).GetBold())
	assert.False(t, base.Style(Footer).GetUnderline())
}

func TestMergeReplace(t *testing.T) {
	base := New("base", map[Slot]lipgloss.Style{
		QuickItem: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
	})

	merged := Merge(base, map[Slot]Override{
		QuickItem: {Style: lipgloss.NewStyle().Bold(true), Replace: true},
	})

	s := merged.Style(QuickItem)
	assert.True(t, s.GetBold())
	assert.Equal(t, lipgloss.NoColor{}, s.GetForeground())
}

func TestMergeLayersInOrder(t *testing.T) {
	base := Unstyled()
	merged := Merge(base,
		map[Slot]Override{Muted: {Style: lipgloss.NewStyle().Foreground(lipgloss.Color("1"))}},
		map[Slot]Override{Muted: {Style: lipgloss.NewStyle().Foreground(lipgloss.Color("2"))}},
	)
	assert.Equal(t, lipgloss.Color("2"), merged.Style(Muted).GetForeground())
	assert.Equal(t, "unstyled", merged.Name)
}
