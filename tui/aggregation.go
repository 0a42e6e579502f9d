package tui

import (
	"chronoscope/scope"
	"chronoscope/tui/components"
)

// BuildQuickRows flattens grouped presets into list rows: one header per
// group followed by its presets. Preset indexes follow display order.
func BuildQuickRows(groups []scope.RangeGroup) []components.QuickRow {
	var rows []components.QuickRow
	index := 0
	for _, g := range groups {
		if g.Name != "" {
			rows = append(rows, components.QuickRow{Header: g.Name, Index: -1})
		}
		for _, r := range g.Ranges {
			rows = append(rows, components.QuickRow{Range: r, Index: index})
			index++
		}
	}
	return rows
}

// SelectableRanges returns presets in the same order as BuildQuickRows
// indexes them.
func SelectableRanges(groups []scope.RangeGroup) []scope.QuickRange {
	var out []scope.QuickRange
	for _, g := range groups {
		out = append(out, g.Ranges...)
	}
	return out
}

// clampCursor keeps a list cursor within [0, n).
func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
