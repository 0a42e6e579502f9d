package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronoscope/timeutil"
)

var now = time.Date(2024, time.June, 15, 9, 30, 0, 0, time.Local)

func fixed() time.Time { return now }

func at(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 14, 45, 10, 0, time.Local)
	return &t
}

func currentMonth(days []Day) []Day {
	var out []Day
	for _, d := range days {
		if d.IsCurrentMonth {
			out = append(out, d)
		}
	}
	return out
}

func TestCalendarInitialView(t *testing.T) {
	c := New(Options{Now: fixed})
	assert.Equal(t, 2024, c.ViewYear())
	assert.Equal(t, time.June, c.ViewMonth())
	assert.Equal(t, "June", c.MonthName())

	c = New(Options{Now: fixed, Selected: at(2023, time.February, 3)})
	assert.Equal(t, 2023, c.ViewYear())
	assert.Equal(t, time.February, c.ViewMonth())
}

func TestCalendarCompleteness(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			for ws := time.Sunday; ws <= time.Saturday; ws++ {
				c := New(Options{Now: fixed, WeekStartsOn: ws})
				c.GoToMonth(year, month)
				days := c.Days()

				offset := (int(timeutil.FirstDayOfMonth(year, month)) - int(ws) + 7) % 7
				require.Equal(t, offset, c.Offset())
				require.Len(t, days, offset+timeutil.DaysInMonth(year, month))
				for i := 0; i < offset; i++ {
					assert.False(t, days[i].IsCurrentMonth)
					assert.Zero(t, days[i].Day)
				}
				assert.Len(t, currentMonth(days), timeutil.DaysInMonth(year, month))
				assert.Equal(t, 1, days[offset].Day)
			}
		}
	}
}

func TestCalendarPaddingMondayStart(t *testing.T) {
	// September 2024 starts on a Sunday.
	c := New(Options{Now: fixed, WeekStartsOn: time.Monday})
	c.GoToMonth(2024, time.September)
	assert.Equal(t, 6, c.Offset())
	assert.Equal(t, []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}, c.WeekDays())

	c = New(Options{Now: fixed})
	c.GoToMonth(2024, time.September)
	assert.Zero(t, c.Offset())
	assert.Equal(t, "Su", c.WeekDays()[0])
}

func TestCalendarFlags(t *testing.T) {
	c := New(Options{
		Now:        fixed,
		Selected:   at(2024, time.June, 10),
		RangeStart: at(2024, time.June, 3),
		RangeEnd:   at(2024, time.June, 7),
		MinDate:    at(2024, time.June, 2),
		MaxDate:    at(2024, time.June, 28),
	})

	days := currentMonth(c.Days())
	byDay := func(d int) Day { return days[d-1] }

	assert.True(t, byDay(15).IsToday)
	assert.False(t, byDay(14).IsToday)
	assert.True(t, byDay(10).IsSelected)
	assert.False(t, byDay(11).IsSelected)

	// Range ends are inclusive at day granularity.
	assert.False(t, byDay(2).IsInRange)
	assert.True(t, byDay(3).IsInRange)
	assert.True(t, byDay(7).IsInRange)
	assert.False(t, byDay(8).IsInRange)

	// Bounds are widened to whole days.
	assert.True(t, byDay(1).IsDisabled)
	assert.False(t, byDay(2).IsDisabled)
	assert.False(t, byDay(28).IsDisabled)
	assert.True(t, byDay(29).IsDisabled)
}

func TestCalendarRangeNeedsBothEnds(t *testing.T) {
	c := New(Options{Now: fixed, RangeStart: at(2024, time.June, 3)})
	for _, d := range c.Days() {
		assert.False(t, d.IsInRange)
	}
}

func TestCalendarMonthWrap(t *testing.T) {
	c := New(Options{Now: fixed})
	c.GoToMonth(2024, time.January)
	c.PrevMonth()
	assert.Equal(t, 2023, c.ViewYear())
	assert.Equal(t, time.December, c.ViewMonth())

	c.NextMonth()
	assert.Equal(t, 2024, c.ViewYear())
	assert.Equal(t, time.January, c.ViewMonth())

	c.GoToMonth(2024, time.December)
	c.NextMonth()
	assert.Equal(t, 2025, c.ViewYear())
	assert.Equal(t, time.January, c.ViewMonth())
}

func TestCalendarGoToMonthRollsOver(t *testing.T) {
	c := New(Options{Now: fixed})

	c.GoToMonth(2024, 13)
	assert.Equal(t, 2025, c.ViewYear())
	assert.Equal(t, time.January, c.ViewMonth())
	assert.Equal(t, "January", c.MonthName())

	c.GoToMonth(2024, 0)
	assert.Equal(t, 2023, c.ViewYear())
	assert.Equal(t, "December", c.MonthName())

	c.GoToMonth(2024, -13)
	assert.Equal(t, 2022, c.ViewYear())
	assert.Equal(t, time.November, c.ViewMonth())
	assert.Len(t, c.Days(), c.Offset()+30)
}

func TestCalendarSelectDayKeepsTimeOfDay(t *testing.T) {
	var got []time.Time
	c := New(Options{
		Now:      fixed,
		Selected: at(2024, time.June, 10),
		OnSelect: func(t time.Time) { got = append(got, t) },
	})
	c.NextMonth()
	c.SelectDay(4)

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2024, time.July, 4, 14, 45, 10, 0, time.Local), got[0])
}

func TestCalendarSelectDayWithoutSelection(t *testing.T) {
	var got time.Time
	c := New(Options{Now: fixed, OnSelect: func(t time.Time) { got = t }})
	c.SelectDay(1)
	assert.Equal(t, time.Date(2024, time.June, 1, 9, 30, 0, 0, time.Local), got)
}

func TestCalendarSelectDayNoops(t *testing.T) {
	var calls int
	c := New(Options{Now: fixed, OnSelect: func(time.Time) { calls++ }})
	c.SelectDay(0)
	c.SelectDay(-1)
	assert.Zero(t, calls)

	assert.NotPanics(t, func() { New(Options{Now: fixed}).SelectDay(3) })
}

func TestCalendarRebinding(t *testing.T) {
	c := New(Options{Now: fixed})
	c.SetSelected(at(2024, time.June, 20))
	c.SetHighlight(at(2024, time.June, 19), at(2024, time.June, 21))
	c.SetBounds(nil, at(2024, time.June, 25))

	days := currentMonth(c.Days())
	assert.True(t, days[19].IsSelected)
	assert.True(t, days[18].IsInRange)
	assert.True(t, days[20].IsInRange)
	assert.True(t, days[25].IsDisabled)
	assert.False(t, days[0].IsDisabled)
}
