// Package calendar lays out a month grid for picking a day, with today,
// selection, range highlight and min/max bounds marked per cell.
package calendar

import (
	"sync"
	"time"

	"chronoscope/timeutil"
)

// Day is one cell of the grid. Padding cells before the first of the month
// have Day == 0 and IsCurrentMonth == false.
type Day struct {
	Date           time.Time
	Day            int
	IsCurrentMonth bool
	IsToday        bool
	IsSelected     bool
	IsInRange      bool
	IsDisabled     bool
}

// Options configures a Calendar.
type Options struct {
	Selected   *time.Time
	OnSelect   func(time.Time)
	RangeStart *time.Time
	RangeEnd   *time.Time
	MinDate    *time.Time
	MaxDate    *time.Time
	// WeekStartsOn is the first column of the grid.
	WeekStartsOn time.Weekday
	Now          func() time.Time
}

// Calendar is a navigable month view. The viewed month is independent of
// the selected date once constructed.
type Calendar struct {
	mu sync.Mutex

	viewYear  int
	viewMonth time.Month

	selected   *time.Time
	onSelect   func(time.Time)
	rangeStart *time.Time
	rangeEnd   *time.Time
	minDate    *time.Time
	maxDate    *time.Time
	weekStart  time.Weekday
	now        func() time.Time
}

// New builds a Calendar viewing the month of Selected, or of now.
func New(opts Options) *Calendar {
	c := &Calendar{
		selected:   opts.Selected,
		onSelect:   opts.OnSelect,
		rangeStart: opts.RangeStart,
		rangeEnd:   opts.RangeEnd,
		minDate:    opts.MinDate,
		maxDate:    opts.MaxDate,
		weekStart:  opts.WeekStartsOn % 7,
		now:        opts.Now,
	}
	if c.now == nil {
		c.now = time.Now
	}
	anchor := c.now()
	if c.selected != nil {
		anchor = *c.selected
	}
	c.viewYear, c.viewMonth = anchor.Year(), anchor.Month()
	return c
}

func (c *Calendar) ViewYear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewYear
}

func (c *Calendar) ViewMonth() time.Month {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMonth
}

// MonthName returns the English name of the viewed month.
func (c *Calendar) MonthName() string {
	return timeutil.MonthNames[c.ViewMonth()-1]
}

// WeekStartsOn returns the first grid column.
func (c *Calendar) WeekStartsOn() time.Weekday { return c.weekStart }

// WeekDays returns two-letter column headers starting at WeekStartsOn.
func (c *Calendar) WeekDays() []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = timeutil.WeekDays[(int(c.weekStart)+i)%7]
	}
	return out
}

// Offset returns the number of padding cells before day 1.
func (c *Calendar) Offset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offsetLocked()
}

func (c *Calendar) offsetLocked() int {
	first := timeutil.FirstDayOfMonth(c.viewYear, c.viewMonth)
	return (int(first) - int(c.weekStart) + 7) % 7
}

// Days returns padding cells followed by one cell per day of the viewed
// month. It is recomputed on every call.
func (c *Calendar) Days() []Day {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	offset := c.offsetLocked()
	n := timeutil.DaysInMonth(c.viewYear, c.viewMonth)
	days := make([]Day, 0, offset+n)
	for i := 0; i < offset; i++ {
		days = append(days, Day{IsDisabled: true})
	}

	var lo, hi *time.Time
	if c.minDate != nil {
		t := timeutil.StartOfDay(*c.minDate)
		lo = &t
	}
	if c.maxDate != nil {
		t := timeutil.EndOfDay(*c.maxDate)
		hi = &t
	}

	for d := 1; d <= n; d++ {
		date := time.Date(c.viewYear, c.viewMonth, d, 0, 0, 0, 0, time.Local)
		day := Day{
			Date:           date,
			Day:            d,
			IsCurrentMonth: true,
			IsToday:        timeutil.IsSameDay(date, now),
			IsSelected:     c.selected != nil && timeutil.IsSameDay(date, *c.selected),
		}
		if c.rangeStart != nil && c.rangeEnd != nil {
			day.IsInRange = timeutil.IsDateInRange(date, *c.rangeStart, *c.rangeEnd)
		}
		if lo != nil && date.Before(*lo) {
			day.IsDisabled = true
		}
		if hi != nil && date.After(*hi) {
			day.IsDisabled = true
		}
		days = append(days, day)
	}
	return days
}

// PrevMonth moves the view back one month, wrapping the year.
func (c *Calendar) PrevMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewMonth == time.January {
		c.viewMonth = time.December
		c.viewYear--
		return
	}
	c.viewMonth--
}

// NextMonth moves the view forward one month, wrapping the year.
func (c *Calendar) NextMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewMonth == time.December {
		c.viewMonth = time.January
		c.viewYear++
		return
	}
	c.viewMonth++
}

// GoToMonth jumps the view. Months outside 1-12 roll over into the
// neighbouring years, so GoToMonth(2024, 13) views January 2025.
func (c *Calendar) GoToMonth(year int, month time.Month) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	c.mu.Lock()
	c.viewYear, c.viewMonth = first.Year(), first.Month()
	c.mu.Unlock()
}

// SelectDay emits the selected date moved to day of the viewed month,
// keeping its time of day. Day <= 0 and a missing OnSelect are no-ops.
func (c *Calendar) SelectDay(day int) {
	c.mu.Lock()
	if day <= 0 || c.onSelect == nil {
		c.mu.Unlock()
		return
	}
	base := c.now()
	if c.selected != nil {
		base = *c.selected
	}
	next := time.Date(c.viewYear, c.viewMonth, day,
		base.Hour(), base.Minute(), base.Second(), base.Nanosecond(), base.Location())
	onSelect := c.onSelect
	c.mu.Unlock()

	onSelect(next)
}

// SetSelected rebinds the selected date without moving the view.
func (c *Calendar) SetSelected(t *time.Time) {
	c.mu.Lock()
	c.selected = t
	c.mu.Unlock()
}

// SetHighlight rebinds the highlighted range.
func (c *Calendar) SetHighlight(start, end *time.Time) {
	c.mu.Lock()
	c.rangeStart, c.rangeEnd = start, end
	c.mu.Unlock()
}

// SetBounds rebinds the min/max dates.
func (c *Calendar) SetBounds(lo, hi *time.Time) {
	c.mu.Lock()
	c.minDate, c.maxDate = lo, hi
	c.mu.Unlock()
}
