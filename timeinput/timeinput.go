// Package timeinput edits the time of day of a single date as separate
// hour, minute and second fields, in 12- or 24-hour form.
package timeinput

import (
	"sync"
	"time"

	"chronoscope/timeutil"
)

// Period is the half of the day in 12-hour mode.
type Period string

const (
	AM Period = "AM"
	PM Period = "PM"
)

// Options configures a TimeInput.
type Options struct {
	// Value is the bound date; nil displays now and emits edits of now.
	Value    *time.Time
	OnChange func(time.Time)
	// HourFormat is 12 or 24. Anything else is 24.
	HourFormat int
	// SecondStep is the increment for seconds; values < 1 mean 1.
	SecondStep int
	Now        func() time.Time
}

// TimeInput edits the clock fields of one date. Rejected input leaves the
// value untouched and does not call OnChange.
type TimeInput struct {
	mu         sync.Mutex
	value      *time.Time
	onChange   func(time.Time)
	twelveHour bool
	secondStep int
	now        func() time.Time
}

// New builds a TimeInput.
func New(opts Options) *TimeInput {
	ti := &TimeInput{
		value:      opts.Value,
		onChange:   opts.OnChange,
		twelveHour: opts.HourFormat == 12,
		secondStep: opts.SecondStep,
		now:        opts.Now,
	}
	if ti.secondStep < 1 {
		ti.secondStep = 1
	}
	if ti.now == nil {
		ti.now = time.Now
	}
	return ti
}

// TwelveHour reports whether hours are shown as 1-12 with a period.
func (ti *TimeInput) TwelveHour() bool { return ti.twelveHour }

// SetValue rebinds the edited date.
func (ti *TimeInput) SetValue(t *time.Time) {
	ti.mu.Lock()
	ti.value = t
	ti.mu.Unlock()
}

// Value returns the bound date, or now when unbound.
func (ti *TimeInput) Value() time.Time {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.currentLocked()
}

func (ti *TimeInput) currentLocked() time.Time {
	if ti.value != nil {
		return *ti.value
	}
	return ti.now()
}

// Hours returns the zero-padded hour for the active format.
func (ti *TimeInput) Hours() string {
	h := ti.Value().Hour()
	if ti.twelveHour {
		h = h % 12
		if h == 0 {
			h = 12
		}
	}
	return timeutil.Pad(h)
}

func (ti *TimeInput) Minutes() string { return timeutil.Pad(ti.Value().Minute()) }

func (ti *TimeInput) Seconds() string { return timeutil.Pad(ti.Value().Second()) }

// Period returns AM before noon and PM after.
func (ti *TimeInput) Period() Period {
	if ti.Value().Hour() >= 12 {
		return PM
	}
	return AM
}

// SetHours parses the leading digits of v and sets the hour. In 12-hour mode v is 1-12 and is
// interpreted in the current period.
func (ti *TimeInput) SetHours(v string) {
	n, ok := timeutil.ParseLeadingInt(v)
	if !ok {
		return
	}

	cur := ti.Value()
	if ti.twelveHour {
		if n < 1 || n > 12 {
			return
		}
		pm := cur.Hour() >= 12
		switch {
		case n == 12 && !pm:
			n = 0
		case n != 12 && pm:
			n += 12
		}
	} else if n < 0 || n > 23 {
		return
	}
	ti.emit(withClock(cur, n, cur.Minute(), cur.Second()))
}

// SetMinutes parses v and sets the minute (0-59).
func (ti *TimeInput) SetMinutes(v string) {
	n, ok := timeutil.ParseLeadingInt(v)
	if !ok || n < 0 || n > 59 {
		return
	}
	cur := ti.Value()
	ti.emit(withClock(cur, cur.Hour(), n, cur.Second()))
}

// SetSeconds parses v and sets the second (0-59).
func (ti *TimeInput) SetSeconds(v string) {
	n, ok := timeutil.ParseLeadingInt(v)
	if !ok || n < 0 || n > 59 {
		return
	}
	cur := ti.Value()
	ti.emit(withClock(cur, cur.Hour(), cur.Minute(), n))
}

// SetPeriod moves the hour across noon. It is a no-op in 24-hour mode.
func (ti *TimeInput) SetPeriod(p Period) {
	if !ti.twelveHour || (p != AM && p != PM) {
		return
	}
	cur := ti.Value()
	h := cur.Hour()
	switch {
	case p == PM && h < 12:
		h += 12
	case p == AM && h >= 12:
		h -= 12
	}
	ti.emit(withClock(cur, h, cur.Minute(), cur.Second()))
}

func (ti *TimeInput) IncrementHours()   { ti.stepHours(1) }
func (ti *TimeInput) DecrementHours()   { ti.stepHours(-1) }
func (ti *TimeInput) IncrementMinutes() { ti.stepMinutes(1) }
func (ti *TimeInput) DecrementMinutes() { ti.stepMinutes(-1) }
func (ti *TimeInput) IncrementSeconds() { ti.stepSeconds(ti.secondStep) }
func (ti *TimeInput) DecrementSeconds() { ti.stepSeconds(-ti.secondStep) }

func (ti *TimeInput) stepHours(delta int) {
	cur := ti.Value()
	ti.emit(withClock(cur, wrap(cur.Hour()+delta, 24), cur.Minute(), cur.Second()))
}

func (ti *TimeInput) stepMinutes(delta int) {
	cur := ti.Value()
	ti.emit(withClock(cur, cur.Hour(), wrap(cur.Minute()+delta, 60), cur.Second()))
}

func (ti *TimeInput) stepSeconds(delta int) {
	cur := ti.Value()
	ti.emit(withClock(cur, cur.Hour(), cur.Minute(), wrap(cur.Second()+delta, 60)))
}

func (ti *TimeInput) emit(t time.Time) {
	if ti.onChange != nil {
		ti.onChange(t)
	}
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

func withClock(t time.Time, h, m, s int) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, h, m, s, t.Nanosecond(), t.Location())
}
