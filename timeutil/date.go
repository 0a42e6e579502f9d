// Package timeutil holds the pure date and time helpers used by the picker:
// formatting, relative-time arithmetic, calendar geometry and range math.
// Nothing in here keeps state; functions that depend on "now" take it as a
// parameter.
package timeutil

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimeRange is a {From, To} pair. From <= To is not enforced.
type TimeRange struct {
	From time.Time `json:"from" yaml:"from"`
	To   time.Time `json:"to" yaml:"to"`
}

var monthsShort = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthNames are the full English month names, January first.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// WeekDays are two-letter weekday headers, Sunday first.
var WeekDays = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Pad zero-pads n to width 2.
func Pad(n int) string {
	return fmt.Sprintf("%02d", n)
}

// FormatDateTime formats t as "YYYY-MM-DD HH:mm:ss".
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// FormatDateShort formats t as "Mon D, HH:mm".
func FormatDateShort(t time.Time) string {
	return fmt.Sprintf("%s %d, %s:%s", monthsShort[t.Month()-1], t.Day(), Pad(t.Hour()), Pad(t.Minute()))
}

// FormatRangeLabel returns label when set, otherwise "short(from) → short(to)".
// A nil short formatter uses FormatDateShort.
func FormatRangeLabel(from, to time.Time, label string, short func(time.Time) string) string {
	if label != "" {
		return label
	}
	if short == nil {
		short = FormatDateShort
	}
	return short(from) + " → " + short(to)
}

// ApplyRelativeTime returns now minus value units.
//
// Seconds, minutes and hours are subtracted linearly. Days and weeks move by
// calendar days, keeping the wall-clock time. Months and years move by
// calendar months and clamp the day to the last valid day of the target
// month, so March 31 minus one month is the last day of February.
func ApplyRelativeTime(now time.Time, value int, unit TimeUnit) time.Time {
	switch unit {
	case Second:
		return now.Add(-time.Duration(value) * time.Second)
	case Minute:
		return now.Add(-time.Duration(value) * time.Minute)
	case Hour:
		return now.Add(-time.Duration(value) * time.Hour)
	case Day:
		return now.AddDate(0, 0, -value)
	case Week:
		return now.AddDate(0, 0, -value*7)
	case Month:
		return addMonthsClamped(now, -value)
	case Year:
		return addMonthsClamped(now, -value*12)
	}
	return now
}

// addMonthsClamped shifts t by months calendar months without overflowing
// into the following month.
func addMonthsClamped(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)

	day := t.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return ((a % b) + b) % b
}

// DaysInMonth returns the number of days in month of year, using the
// day-zero-of-next-month overflow.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// FirstDayOfMonth returns the weekday of day 1 of month.
func FirstDayOfMonth(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday()
}

// IsSameDay compares year, month and day only.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable millisecond of t's day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// IsDateInRange reports whether d falls in [start, end] at day granularity.
func IsDateInRange(d, start, end time.Time) bool {
	day := StartOfDay(d)
	return !day.Before(StartOfDay(start)) && !day.After(StartOfDay(end))
}

// ClampDate constrains t to the given bounds. A nil bound leaves that side open.
func ClampDate(t time.Time, min, max *time.Time) time.Time {
	if min != nil && t.Before(*min) {
		t = *min
	}
	if max != nil && t.After(*max) {
		t = *max
	}
	return t
}

// RangeDuration returns To - From.
func RangeDuration(r TimeRange) time.Duration {
	return r.To.Sub(r.From)
}

// ShiftRange translates both ends of r by delta.
func ShiftRange(r TimeRange, delta time.Duration) TimeRange {
	return TimeRange{From: r.From.Add(delta), To: r.To.Add(delta)}
}

var (
	decimalTwo  = decimal.NewFromInt(2)
	nanosPerSec = decimal.New(1, 9)
)

// ScaleRange resizes r symmetrically around its midpoint. A factor of 2
// doubles the duration, 0.5 halves it. The arithmetic is exact to the
// nanosecond for spans beyond time.Duration; r is returned unchanged when
// the result falls outside the representable years.
func ScaleRange(r TimeRange, factor float64) TimeRange {
	from, to := instant(r.From), instant(r.To)
	span := to.Sub(from)
	mid := from.Add(span.Div(decimalTwo).Truncate(0))
	half := span.Mul(decimal.NewFromFloat(factor)).Div(decimalTwo).Truncate(0)

	start, ok := fromInstant(mid.Sub(half), r.From.Location())
	if !ok {
		return r
	}
	end, ok := fromInstant(mid.Add(half), r.To.Location())
	if !ok {
		return r
	}
	return TimeRange{From: start, To: end}
}

// instant is t as nanoseconds since the Unix epoch.
func instant(t time.Time) decimal.Decimal {
	return decimal.NewFromInt(t.Unix()).Mul(nanosPerSec).Add(decimal.NewFromInt(int64(t.Nanosecond())))
}

func fromInstant(ns decimal.Decimal, loc *time.Location) (time.Time, bool) {
	sec := ns.Shift(-9).Floor()
	whole := sec.BigInt()
	if !whole.IsInt64() {
		return time.Time{}, false
	}
	nsec := ns.Sub(sec.Mul(nanosPerSec)).IntPart()
	return time.Unix(whole.Int64(), nsec).In(loc), true
}

// GenerateTicks returns count evenly spaced instants spanning [from, to].
// The first tick is from and, when count > 1, the last tick is to.
func GenerateTicks(from, to time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []time.Time{from}
	}

	diff := to.Sub(from)
	ticks := make([]time.Time, count)
	for i := 0; i < count; i++ {
		ticks[i] = from.Add(time.Duration(float64(diff) * float64(i) / float64(count-1)))
	}
	ticks[count-1] = to
	return ticks
}
