package timeinput

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockAt(h, m, s int) time.Time {
	return time.Date(2024, time.June, 15, h, m, s, 0, time.Local)
}

// bound returns an input whose value follows its own OnChange.
func bound(start time.Time, hourFormat int) (*TimeInput, *[]time.Time) {
	var emitted []time.Time
	value := start
	var ti *TimeInput
	ti = New(Options{
		Value:      &value,
		HourFormat: hourFormat,
		OnChange: func(t time.Time) {
			emitted = append(emitted, t)
			v := t
			ti.SetValue(&v)
		},
	})
	return ti, &emitted
}

func TestDisplayFields(t *testing.T) {
	ti, _ := bound(clockAt(21, 5, 9), 24)
	assert.Equal(t, "21", ti.Hours())
	assert.Equal(t, "05", ti.Minutes())
	assert.Equal(t, "09", ti.Seconds())
	assert.Equal(t, PM, ti.Period())

	ti, _ = bound(clockAt(21, 5, 9), 12)
	assert.Equal(t, "09", ti.Hours())
	assert.Equal(t, PM, ti.Period())

	ti, _ = bound(clockAt(0, 0, 0), 12)
	assert.Equal(t, "12", ti.Hours())
	assert.Equal(t, AM, ti.Period())

	ti, _ = bound(clockAt(12, 0, 0), 12)
	assert.Equal(t, "12", ti.Hours())
	assert.Equal(t, PM, ti.Period())
}

func TestUnboundFallsBackToNow(t *testing.T) {
	ti := New(Options{Now: func() time.Time { return clockAt(7, 8, 9) }})
	assert.Equal(t, "07", ti.Hours())
	assert.Equal(t, "08", ti.Minutes())
	assert.NotPanics(t, func() { ti.SetHours("3") })
}

func TestTwelveHourRoundTrip(t *testing.T) {
	ti, _ := bound(clockAt(9, 0, 0), 12)
	ti.SetHours("12")
	assert.Equal(t, 0, ti.Value().Hour())

	ti, _ = bound(clockAt(15, 0, 0), 12)
	ti.SetHours("12")
	assert.Equal(t, 12, ti.Value().Hour())

	ti, _ = bound(clockAt(15, 0, 0), 12)
	ti.SetHours("4")
	assert.Equal(t, 16, ti.Value().Hour())

	ti, _ = bound(clockAt(9, 0, 0), 12)
	ti.SetPeriod(PM)
	assert.Equal(t, clockAt(21, 0, 0), ti.Value())
	ti.SetPeriod(AM)
	assert.Equal(t, clockAt(9, 0, 0), ti.Value())
}

func TestSetPeriodOnlyInTwelveHourMode(t *testing.T) {
	ti, emitted := bound(clockAt(9, 0, 0), 24)
	ti.SetPeriod(PM)
	assert.Empty(t, *emitted)
	assert.Equal(t, 9, ti.Value().Hour())
}

func TestSetFieldsRejectInvalid(t *testing.T) {
	cases := []struct {
		name string
		fmt  int
		set  func(*TimeInput)
	}{
		{"hours not a number", 24, func(ti *TimeInput) { ti.SetHours("x") }},
		{"hours above 23", 24, func(ti *TimeInput) { ti.SetHours("24") }},
		{"hours negative", 24, func(ti *TimeInput) { ti.SetHours("-1") }},
		{"twelve hour zero", 12, func(ti *TimeInput) { ti.SetHours("0") }},
		{"twelve hour thirteen", 12, func(ti *TimeInput) { ti.SetHours("13") }},
		{"minutes above 59", 24, func(ti *TimeInput) { ti.SetMinutes("60") }},
		{"minutes empty", 24, func(ti *TimeInput) { ti.SetMinutes("") }},
		{"seconds above 59", 24, func(ti *TimeInput) { ti.SetSeconds("75") }},
		{"seconds not a number", 24, func(ti *TimeInput) { ti.SetSeconds("s5") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := clockAt(10, 20, 30)
			ti, emitted := bound(start, tc.fmt)
			tc.set(ti)
			assert.Empty(t, *emitted)
			assert.Equal(t, start, ti.Value())
		})
	}
}

func TestSetFieldsUseLeadingDigits(t *testing.T) {
	ti, emitted := bound(clockAt(10, 20, 30), 24)

	ti.SetSeconds("5s")
	ti.SetMinutes(" 07min")
	ti.SetHours("8h")

	require.Len(t, *emitted, 3)
	assert.Equal(t, clockAt(8, 7, 5), ti.Value())
}

func TestSetFieldsKeepDate(t *testing.T) {
	ti, emitted := bound(clockAt(10, 20, 30), 24)
	ti.SetHours("23")
	ti.SetMinutes("0")
	ti.SetSeconds("59")
	require.Len(t, *emitted, 3)
	assert.Equal(t, clockAt(23, 0, 59), ti.Value())
}

func TestIncrementWraps(t *testing.T) {
	ti, _ := bound(clockAt(23, 59, 59), 24)
	ti.IncrementHours()
	ti.IncrementMinutes()
	ti.IncrementSeconds()
	assert.Equal(t, clockAt(0, 0, 0), ti.Value())

	ti.DecrementHours()
	ti.DecrementMinutes()
	ti.DecrementSeconds()
	assert.Equal(t, clockAt(23, 59, 59), ti.Value())
}

func TestSecondStep(t *testing.T) {
	value := clockAt(10, 0, 50)
	var got time.Time
	ti := New(Options{
		Value:      &value,
		SecondStep: 15,
		OnChange:   func(t time.Time) { got = t },
	})

	ti.IncrementSeconds()
	assert.Equal(t, clockAt(10, 0, 5), got)
	ti.DecrementSeconds()
	assert.Equal(t, clockAt(10, 0, 35), got)
}
