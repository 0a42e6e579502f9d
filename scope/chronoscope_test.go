package scope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronoscope/timeutil"
)

func newScope(t *testing.T, opts Options) (*ChronoScope, *recorder, *manualScheduler) {
	t.Helper()
	rec := &recorder{}
	sched := newManualScheduler()
	opts.Now = clock()
	opts.OnChange = rec.OnChange
	opts.Scheduler = sched
	if opts.Pointer == nil {
		opts.Pointer = NewPointerBus()
	}
	c := New(opts)
	t.Cleanup(c.Close)
	return c, rec, sched
}

func TestChronoScopeDefaultQuickLabel(t *testing.T) {
	c, rec, _ := newScope(t, Options{})

	assert.Equal(t, fixedNow.Add(-6*time.Hour), c.Range.From())
	assert.Equal(t, fixedNow, c.Range.To())
	assert.Equal(t, "Last 6 hours", c.Range.DisplayLabel())
	label, ok := c.Quick.ActiveLabel()
	assert.True(t, ok)
	assert.Equal(t, "Last 6 hours", label)
	assert.Equal(t, ModeQuick, c.Mode())
	assert.Zero(t, rec.Len())
}

func TestChronoScopeCustomDefaultLabel(t *testing.T) {
	c, _, _ := newScope(t, Options{DefaultQuickLabel: "Last 7 days"})

	assert.Equal(t, fixedNow.AddDate(0, 0, -7), c.Range.From())
	assert.Equal(t, "Last 7 days", c.Range.DisplayLabel())
}

func TestChronoScopeUnknownDefaultLabel(t *testing.T) {
	c, _, _ := newScope(t, Options{DefaultQuickLabel: "Last fortnight"})

	assert.Equal(t, fixedNow.Add(-6*time.Hour), c.Range.From())
	assert.Empty(t, c.Range.Label())
	_, ok := c.Quick.ActiveLabel()
	assert.False(t, ok)
}

func TestChronoScopeExplicitRangeWins(t *testing.T) {
	from := fixedNow.Add(-30 * time.Minute)
	to := fixedNow.Add(-10 * time.Minute)
	c, _, _ := newScope(t, Options{RangeStateOptions: RangeStateOptions{DefaultFrom: from, DefaultTo: to}})

	assert.Equal(t, timeutil.TimeRange{From: from, To: to}, c.Range.Range())
	assert.Empty(t, c.Range.Label())
	_, ok := c.Quick.ActiveLabel()
	assert.False(t, ok)
}

func TestChronoScopeModeIsPresentationOnly(t *testing.T) {
	c, rec, _ := newScope(t, Options{})
	before := c.Range.Range()

	c.SetMode(ModeRelative)
	assert.Equal(t, ModeRelative, c.Mode())
	c.SetMode(ModeAbsolute)
	assert.Equal(t, ModeAbsolute, c.Mode())

	assert.Equal(t, before, c.Range.Range())
	assert.Zero(t, rec.Len())
}

func TestChronoScopeAbsoluteEditing(t *testing.T) {
	c, rec, _ := newScope(t, Options{HourFormat: 24})
	c.Range.Open()

	cal := c.FromCalendar()
	assert.Equal(t, 2024, cal.ViewYear())
	assert.Equal(t, time.June, cal.ViewMonth())
	cal.PrevMonth()
	cal.SelectDay(20)
	assert.Equal(t, time.Date(2024, time.May, 20, 6, 0, 0, 0, time.Local), c.Range.From())

	c.ToTime().SetHours("18")
	assert.Equal(t, time.Date(2024, time.June, 15, 18, 0, 0, 0, time.Local), c.Range.To())
	assert.Equal(t, "18", c.ToTime().Hours())

	c.FromTime().IncrementMinutes()
	assert.Equal(t, time.Date(2024, time.May, 20, 6, 1, 0, 0, time.Local), c.Range.From())
	assert.Zero(t, rec.Len())

	c.ApplyAbsolute()
	assert.False(t, c.Range.IsOpen())
	assert.Empty(t, c.Range.Label())
	changes := rec.All()
	require.Len(t, changes, 1)
	assert.Equal(t, SourceAbsolute, changes[0].Meta.Source)
	assert.Equal(t, c.Range.Range(), changes[0].Range)
}

func TestChronoScopeCalendarHighlight(t *testing.T) {
	c, _, _ := newScope(t, Options{DefaultQuickLabel: "Last 2 days"})

	var inRange []int
	for _, d := range c.ToCalendar().Days() {
		if d.IsInRange {
			inRange = append(inRange, d.Day)
		}
	}
	assert.Equal(t, []int{13, 14, 15}, inRange)
}

func TestChronoScopeLiveRederivesActivePreset(t *testing.T) {
	now := fixedNow
	rec := &recorder{}
	sched := newManualScheduler()
	c := New(Options{
		RangeStateOptions: RangeStateOptions{
			Now:      func() time.Time { return now },
			OnChange: rec.OnChange,
			Pointer:  NewPointerBus(),
		},
		DefaultQuickLabel: "Last 1 hour",
		LiveInterval:      time.Second,
		Scheduler:         sched,
	})
	defer c.Close()

	c.Live.SetLive(true)
	now = now.Add(time.Minute)
	sched.Advance(time.Second)

	require.Equal(t, 1, rec.Len())
	assert.Equal(t, timeutil.TimeRange{From: now.Add(-time.Hour), To: now}, c.Range.Range())
	assert.Equal(t, SourceLive, rec.All()[0].Meta.Source)
}

func TestChronoScopeLiveKeepsRangeWithoutPreset(t *testing.T) {
	from := fixedNow.Add(-2 * time.Hour)
	to := fixedNow.Add(-time.Hour)
	c, rec, sched := newScope(t, Options{
		RangeStateOptions: RangeStateOptions{DefaultFrom: from, DefaultTo: to},
		LiveInterval:      time.Second,
	})

	c.Live.SetLive(true)
	sched.Advance(2 * time.Second)

	assert.Equal(t, timeutil.TimeRange{From: from, To: to}, c.Range.Range())
	assert.Equal(t, 2, rec.Len())
}

func TestChronoScopeCloseReleasesResources(t *testing.T) {
	bus := NewPointerBus()
	c, _, sched := newScope(t, Options{
		RangeStateOptions: RangeStateOptions{Pointer: bus},
		LiveInterval:      time.Second,
	})

	c.Range.Open()
	c.Live.SetLive(true)
	require.Equal(t, 1, bus.Len())
	require.Equal(t, 1, sched.Active())

	c.Close()
	assert.Zero(t, bus.Len())
	assert.Zero(t, sched.Active())
	assert.False(t, c.Live.IsLive())
}

func TestChronoScopeLiveFollowsAppliedRelative(t *testing.T) {
	now := fixedNow
	rec := &recorder{}
	sched := newManualScheduler()
	c := New(Options{
		RangeStateOptions: RangeStateOptions{
			Now:      func() time.Time { return now },
			OnChange: rec.OnChange,
			Pointer:  NewPointerBus(),
		},
		LiveInterval: time.Second,
		Scheduler:    sched,
	})
	defer c.Close()

	c.Relative.SetValue("90")
	c.Relative.SetUnit(timeutil.Minute)
	c.Relative.Apply()
	_, active := c.Quick.ActiveLabel()
	assert.False(t, active)

	c.Live.SetLive(true)
	now = now.Add(time.Minute)
	sched.Advance(time.Second)

	want := timeutil.TimeRange{From: now.Add(-90 * time.Minute), To: now}
	assert.Equal(t, want, c.Range.Range())
	changes := rec.All()
	require.Len(t, changes, 2)
	assert.Equal(t, SourceRelative, changes[0].Meta.Source)
	assert.Equal(t, SourceLive, changes[1].Meta.Source)
	assert.Equal(t, want, changes[1].Range)

	q, ok := c.Quick.Find("Last 1 hour")
	require.True(t, ok)
	c.Quick.Select(q)
	now = now.Add(time.Minute)
	sched.Advance(time.Second)
	assert.Equal(t, timeutil.TimeRange{From: now.Add(-time.Hour), To: now}, c.Range.Range())

	c.Relative.Apply()
	c.ApplyAbsolute()
	frozen := c.Range.Range()
	now = now.Add(time.Minute)
	sched.Advance(time.Second)
	assert.Equal(t, frozen, c.Range.Range())
}

func TestChronoScopeChangeHandlerMayReenterLive(t *testing.T) {
	var c *ChronoScope
	var seen []bool
	sched := newManualScheduler()
	c = New(Options{
		RangeStateOptions: RangeStateOptions{
			Now: clock(),
			OnChange: func(_ timeutil.TimeRange, meta ChangeMeta) {
				if meta.Source != SourceLive {
					return
				}
				seen = append(seen, c.Live.IsLive())
				c.Live.SetLive(false)
			},
			Pointer: NewPointerBus(),
		},
		LiveInterval: time.Second,
		Scheduler:    sched,
	})
	defer c.Close()

	c.Live.SetLive(true)
	done := make(chan struct{})
	go func() {
		sched.Advance(3 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("live tick did not return")
	}
	assert.Equal(t, []bool{true}, seen)
	assert.False(t, c.Live.IsLive())
	assert.Zero(t, sched.Active())
}
