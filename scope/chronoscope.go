package scope

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"chronoscope/calendar"
	"chronoscope/timeinput"
	"chronoscope/timeutil"
)

// DefaultQuickLabel is the preset resolved at construction when none is given.
const DefaultQuickLabel = "Last 6 hours"

// Options configures a ChronoScope.
type Options struct {
	RangeStateOptions

	// QuickRanges is the preset catalog; nil selects DefaultQuickRanges.
	QuickRanges []QuickRange
	// DefaultQuickLabel seeds the range when DefaultFrom and DefaultTo are
	// both zero. An unknown label leaves the default range untouched.
	DefaultQuickLabel string
	TimeUnits         []timeutil.TimeUnitOption

	LiveInterval time.Duration
	OnLiveToggle func(bool)
	Scheduler    Scheduler

	WeekStartsOn time.Weekday
	HourFormat   int
	SecondStep   int
}

// ChronoScope is one picker: a shared RangeState with the quick, relative,
// navigation and live units bound to it.
type ChronoScope struct {
	Range    *RangeState
	Quick    *QuickRanges
	Relative *RelativeRange
	Nav      *Navigator
	Live     *LiveRefresh

	fromCal  *calendar.Calendar
	toCal    *calendar.Calendar
	fromTime *timeinput.TimeInput
	toTime   *timeinput.TimeInput

	logger *zap.Logger

	mu       sync.Mutex
	mode     SelectionMode
	relative *relativeExpr
}

// relativeExpr is the last applied "last N units" selection.
type relativeExpr struct {
	n    int
	unit timeutil.TimeUnit
}

// New wires a ChronoScope from opts.
func New(opts Options) *ChronoScope {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DefaultQuickLabel == "" {
		opts.DefaultQuickLabel = DefaultQuickLabel
	}
	catalog := opts.QuickRanges
	if catalog == nil {
		catalog = DefaultQuickRanges()
	}

	// Resolve the default preset before the state exists so that the
	// initial range is computed from the same now.
	var (
		activeLabel string
		explicit    = !opts.DefaultFrom.IsZero() || !opts.DefaultTo.IsZero()
	)
	if !explicit {
		for _, q := range catalog {
			if q.Label != opts.DefaultQuickLabel {
				continue
			}
			now := opts.Now()
			opts.DefaultFrom = timeutil.ApplyRelativeTime(now, q.Value, q.Unit)
			opts.DefaultTo = now
			activeLabel = q.Label
			break
		}
	}

	state := NewRangeState(opts.RangeStateOptions)
	if activeLabel != "" {
		state.SetLabel(activeLabel)
	}

	c := &ChronoScope{
		Range: state,
		Quick: NewQuickRanges(state, QuickRangesOptions{
			Ranges:       catalog,
			DefaultLabel: activeLabel,
			Now:          opts.Now,
			Logger:       opts.Logger,
		}),
		Nav:    NewNavigator(state, opts.Logger),
		logger: opts.Logger,
		mode:   ModeQuick,
	}
	c.Relative = NewRelativeRange(state, RelativeRangeOptions{
		TimeUnits: opts.TimeUnits,
		OnApply:   c.relativeApplied,
		Now:       opts.Now,
		Logger:    opts.Logger,
	})
	c.Live = NewLiveRefresh(state, LiveRefreshOptions{
		Interval:  opts.LiveInterval,
		OnToggle:  opts.OnLiveToggle,
		RefreshFn: c.refresh(opts.Now),
		Scheduler: opts.Scheduler,
		Logger:    opts.Logger,
	})

	c.fromCal = calendar.New(calendar.Options{
		OnSelect:     state.SetFrom,
		MinDate:      state.MinDate(),
		MaxDate:      state.MaxDate(),
		WeekStartsOn: opts.WeekStartsOn,
		Now:          opts.Now,
		Selected:     ptr(state.From()),
	})
	c.toCal = calendar.New(calendar.Options{
		OnSelect:     state.SetTo,
		MinDate:      state.MinDate(),
		MaxDate:      state.MaxDate(),
		WeekStartsOn: opts.WeekStartsOn,
		Now:          opts.Now,
		Selected:     ptr(state.To()),
	})
	c.fromTime = timeinput.New(timeinput.Options{
		OnChange:   state.SetFrom,
		HourFormat: opts.HourFormat,
		SecondStep: opts.SecondStep,
		Now:        opts.Now,
	})
	c.toTime = timeinput.New(timeinput.Options{
		OnChange:   state.SetTo,
		HourFormat: opts.HourFormat,
		SecondStep: opts.SecondStep,
		Now:        opts.Now,
	})

	c.logger.Debug("picker initialised",
		zap.String("label", state.DisplayLabel()),
		zap.Bool("explicit_range", explicit),
	)
	return c
}

// refresh re-derives the active preset, or the last applied relative
// expression, against now. Without either the current range is kept.
func (c *ChronoScope) refresh(now func() time.Time) RefreshFunc {
	return func() timeutil.TimeRange {
		if label, ok := c.Quick.ActiveLabel(); ok {
			if q, found := c.Quick.Find(label); found {
				t := now()
				return timeutil.TimeRange{
					From: timeutil.ApplyRelativeTime(t, q.Value, q.Unit),
					To:   t,
				}
			}
		}

		c.mu.Lock()
		rel := c.relative
		c.mu.Unlock()
		if rel != nil {
			t := now()
			return timeutil.TimeRange{
				From: timeutil.ApplyRelativeTime(t, rel.n, rel.unit),
				To:   t,
			}
		}
		return c.Range.Range()
	}
}

// relativeApplied makes a relative selection the one live refresh follows.
func (c *ChronoScope) relativeApplied(n int, unit timeutil.TimeUnit) {
	c.Quick.SetActiveLabel("")
	c.mu.Lock()
	c.relative = &relativeExpr{n: n, unit: unit}
	c.mu.Unlock()
}

func ptr(t time.Time) *time.Time { return &t }

// Mode returns the presented panel.
func (c *ChronoScope) Mode() SelectionMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches the presented panel. It does not touch the range.
func (c *ChronoScope) SetMode(m SelectionMode) {
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
}

// ApplyAbsolute confirms the range edited through the calendars and time
// inputs: it closes the picker and fires an absolute change.
func (c *ChronoScope) ApplyAbsolute() {
	r := c.Range.Range()
	c.Quick.SetActiveLabel("")
	c.mu.Lock()
	c.relative = nil
	c.mu.Unlock()
	c.Range.SetLabel("")
	c.Range.Close()
	c.Range.FireChange(r.From, r.To, ChangeMeta{Source: SourceAbsolute})
}

// FromCalendar returns the calendar bound to the start of the range.
func (c *ChronoScope) FromCalendar() *calendar.Calendar {
	r := c.Range.Range()
	c.fromCal.SetSelected(ptr(r.From))
	c.fromCal.SetHighlight(ptr(r.From), ptr(r.To))
	return c.fromCal
}

// ToCalendar returns the calendar bound to the end of the range.
func (c *ChronoScope) ToCalendar() *calendar.Calendar {
	r := c.Range.Range()
	c.toCal.SetSelected(ptr(r.To))
	c.toCal.SetHighlight(ptr(r.From), ptr(r.To))
	return c.toCal
}

// FromTime returns the time editor bound to the start of the range.
func (c *ChronoScope) FromTime() *timeinput.TimeInput {
	c.fromTime.SetValue(ptr(c.Range.From()))
	return c.fromTime
}

// ToTime returns the time editor bound to the end of the range.
func (c *ChronoScope) ToTime() *timeinput.TimeInput {
	c.toTime.SetValue(ptr(c.Range.To()))
	return c.toTime
}

// Close stops live refresh and releases the outside-press subscription.
func (c *ChronoScope) Close() {
	c.Live.Close()
	c.Range.Close()
}
