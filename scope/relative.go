package scope

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"chronoscope/timeutil"
)

// RelativeRangeOptions configures a RelativeRange builder.
type RelativeRangeOptions struct {
	// TimeUnits is the unit catalog offered to the user; nil selects
	// timeutil.DefaultTimeUnits.
	TimeUnits    []timeutil.TimeUnitOption
	DefaultValue string
	DefaultUnit  timeutil.TimeUnit
	// OnApply runs after a successful Apply commits its range and before
	// the change fires.
	OnApply func(n int, unit timeutil.TimeUnit)
	Now     func() time.Time
	Logger  *zap.Logger
}

// RelativeRange is a "last N units" input bound to a RangeState. The value
// is kept as typed text so partial keystrokes are tolerated.
type RelativeRange struct {
	state   *RangeState
	units   []timeutil.TimeUnitOption
	now     func() time.Time
	onApply func(int, timeutil.TimeUnit)
	logger  *zap.Logger

	mu    sync.Mutex
	value string
	unit  timeutil.TimeUnit
}

// NewRelativeRange binds a relative builder to state. The defaults are "5" minutes.
func NewRelativeRange(state *RangeState, opts RelativeRangeOptions) *RelativeRange {
	r := &RelativeRange{
		state:   state,
		units:   opts.TimeUnits,
		now:     opts.Now,
		onApply: opts.OnApply,
		logger:  opts.Logger,
		value:   opts.DefaultValue,
		unit:    opts.DefaultUnit,
	}
	if r.units == nil {
		r.units = timeutil.DefaultTimeUnits()
	}
	if r.value == "" {
		r.value = "5"
	}
	if r.unit == "" {
		r.unit = timeutil.Minute
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Value returns the typed value text.
func (r *RelativeRange) Value() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// SetValue replaces the typed value text. Invalid text is accepted here
// and rejected at Apply.
func (r *RelativeRange) SetValue(v string) {
	r.mu.Lock()
	r.value = v
	r.mu.Unlock()
}

// Unit returns the selected unit.
func (r *RelativeRange) Unit() timeutil.TimeUnit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unit
}

// SetUnit selects a unit.
func (r *RelativeRange) SetUnit(u timeutil.TimeUnit) {
	r.mu.Lock()
	r.unit = u
	r.mu.Unlock()
}

// TimeUnits returns the unit catalog.
func (r *RelativeRange) TimeUnits() []timeutil.TimeUnitOption {
	return append([]timeutil.TimeUnitOption(nil), r.units...)
}

func (r *RelativeRange) parsed() (int, timeutil.TimeUnit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := timeutil.ParseLeadingInt(r.value)
	if !ok || n <= 0 {
		return 0, r.unit, false
	}
	return n, r.unit, true
}

// Preview returns the start the current input would produce, or now when
// the input is not a positive number.
func (r *RelativeRange) Preview() time.Time {
	now := r.now()
	n, unit, ok := r.parsed()
	if !ok {
		return now
	}
	return timeutil.ApplyRelativeTime(now, n, unit)
}

// Apply commits "now minus value units" with a built label, closes the
// picker and fires a relative change. Invalid input is a no-op.
func (r *RelativeRange) Apply() {
	n, unit, ok := r.parsed()
	if !ok {
		r.logger.Debug("relative apply ignored", zap.String("value", r.Value()))
		return
	}

	now := r.now()
	from := r.state.Clamp(timeutil.ApplyRelativeTime(now, n, unit))
	to := r.state.Clamp(now)
	label := timeutil.BuildRelativeLabelWith(r.units, n, unit)

	r.state.SetRange(timeutil.TimeRange{From: from, To: to}, label)
	r.state.Close()
	if r.onApply != nil {
		r.onApply(n, unit)
	}
	r.state.FireChange(from, to, ChangeMeta{
		Source:             SourceRelative,
		QuickLabel:         label,
		RelativeExpression: timeutil.FormatRelativeExpression(n, unit),
	})
}
