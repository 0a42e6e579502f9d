package scope

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"chronoscope/timeutil"
)

// defaultLookback is how far back the range starts when no default is given.
const defaultLookback = 6 * time.Hour

// RangeStateOptions configures a RangeState. Zero values select defaults.
type RangeStateOptions struct {
	// DefaultFrom and DefaultTo seed the range; zero means now-6h and now.
	DefaultFrom time.Time
	DefaultTo   time.Time

	// MinDate and MaxDate bound the range. They only constrain committed
	// dates when ClampToLimits is set; otherwise they are informational.
	MinDate       *time.Time
	MaxDate       *time.Time
	ClampToLimits bool

	OnChange ChangeFunc

	// FormatDate renders FormattedFrom/To; FormatDateShort renders the
	// derived display label.
	FormatDate      func(time.Time) string
	FormatDateShort func(time.Time) string

	Now func() time.Time

	// Pointer is the event stream used to close on outside presses.
	// Contains reports whether an event landed inside the picker; nil
	// treats every event as outside.
	Pointer  *PointerBus
	Contains func(PointerEvent) bool

	Logger *zap.Logger
}

// RangeState is the single source of truth for the active range, the
// open/closed flag and the display label. It is safe for concurrent use;
// callbacks are never invoked while its lock is held.
type RangeState struct {
	mu     sync.Mutex
	from   time.Time
	to     time.Time
	label  string
	isOpen bool
	sub    *Subscription

	minDate       *time.Time
	maxDate       *time.Time
	clampToLimits bool

	onChange    ChangeFunc
	formatDate  func(time.Time) string
	formatShort func(time.Time) string
	now         func() time.Time
	pointer     *PointerBus
	contains    func(PointerEvent) bool
	logger      *zap.Logger
}

// NewRangeState builds a RangeState from opts.
func NewRangeState(opts RangeStateOptions) *RangeState {
	s := &RangeState{
		minDate:       copyTime(opts.MinDate),
		maxDate:       copyTime(opts.MaxDate),
		clampToLimits: opts.ClampToLimits,
		onChange:      opts.OnChange,
		formatDate:    opts.FormatDate,
		formatShort:   opts.FormatDateShort,
		now:           opts.Now,
		pointer:       opts.Pointer,
		contains:      opts.Contains,
		logger:        opts.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.formatDate == nil {
		s.formatDate = timeutil.FormatDateTime
	}
	if s.formatShort == nil {
		s.formatShort = timeutil.FormatDateShort
	}
	if s.pointer == nil {
		s.pointer = DefaultPointerBus
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.from = opts.DefaultFrom
	if s.from.IsZero() {
		s.from = s.now().Add(-defaultLookback)
	}
	s.to = opts.DefaultTo
	if s.to.IsZero() {
		s.to = s.now()
	}
	return s
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// From returns the start of the range.
func (s *RangeState) From() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.from
}

// To returns the end of the range.
func (s *RangeState) To() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.to
}

// Range returns a snapshot of both ends.
func (s *RangeState) Range() timeutil.TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return timeutil.TimeRange{From: s.from, To: s.to}
}

// MinDate returns the lower bound, if any.
func (s *RangeState) MinDate() *time.Time { return copyTime(s.minDate) }

// MaxDate returns the upper bound, if any.
func (s *RangeState) MaxDate() *time.Time { return copyTime(s.maxDate) }

// Clamp applies the bounding policy. It is the identity unless
// ClampToLimits was set.
func (s *RangeState) Clamp(t time.Time) time.Time {
	if !s.clampToLimits {
		return t
	}
	return timeutil.ClampDate(t, s.minDate, s.maxDate)
}

// SetFrom clamps and stores a new start.
func (s *RangeState) SetFrom(t time.Time) {
	t = s.Clamp(t)
	s.mu.Lock()
	s.from = t
	s.mu.Unlock()
}

// SetTo clamps and stores a new end.
func (s *RangeState) SetTo(t time.Time) {
	t = s.Clamp(t)
	s.mu.Lock()
	s.to = t
	s.mu.Unlock()
}

// SetRange atomically replaces both ends and the label. An empty label
// means the display label is derived from the dates.
func (s *RangeState) SetRange(r timeutil.TimeRange, label string) {
	from, to := s.Clamp(r.From), s.Clamp(r.To)
	s.mu.Lock()
	s.from, s.to, s.label = from, to, label
	s.mu.Unlock()

	s.logger.Debug("range committed",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.String("label", label),
	)
}

// Label returns the stored label, empty when derived.
func (s *RangeState) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// SetLabel replaces the stored label without touching the dates.
func (s *RangeState) SetLabel(label string) {
	s.mu.Lock()
	s.label = label
	s.mu.Unlock()
}

// DisplayLabel returns the stored label, or "short(from) → short(to)".
func (s *RangeState) DisplayLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return timeutil.FormatRangeLabel(s.from, s.to, s.label, s.formatShort)
}

// FormattedFrom renders From with the configured formatter.
func (s *RangeState) FormattedFrom() string {
	return s.formatDate(s.From())
}

// FormattedTo renders To with the configured formatter.
func (s *RangeState) FormattedTo() string {
	return s.formatDate(s.To())
}

// FireChange notifies OnChange. It does not mutate state: callers commit
// with SetRange first.
func (s *RangeState) FireChange(from, to time.Time, meta ChangeMeta) {
	if s.onChange == nil {
		return
	}
	s.onChange(timeutil.TimeRange{From: from, To: to}, meta)
}

// IsOpen reports whether the picker UI is open.
func (s *RangeState) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Open shows the picker and starts listening for outside presses.
func (s *RangeState) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openLocked()
}

// Close hides the picker and stops listening for outside presses.
func (s *RangeState) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// Toggle flips the open flag.
func (s *RangeState) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isOpen {
		s.closeLocked()
	} else {
		s.openLocked()
	}
}

func (s *RangeState) openLocked() {
	s.isOpen = true
	if s.sub == nil {
		s.sub = s.pointer.Subscribe(s.handlePointer)
	}
}

func (s *RangeState) closeLocked() {
	s.isOpen = false
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
}

func (s *RangeState) handlePointer(ev PointerEvent) {
	if s.contains != nil && s.contains(ev) {
		return
	}
	s.logger.Debug("outside press closes picker", zap.Int("x", ev.X), zap.Int("y", ev.Y))
	s.Close()
}
