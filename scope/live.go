package scope

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"chronoscope/timeutil"
)

// DefaultLiveInterval is the refresh period when none is configured.
const DefaultLiveInterval = 5 * time.Second

// RefreshFunc produces the next range on each live tick.
type RefreshFunc func() timeutil.TimeRange

// LiveRefreshOptions configures a LiveRefresh.
type LiveRefreshOptions struct {
	Interval  time.Duration
	OnToggle  func(live bool)
	RefreshFn RefreshFunc
	Scheduler Scheduler
	Logger    *zap.Logger
}

// LiveRefresh periodically replaces the range with RefreshFn's result.
// Without a RefreshFn the flag toggles but nothing is scheduled.
type LiveRefresh struct {
	state     *RangeState
	interval  time.Duration
	onToggle  func(bool)
	refresh   RefreshFunc
	scheduler Scheduler
	logger    *zap.Logger

	// tickMu serializes ticks. It is held while the change fires, so it
	// must never be taken by the toggling methods.
	tickMu sync.Mutex

	mu     sync.Mutex
	isLive bool
	gen    uint64
	stop   func()
}

// NewLiveRefresh binds a live refresher to state. It starts disabled.
func NewLiveRefresh(state *RangeState, opts LiveRefreshOptions) *LiveRefresh {
	l := &LiveRefresh{
		state:     state,
		interval:  opts.Interval,
		onToggle:  opts.OnToggle,
		refresh:   opts.RefreshFn,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
	}
	if l.interval <= 0 {
		l.interval = DefaultLiveInterval
	}
	if l.scheduler == nil {
		l.scheduler = CronScheduler{}
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	return l
}

// IsLive reports whether live mode is on.
func (l *LiveRefresh) IsLive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isLive
}

// Interval returns the refresh period.
func (l *LiveRefresh) Interval() time.Duration { return l.interval }

// Toggle flips live mode.
func (l *LiveRefresh) Toggle() {
	l.mu.Lock()
	live := !l.isLive
	l.setLiveLocked(live)
	l.mu.Unlock()
	l.notify(live)
}

// SetLive enables or disables live mode. Once SetLive(false) returns no
// further tick commits; a change already being delivered still completes.
func (l *LiveRefresh) SetLive(live bool) {
	l.mu.Lock()
	l.setLiveLocked(live)
	l.mu.Unlock()
	l.notify(live)
}

// Close stops any schedule without firing OnToggle.
func (l *LiveRefresh) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.isLive = false
	l.gen++
	if l.stop != nil {
		l.stop()
		l.stop = nil
	}
}

func (l *LiveRefresh) setLiveLocked(live bool) {
	l.isLive = live
	l.gen++
	if l.stop != nil {
		l.stop()
		l.stop = nil
	}
	if !live || l.refresh == nil {
		return
	}
	gen := l.gen
	l.stop = l.scheduler.Every(l.interval, func() { l.tick(gen) })
	l.logger.Debug("live refresh scheduled", zap.Duration("interval", l.interval))
}

func (l *LiveRefresh) notify(live bool) {
	if l.onToggle != nil {
		l.onToggle(live)
	}
}

func (l *LiveRefresh) tick(gen uint64) {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()

	l.mu.Lock()
	if !l.isLive || gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.state.SetRange(l.refresh(), "")
	r := l.state.Range()
	l.mu.Unlock()

	l.state.FireChange(r.From, r.To, ChangeMeta{Source: SourceLive})
}
