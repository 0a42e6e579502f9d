package scope

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"chronoscope/timeutil"
)

// QuickRangesOptions configures a QuickRanges selector.
type QuickRangesOptions struct {
	// Ranges is the preset catalog; nil selects DefaultQuickRanges.
	Ranges []QuickRange
	// DefaultLabel is the initially active label, if any.
	DefaultLabel string
	Now          func() time.Time
	Logger       *zap.Logger
}

// QuickRanges is a filterable catalog of presets bound to a RangeState.
type QuickRanges struct {
	state  *RangeState
	ranges []QuickRange
	now    func() time.Time
	logger *zap.Logger

	mu          sync.Mutex
	activeLabel string
	filter      string
}

// NewQuickRanges binds a preset catalog to state.
func NewQuickRanges(state *RangeState, opts QuickRangesOptions) *QuickRanges {
	ranges := opts.Ranges
	if ranges == nil {
		ranges = DefaultQuickRanges()
	}
	q := &QuickRanges{
		state:       state,
		ranges:      append([]QuickRange(nil), ranges...),
		now:         opts.Now,
		logger:      opts.Logger,
		activeLabel: opts.DefaultLabel,
	}
	if q.now == nil {
		q.now = time.Now
	}
	if q.logger == nil {
		q.logger = zap.NewNop()
	}
	return q
}

// Ranges returns the full catalog.
func (q *QuickRanges) Ranges() []QuickRange {
	return append([]QuickRange(nil), q.ranges...)
}

// Find looks a preset up by label.
func (q *QuickRanges) Find(label string) (QuickRange, bool) {
	for _, r := range q.ranges {
		if r.Label == label {
			return r, true
		}
	}
	return QuickRange{}, false
}

// ActiveLabel returns the label of the last selected preset.
func (q *QuickRanges) ActiveLabel() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.activeLabel, q.activeLabel != ""
}

// SetActiveLabel overrides the active label; empty clears it.
func (q *QuickRanges) SetActiveLabel(label string) {
	q.mu.Lock()
	q.activeLabel = label
	q.mu.Unlock()
}

// Filter returns the current filter text.
func (q *QuickRanges) Filter() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.filter
}

// SetFilter replaces the filter text.
func (q *QuickRanges) SetFilter(filter string) {
	q.mu.Lock()
	q.filter = filter
	q.mu.Unlock()
}

// FilteredRanges returns presets whose label contains the filter,
// ignoring case.
func (q *QuickRanges) FilteredRanges() []QuickRange {
	fold := cases.Fold()
	needle := fold.String(q.Filter())
	out := make([]QuickRange, 0, len(q.ranges))
	for _, r := range q.ranges {
		if strings.Contains(fold.String(r.Label), needle) {
			out = append(out, r)
		}
	}
	return out
}

// RangeGroup is a run of presets sharing a Group name.
type RangeGroup struct {
	Name   string
	Ranges []QuickRange
}

// Groups partitions FilteredRanges by Group, keeping catalog order.
func (q *QuickRanges) Groups() []RangeGroup {
	var groups []RangeGroup
	index := make(map[string]int)
	for _, r := range q.FilteredRanges() {
		i, ok := index[r.Group]
		if !ok {
			i = len(groups)
			index[r.Group] = i
			groups = append(groups, RangeGroup{Name: r.Group})
		}
		groups[i].Ranges = append(groups[i].Ranges, r)
	}
	return groups
}

// Select commits r relative to now, makes it active, clears the filter,
// closes the picker and fires a quick change.
func (q *QuickRanges) Select(r QuickRange) {
	now := q.now()
	from := q.state.Clamp(timeutil.ApplyRelativeTime(now, r.Value, r.Unit))
	to := q.state.Clamp(now)

	q.state.SetRange(timeutil.TimeRange{From: from, To: to}, r.Label)
	q.mu.Lock()
	q.activeLabel = r.Label
	q.filter = ""
	q.mu.Unlock()
	q.state.Close()

	q.logger.Debug("quick range selected", zap.String("label", r.Label))
	q.state.FireChange(from, to, ChangeMeta{Source: SourceQuick, QuickLabel: r.Label})
}
