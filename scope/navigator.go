package scope

import (
	"time"

	"go.uber.org/zap"

	"chronoscope/timeutil"
)

// Navigator shifts and zooms the range held by a RangeState.
type Navigator struct {
	state  *RangeState
	logger *zap.Logger
}

// NewNavigator binds a Navigator to state. A nil logger discards output.
func NewNavigator(state *RangeState, logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{state: state, logger: logger}
}

// ShiftBack moves the range back by half its duration.
func (n *Navigator) ShiftBack() {
	r := n.state.Range()
	n.shift(r, -timeutil.RangeDuration(r)/2)
}

// ShiftForward moves the range forward by half its duration.
func (n *Navigator) ShiftForward() {
	r := n.state.Range()
	n.shift(r, timeutil.RangeDuration(r)/2)
}

func (n *Navigator) shift(r timeutil.TimeRange, delta time.Duration) {
	next := timeutil.ShiftRange(r, delta)
	n.commit(next, SourceShift)
}

// ZoomOut doubles the range around its midpoint.
func (n *Navigator) ZoomOut() {
	r := n.state.Range()
	n.commit(timeutil.ScaleRange(r, 2), SourceZoom)
}

// ZoomIn halves the range around its midpoint. When the result would be
// empty or inverted nothing is committed and nothing is fired.
func (n *Navigator) ZoomIn() {
	r := n.state.Range()
	next := timeutil.ScaleRange(r, 0.5)
	from, to := n.state.Clamp(next.From), n.state.Clamp(next.To)
	if !to.After(from) {
		n.logger.Debug("zoom in ignored on degenerate range", zap.Duration("duration", timeutil.RangeDuration(r)))
		return
	}
	n.commit(timeutil.TimeRange{From: from, To: to}, SourceZoom)
}

func (n *Navigator) commit(r timeutil.TimeRange, source ChangeSource) {
	from, to := n.state.Clamp(r.From), n.state.Clamp(r.To)
	n.state.SetRange(timeutil.TimeRange{From: from, To: to}, "")
	n.state.FireChange(from, to, ChangeMeta{Source: source})
}
