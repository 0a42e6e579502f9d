package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"chronoscope/config"
	"chronoscope/scope"
	"chronoscope/theme"
	"chronoscope/timeutil"
)

// mailbox queues picker notifications for the program in the order they
// were raised. Posting never blocks, so callbacks fired from inside Update
// cannot stall the event loop.
type mailbox struct {
	mu      sync.Mutex
	pending []tea.Msg
	wake    chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{wake: make(chan struct{}, 1)}
}

func (b *mailbox) post(msg tea.Msg) {
	b.mu.Lock()
	b.pending = append(b.pending, msg)
	b.mu.Unlock()
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *mailbox) take() []tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}

// forward hands queued messages to send, one at a time, until done closes.
func (b *mailbox) forward(done <-chan struct{}, send func(tea.Msg)) {
	for {
		select {
		case <-done:
			return
		case <-b.wake:
			for _, msg := range b.take() {
				send(msg)
			}
		}
	}
}

// LaunchTUI runs the interactive picker until the user quits.
func LaunchTUI(cfg *config.Config, logger *zap.Logger) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	th, ok := theme.Lookup(cfg.Theme)
	if !ok {
		th = theme.Default()
	}

	opts, err := cfg.ScopeOptions(nil)
	if err != nil {
		return errors.Wrap(err, "build picker options")
	}

	box := newMailbox()

	bus := scope.NewPointerBus()
	hits := &hitbox{}
	opts.Pointer = bus
	opts.Contains = hits.Contains
	opts.Logger = logger
	opts.OnChange = func(r timeutil.TimeRange, meta scope.ChangeMeta) {
		logger.Info("range changed",
			zap.Time("from", r.From),
			zap.Time("to", r.To),
			zap.String("source", string(meta.Source)),
			zap.String("quick_label", meta.QuickLabel),
			zap.String("relative_expression", meta.RelativeExpression),
		)
		box.post(changeMsg{Range: r, Meta: meta})
	}
	opts.OnLiveToggle = func(live bool) {
		logger.Info("live toggled", zap.Bool("live", live))
		box.post(liveToggledMsg{Live: live})
	}

	picker := scope.New(opts)
	defer picker.Close()

	m := newModel(picker, bus, hits, th, cfg.ShowSeconds, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	done := make(chan struct{})
	defer close(done)
	go box.forward(done, p.Send)

	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run tui")
	}
	return nil
}
