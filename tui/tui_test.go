package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronoscope/scope"
)

func TestMailboxDeliversInOrder(t *testing.T) {
	box := newMailbox()
	done := make(chan struct{})
	defer close(done)

	got := make(chan tea.Msg)
	go box.forward(done, func(msg tea.Msg) { got <- msg })

	// Nothing is received yet, so posting must not wait on the consumer.
	for i := 0; i < 50; i++ {
		box.post(changeMsg{Meta: scope.ChangeMeta{QuickLabel: string(rune('A' + i%26))}})
	}
	box.post(liveToggledMsg{Live: true})

	for i := 0; i < 50; i++ {
		select {
		case msg := <-got:
			change, ok := msg.(changeMsg)
			require.True(t, ok, "message %d", i)
			assert.Equal(t, string(rune('A'+i%26)), change.Meta.QuickLabel)
		case <-time.After(time.Second):
			t.Fatalf("message %d not delivered", i)
		}
	}
	select {
	case msg := <-got:
		assert.Equal(t, liveToggledMsg{Live: true}, msg)
	case <-time.After(time.Second):
		t.Fatal("toggle not delivered")
	}
}

func TestMailboxStopsOnDone(t *testing.T) {
	box := newMailbox()
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		box.forward(done, func(tea.Msg) {})
		close(stopped)
	}()

	close(done)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("forward did not return")
	}
	box.post(liveToggledMsg{})
}
