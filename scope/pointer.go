package scope

import (
	"sync"

	"github.com/google/uuid"
)

// PointerEvent is a press anywhere in the host UI, in host coordinates.
type PointerEvent struct {
	X, Y int
}

// PointerBus is a process-wide stream of pointer events. Pickers subscribe
// only while open so that presses outside them can close them.
type PointerBus struct {
	mu   sync.Mutex
	subs map[uuid.UUID]func(PointerEvent)
}

// DefaultPointerBus is the bus used when a RangeState is given none.
var DefaultPointerBus = NewPointerBus()

// NewPointerBus returns an empty bus.
func NewPointerBus() *PointerBus {
	return &PointerBus{subs: make(map[uuid.UUID]func(PointerEvent))}
}

// Subscription is a handle returned by Subscribe.
type Subscription struct {
	ID  uuid.UUID
	bus *PointerBus
}

// Unsubscribe removes the handler. Calling it more than once is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	delete(s.bus.subs, s.ID)
	s.bus.mu.Unlock()
}

// Subscribe registers fn for every subsequent Publish.
func (b *PointerBus) Subscribe(fn func(PointerEvent)) *Subscription {
	id := uuid.New()
	b.mu.Lock()
	b.subs[id] = fn
	b.mu.Unlock()
	return &Subscription{ID: id, bus: b}
}

// Publish delivers ev to every current subscriber. Handlers may unsubscribe
// themselves or others while being called.
func (b *PointerBus) Publish(ev PointerEvent) {
	b.mu.Lock()
	ids := make([]uuid.UUID, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	b.mu.Unlock()

	for _, id := range ids {
		b.mu.Lock()
		fn, ok := b.subs[id]
		b.mu.Unlock()
		if ok {
			fn(ev)
		}
	}
}

// Len returns the number of live subscriptions.
func (b *PointerBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
