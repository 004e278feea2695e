package events

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// AnyEvent subscribes a handler to every event type.
const AnyEvent = "*"

type subscription struct {
	id      uint64
	handler Handler
	types   map[string]struct{}
}

func (s *subscription) wants(eventType string) bool {
	if _, ok := s.types[AnyEvent]; ok {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// Bus delivers events synchronously, in subscription order, to every
// handler whose declared types include the event's type. A handler that
// fails or panics is logged and skipped.
type Bus struct {
	mu     sync.Mutex
	subs   []*subscription
	nextID uint64
	logger *zap.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{logger: logger}
}

// Register subscribes handler and returns a func that removes it again.
// A handler declaring no types never receives anything.
func (b *Bus) Register(handler Handler) (unregister func()) {
	types := make(map[string]struct{})
	for _, t := range handler.Handles() {
		types[t] = struct{}{}
	}

	b.mu.Lock()
	b.nextID++
	sub := &subscription{id: b.nextID, handler: handler, types: types}
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	b.logger.Debug("event handler subscribed",
		zap.Uint64("subscription", sub.id),
		zap.Strings("event_types", handler.Handles()),
	)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sub.id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Subscribers reports how many handlers would receive an event of eventType.
func (b *Bus) Subscribers(eventType string) int {
	return len(b.matching(eventType))
}

// matching snapshots the subscribers for eventType so handlers may
// register or unregister while an event is in flight.
func (b *Bus) matching(eventType string) []*subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*subscription
	for _, s := range b.subs {
		if s.wants(eventType) {
			out = append(out, s)
		}
	}
	return out
}

// Publish implements Publisher.
func (b *Bus) Publish(event Event) {
	if event == nil {
		return
	}
	subs := b.matching(event.EventType())
	if len(subs) == 0 {
		return
	}

	log := b.logger.With(
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
	)
	log.Debug("dispatching event",
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Int("subscribers", len(subs)),
	)

	for _, s := range subs {
		if err := deliver(s.handler, event); err != nil {
			log.Error("event handler failed",
				zap.Uint64("subscription", s.id),
				zap.Error(err),
			)
		}
	}
}

func deliver(h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(event)
}

var _ Publisher = (*Bus)(nil)
