package events

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBus_Publish(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got []string
	bus.Register(NewHandlerFunc([]string{ConnectionRequestedType}, func(e Event) error {
		got = append(got, "first:"+e.EventType())
		return errors.New("boom")
	}))
	bus.Register(NewHandlerFunc([]string{ConnectionRequestedType, TeamCreatedType}, func(e Event) error {
		got = append(got, "second:"+e.EventType())
		return nil
	}))

	bus.Publish(NewConnectionRequestedEvent(uuid.New(), uuid.New(), uuid.New()))
	bus.Publish(NewTeamCreatedEvent(uuid.New(), uuid.New(), "The A-Team"))
	bus.Publish(NewTaskChangedEvent(uuid.New(), uuid.New(), uuid.New(), TaskMoved, "todo", "done"))

	assert.Equal(t, []string{
		"first:ConnectionRequested",
		"second:ConnectionRequested",
		"second:TeamCreated",
	}, got)
}

func TestBus_Subscriptions(t *testing.T) {
	tests := []struct {
		name      string
		types     []string
		eventType string
		want      int
	}{
		{"exact type", []string{TeamCreatedType}, TeamCreatedType, 1},
		{"other type", []string{TeamCreatedType}, TaskChangedType, 0},
		{"wildcard", []string{AnyEvent}, ProfileUpdatedType, 1},
		{"duplicate types count once", []string{TeamCreatedType, TeamCreatedType}, TeamCreatedType, 1},
		{"no types", nil, TeamCreatedType, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewBus(nil)
			calls := 0
			bus.Register(NewHandlerFunc(tt.types, func(Event) error {
				calls++
				return nil
			}))

			assert.Equal(t, tt.want, bus.Subscribers(tt.eventType))
			bus.Publish(&BaseEvent{ID: uuid.New(), Type: tt.eventType})
			assert.Equal(t, tt.want, calls)
		})
	}
}

func TestBus_Unregister(t *testing.T) {
	bus := NewBus(nil)
	var got []string
	unregister := bus.Register(NewHandlerFunc([]string{TeamCreatedType}, func(Event) error {
		got = append(got, "a")
		return nil
	}))
	bus.Register(NewHandlerFunc([]string{TeamCreatedType}, func(Event) error {
		got = append(got, "b")
		return nil
	}))

	bus.Publish(NewTeamCreatedEvent(uuid.New(), uuid.New(), "x"))
	unregister()
	unregister()
	bus.Publish(NewTeamCreatedEvent(uuid.New(), uuid.New(), "y"))

	assert.Equal(t, []string{"a", "b", "b"}, got)
	assert.Equal(t, 1, bus.Subscribers(TeamCreatedType))
}

func TestBus_PanickingHandlerIsIsolated(t *testing.T) {
	bus := NewBus(zap.NewNop())
	reached := false
	bus.Register(NewHandlerFunc([]string{AnyEvent}, func(Event) error {
		panic("handler bug")
	}))
	bus.Register(NewHandlerFunc([]string{TeamCreatedType}, func(Event) error {
		reached = true
		return nil
	}))

	assert.NotPanics(t, func() {
		bus.Publish(NewTeamCreatedEvent(uuid.New(), uuid.New(), "x"))
		bus.Publish(nil)
	})
	assert.True(t, reached)
}

func TestNewBaseEvent(t *testing.T) {
	aggregate := uuid.New()
	e := NewConnectionResolvedEvent(aggregate, uuid.New(), uuid.New(), "accepted")

	assert.NotEqual(t, uuid.Nil, e.EventID())
	assert.Equal(t, aggregate, e.AggregateID())
	assert.Equal(t, ConnectionResolvedType, e.EventType())
	assert.False(t, e.OccurredAt().IsZero())
	assert.Equal(t, "accepted", e.Status)
}
