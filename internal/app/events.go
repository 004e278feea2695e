package app

import (
	"github.com/buildmate/server/internal/shared/events"
	"github.com/buildmate/server/internal/shared/metrics"
)

// newMetricsHandler counts workflow events.
func newMetricsHandler(m *metrics.Metrics) events.Handler {
	return events.NewHandlerFunc(
		[]string{
			events.ConnectionRequestedType,
			events.ConnectionResolvedType,
			events.TeamCreatedType,
			events.TaskChangedType,
		},
		func(e events.Event) error {
			switch ev := e.(type) {
			case *events.ConnectionRequestedEvent:
				m.RecordConnection("pending")
			case *events.ConnectionResolvedEvent:
				m.RecordConnection(ev.Status)
			case *events.TeamCreatedEvent:
				m.RecordTeamCreated()
			case *events.TaskChangedEvent:
				m.RecordTaskTransition(ev.Kind)
			}
			return nil
		},
	)
}
