package events

import "github.com/google/uuid"

// Event type names.
const (
	ConnectionRequestedType = "ConnectionRequested"
	ConnectionResolvedType  = "ConnectionResolved"
	TeamCreatedType         = "TeamCreated"
	TaskChangedType         = "TaskChanged"
	ProfileUpdatedType      = "ProfileUpdated"
)

// ProfileUpdatedEvent is emitted after a profile is created or edited.
type ProfileUpdatedEvent struct {
	BaseEvent
}

// NewProfileUpdatedEvent creates a ProfileUpdatedEvent.
func NewProfileUpdatedEvent(profileID uuid.UUID) *ProfileUpdatedEvent {
	return &ProfileUpdatedEvent{BaseEvent: NewBaseEvent(ProfileUpdatedType, profileID)}
}

// ConnectionRequestedEvent is emitted when a pending request is created.
type ConnectionRequestedEvent struct {
	BaseEvent
	FromID uuid.UUID `json:"from_id"`
	ToID   uuid.UUID `json:"to_id"`
}

// NewConnectionRequestedEvent creates a ConnectionRequestedEvent.
func NewConnectionRequestedEvent(requestID, fromID, toID uuid.UUID) *ConnectionRequestedEvent {
	return &ConnectionRequestedEvent{
		BaseEvent: NewBaseEvent(ConnectionRequestedType, requestID),
		FromID:    fromID,
		ToID:      toID,
	}
}

// ConnectionResolvedEvent is emitted when the recipient accepts or rejects.
type ConnectionResolvedEvent struct {
	BaseEvent
	FromID uuid.UUID `json:"from_id"`
	ToID   uuid.UUID `json:"to_id"`
	Status string    `json:"status"`
}

// NewConnectionResolvedEvent creates a ConnectionResolvedEvent.
func NewConnectionResolvedEvent(requestID, fromID, toID uuid.UUID, status string) *ConnectionResolvedEvent {
	return &ConnectionResolvedEvent{
		BaseEvent: NewBaseEvent(ConnectionResolvedType, requestID),
		FromID:    fromID,
		ToID:      toID,
		Status:    status,
	}
}

// TeamCreatedEvent is emitted once a team and its project are committed.
type TeamCreatedEvent struct {
	BaseEvent
	CreatedBy uuid.UUID `json:"created_by"`
	Name      string    `json:"name"`
}

// NewTeamCreatedEvent creates a TeamCreatedEvent.
func NewTeamCreatedEvent(teamID, createdBy uuid.UUID, name string) *TeamCreatedEvent {
	return &TeamCreatedEvent{
		BaseEvent: NewBaseEvent(TeamCreatedType, teamID),
		CreatedBy: createdBy,
		Name:      name,
	}
}

// Task change kinds.
const (
	TaskCreated  = "created"
	TaskMoved    = "moved"
	TaskPlaced   = "placed"
	TaskAssigned = "assigned"
)

// TaskChangedEvent is emitted for every persisted task transition.
type TaskChangedEvent struct {
	BaseEvent
	ProjectID uuid.UUID `json:"project_id"`
	Kind      string    `json:"kind"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	ActorID   uuid.UUID `json:"actor_id"`
}

// NewTaskChangedEvent creates a TaskChangedEvent.
func NewTaskChangedEvent(taskID, projectID, actorID uuid.UUID, kind, from, to string) *TaskChangedEvent {
	return &TaskChangedEvent{
		BaseEvent: NewBaseEvent(TaskChangedType, taskID),
		ProjectID: projectID,
		Kind:      kind,
		From:      from,
		To:        to,
		ActorID:   actorID,
	}
}
