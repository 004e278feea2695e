package connection

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a connection request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsValid checks if the status is known.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Request is a directed request from one user to another.
// Requests are never deleted; resolved ones are history.
type Request struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FromID     uuid.UUID  `json:"from_id" gorm:"type:uuid;not null;index"`
	ToID       uuid.UUID  `json:"to_id" gorm:"type:uuid;not null;index"`
	Status     Status     `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// TableName returns the database table name.
func (Request) TableName() string {
	return "connection_requests"
}

// IsPending returns true if the request awaits the recipient.
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}

// Peer returns the other participant from userID's side.
func (r *Request) Peer(userID uuid.UUID) uuid.UUID {
	if r.FromID == userID {
		return r.ToID
	}
	return r.FromID
}
