package connection

import (
	"time"

	"github.com/google/uuid"
)

// Submit builds a new pending request from fromID to toID.
//
// pending is the request already pending for the same ordered pair, or nil.
// A pending request in the opposite direction is unrelated and must not be
// passed here. Submit does not persist anything; the caller must run the
// lookup of pending and the insert of the result atomically.
func Submit(fromID, toID uuid.UUID, pending *Request, now time.Time) (*Request, error) {
	if fromID == uuid.Nil || toID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	if fromID == toID {
		return nil, ErrSelfRequest
	}
	if pending != nil && pending.IsPending() && pending.FromID == fromID && pending.ToID == toID {
		return nil, ErrAlreadyPending
	}

	return &Request{
		ID:        uuid.New(),
		FromID:    fromID,
		ToID:      toID,
		Status:    StatusPending,
		CreatedAt: now,
	}, nil
}

// Resolve moves a pending request to decision on behalf of actorID.
// Only the recipient may resolve, and only once.
func (r *Request) Resolve(decision Status, actorID uuid.UUID, now time.Time) error {
	if !decision.IsTerminal() {
		return ErrInvalidDecision
	}
	if actorID != r.ToID {
		return ErrUnauthorized
	}
	if !r.IsPending() {
		return ErrAlreadyResolved
	}

	r.Status = decision
	r.ResolvedAt = &now
	return nil
}
