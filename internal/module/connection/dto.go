package connection

import (
	"time"

	"github.com/google/uuid"
)

// SubmitRequest is the body of POST /connections.
type SubmitRequest struct {
	ToID uuid.UUID `json:"to_id" binding:"required"`
}

// ListQuery filters request listings.
type ListQuery struct {
	Status Status `form:"status" binding:"omitempty,oneof=pending accepted rejected"`
}

// Connection is an accepted request seen from one participant.
type Connection struct {
	RequestID uuid.UUID `json:"request_id"`
	PeerID    uuid.UUID `json:"peer_id"`
	Since     time.Time `json:"since"`
}

// RequestsResponse wraps a request listing.
type RequestsResponse struct {
	Requests []*Request `json:"requests"`
}

// ConnectionsResponse wraps a connection listing.
type ConnectionsResponse struct {
	Connections []Connection `json:"connections"`
}

func toConnections(userID uuid.UUID, reqs []*Request) []Connection {
	out := make([]Connection, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, Connection{
			RequestID: req.ID,
			PeerID:    req.Peer(userID),
			Since:     resolvedAt(req),
		})
	}
	return out
}

func resolvedAt(req *Request) time.Time {
	if req.ResolvedAt == nil {
		return req.CreatedAt
	}
	return *req.ResolvedAt
}
