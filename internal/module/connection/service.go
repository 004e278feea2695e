package connection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/buildmate/server/internal/module/profile"
	"github.com/buildmate/server/internal/shared/events"
	"github.com/buildmate/server/internal/shared/logger"
	"github.com/buildmate/server/internal/shared/tracing"
)

// Directory resolves the recipient of a request.
type Directory interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error)
}

// Service provides connection request business logic.
type Service struct {
	repo      Repository
	directory Directory
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new connection service.
func NewService(repo Repository, directory Directory, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		directory: directory,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit creates a pending request from fromID to toID.
func (s *Service) Submit(ctx context.Context, fromID, toID uuid.UUID) (_ *Request, err error) {
	ctx, span := tracing.Tracer("connection").Start(ctx, "connection.Submit")
	defer func() { tracing.End(span, err) }()

	if fromID == toID {
		return nil, ErrSelfRequest
	}
	if _, err := s.directory.GetProfile(ctx, toID); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	pending, err := txRepo.FindPending(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}

	req, err := Submit(fromID, toID, pending, s.now())
	if err != nil {
		return nil, err
	}

	// The partial unique index rejects a concurrent insert for the same pair.
	if err := txRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("connection.request_id", req.ID.String()))
	s.logger.Info("connection requested",
		logger.RequestField(ctx),
		zap.String("request_id", req.ID.String()),
		zap.String("from_id", fromID.String()),
		zap.String("to_id", toID.String()),
	)
	s.publisher.Publish(events.NewConnectionRequestedEvent(req.ID, fromID, toID))

	return req, nil
}

// Accept accepts a pending request addressed to actorID.
func (s *Service) Accept(ctx context.Context, requestID, actorID uuid.UUID) (*Request, error) {
	return s.Resolve(ctx, requestID, StatusAccepted, actorID)
}

// Reject rejects a pending request addressed to actorID.
func (s *Service) Reject(ctx context.Context, requestID, actorID uuid.UUID) (*Request, error) {
	return s.Resolve(ctx, requestID, StatusRejected, actorID)
}

// Resolve applies decision to a request on behalf of actorID.
// Acceptance does not change any team membership.
func (s *Service) Resolve(ctx context.Context, requestID uuid.UUID, decision Status, actorID uuid.UUID) (_ *Request, err error) {
	ctx, span := tracing.Tracer("connection").Start(ctx, "connection.Resolve")
	defer func() { tracing.End(span, err) }()

	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := req.Resolve(decision, actorID, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.MarkResolved(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("connection resolved",
		logger.RequestField(ctx),
		zap.String("request_id", req.ID.String()),
		zap.String("status", string(req.Status)),
		zap.String("actor_id", actorID.String()),
	)
	s.publisher.Publish(events.NewConnectionResolvedEvent(req.ID, req.FromID, req.ToID, string(req.Status)))

	return req, nil
}

// Incoming lists requests addressed to userID. A nil status lists pending ones.
func (s *Service) Incoming(ctx context.Context, userID uuid.UUID, status *Status) ([]*Request, error) {
	if status == nil {
		pending := StatusPending
		status = &pending
	}
	return s.repo.ListIncoming(ctx, userID, status)
}

// Outgoing lists requests sent by userID, optionally filtered by status.
func (s *Service) Outgoing(ctx context.Context, userID uuid.UUID, status *Status) ([]*Request, error) {
	return s.repo.ListOutgoing(ctx, userID, status)
}

// Connections lists userID's accepted connections in either direction.
func (s *Service) Connections(ctx context.Context, userID uuid.UUID) ([]Connection, error) {
	reqs, err := s.repo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toConnections(userID, reqs), nil
}
