package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buildmate/server/internal/shared/events"
	"github.com/buildmate/server/internal/shared/logger"
	"github.com/buildmate/server/internal/shared/pagination"
	"github.com/buildmate/server/internal/shared/tracing"
)

// Service provides profile business logic.
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new profile service.
func NewService(repo Repository, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// GetProfile returns the profile with the given id.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.Get(ctx, id)
}

// ListProfiles returns one page of profiles.
func (s *Service) ListProfiles(ctx context.Context, page *pagination.Pagination) ([]*Profile, int64, error) {
	return s.repo.List(ctx, page.Limit(), page.Offset())
}

// ListAll returns every profile in a stable order.
func (s *Service) ListAll(ctx context.Context) ([]*Profile, error) {
	return s.repo.ListAll(ctx)
}

// UpdateProfile creates or replaces the profile owned by userID.
// A profile can only be written by its subject; there is no path that takes
// another user's id.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (_ *Profile, err error) {
	ctx, span := tracing.Tracer("profile").Start(ctx, "profile.UpdateProfile")
	defer func() { tracing.End(span, err) }()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := s.now()
	p := &Profile{
		ID:                 userID,
		Name:               name,
		Bio:                strings.TrimSpace(req.Bio),
		AvatarURL:          req.AvatarURL,
		Skills:             NewTagSet(req.Skills...),
		Interests:          NewTagSet(req.Interests...),
		ProjectPreferences: strings.TrimSpace(req.ProjectPreferences),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	existing, err := s.repo.Get(ctx, userID)
	switch {
	case err == nil:
		p.CreatedAt = existing.CreatedAt
	case !errors.Is(err, ErrProfileNotFound):
		return nil, err
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated",
		logger.RequestField(ctx),
		zap.String("user_id", userID.String()),
		zap.Int("skills", len(p.Skills)),
		zap.Int("interests", len(p.Interests)),
	)
	s.publisher.Publish(events.NewProfileUpdatedEvent(userID))

	return p, nil
}
