package matching

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/buildmate/server/internal/module/profile"
	"github.com/buildmate/server/internal/shared/events"
	"github.com/buildmate/server/internal/shared/logger"
	"github.com/buildmate/server/internal/shared/metrics"
	"github.com/buildmate/server/internal/shared/tracing"
)

const cacheName = "matches"

// ProfileStore is the read side of the profile module.
type ProfileStore interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error)
	ListAll(ctx context.Context) ([]*profile.Profile, error)
}

// ListOptions narrows a ranked list. Zero values mean no narrowing.
type ListOptions struct {
	Limit int
	Query string
}

// Service ranks candidates for a viewer.
type Service struct {
	profiles ProfileStore
	cache    Cache
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a new matching service. A nil m records into a
// private registry that is never exported.
func NewService(profiles ProfileStore, cache Cache, m *metrics.Metrics, logger *zap.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	if m == nil {
		m = metrics.New("matching", prometheus.NewRegistry())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		profiles: profiles,
		cache:    cache,
		metrics:  m,
		logger:   logger,
	}
}

// Matches returns viewer's ranked candidates.
func (s *Service) Matches(ctx context.Context, viewerID uuid.UUID, opts ListOptions) (_ []Match, err error) {
	ctx, span := tracing.Tracer("matching").Start(ctx, "matching.Matches")
	defer func() { tracing.End(span, err) }()

	ranked, err := s.ranked(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("matches.ranked", len(ranked)))

	ranked = Filter(ranked, opts.Query)
	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	return ranked, nil
}

// ScorePair returns the score of one candidate for viewer.
func (s *Service) ScorePair(ctx context.Context, viewerID, candidateID uuid.UUID) (*Match, error) {
	if viewerID == candidateID {
		return nil, ErrSelfMatch
	}

	viewer, err := s.profiles.GetProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.profiles.GetProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	return &Match{Profile: candidate, Score: Score(viewer, candidate)}, nil
}

func (s *Service) ranked(ctx context.Context, viewerID uuid.UUID) ([]Match, error) {
	cached, ok, err := s.cache.Get(ctx, viewerID)
	if err != nil {
		s.logger.Warn("match cache read failed", logger.RequestField(ctx), zap.Error(err))
	}
	if ok {
		s.metrics.RecordCacheHit(cacheName)
		return cached, nil
	}
	s.metrics.RecordCacheMiss(cacheName)

	viewer, err := s.profiles.GetProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ranked := Rank(viewer, candidates)
	s.metrics.RecordRank(len(candidates), time.Since(start))

	if err := s.cache.Set(ctx, viewerID, ranked); err != nil {
		s.logger.Warn("match cache write failed", logger.RequestField(ctx), zap.Error(err))
	}
	return ranked, nil
}

// InvalidationHandler drops cached rankings whenever a profile changes.
func (s *Service) InvalidationHandler() events.Handler {
	return events.NewHandlerFunc([]string{events.ProfileUpdatedType}, func(e events.Event) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.cache.Invalidate(ctx)
	})
}
