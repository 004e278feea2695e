package team

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/buildmate/server/internal/module/board"
	"github.com/buildmate/server/internal/shared/events"
	"github.com/buildmate/server/internal/shared/logger"
	"github.com/buildmate/server/internal/shared/pagination"
	"github.com/buildmate/server/internal/shared/tracing"
)

// Service provides team business logic.
type Service struct {
	repo      Repository
	projects  board.Repository
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new team service. projects stores the board that
// every team gets on creation.
func NewService(repo Repository, projects board.Repository, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		projects:  projects,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateTeam creates a team, its owner membership and its board together.
func (s *Service) CreateTeam(ctx context.Context, ownerID uuid.UUID, req *CreateTeamRequest) (_ *Team, err error) {
	ctx, span := tracing.Tracer("team").Start(ctx, "team.CreateTeam")
	defer func() { tracing.End(span, err) }()

	team, err := NewTeam(req.Name, req.ProjectTitle, req.ProjectSummary, req.TechStack)
	if err != nil {
		return nil, err
	}

	now := s.now()
	team.ID = uuid.New()
	team.CreatedBy = ownerID
	team.CreatedAt = now

	project, err := board.NewProject(team.ID, nil, now)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}

	owner := &Member{
		TeamID:   team.ID,
		UserID:   ownerID,
		Role:     RoleOwner,
		JoinedAt: now,
	}
	if err := txRepo.AddMember(ctx, owner); err != nil {
		return nil, err
	}

	if err := s.projects.WithTx(tx).CreateProject(ctx, project); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("team.id", team.ID.String()))
	s.logger.Info("team created",
		logger.RequestField(ctx),
		zap.String("team_id", team.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("name", team.Name),
	)
	s.publisher.Publish(events.NewTeamCreatedEvent(team.ID, ownerID, team.Name))

	return team, nil
}

// GetTeam returns a team and its members. Only members may view it.
func (s *Service) GetTeam(ctx context.Context, teamID, requesterID uuid.UUID) (*TeamDetail, error) {
	me, err := s.repo.GetMember(ctx, teamID, requesterID)
	if err != nil {
		return nil, err
	}

	team, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &TeamDetail{Team: team, Members: members, MyRole: me.Role}, nil
}

// ListMyTeams lists the teams userID belongs to.
func (s *Service) ListMyTeams(ctx context.Context, userID uuid.UUID, page *pagination.Pagination) ([]*Team, int64, error) {
	return s.repo.ListTeamsByUser(ctx, userID, page.Limit(), page.Offset())
}

// AddMember adds userID to the team as a member. Only the owner may add members.
func (s *Service) AddMember(ctx context.Context, teamID, actorID, userID uuid.UUID) (_ *Member, err error) {
	ctx, span := tracing.Tracer("team").Start(ctx, "team.AddMember")
	defer func() { tracing.End(span, err) }()

	actor, err := s.repo.GetMember(ctx, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != RoleOwner {
		return nil, ErrNotOwner
	}

	member := &Member{
		TeamID:   teamID,
		UserID:   userID,
		Role:     RoleMember,
		JoinedAt: s.now(),
	}
	if err = s.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("team member added",
		logger.RequestField(ctx),
		zap.String("team_id", teamID.String()),
		zap.String("user_id", userID.String()),
		zap.String("added_by", actorID.String()),
	)
	return member, nil
}

// IsMember reports whether userID belongs to teamID.
func (s *Service) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	return s.repo.IsMember(ctx, teamID, userID)
}

var _ board.MembershipChecker = (*Service)(nil)
