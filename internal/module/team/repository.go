package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for team data access.
type Repository interface {
	// Team operations
	CreateTeam(ctx context.Context, team *Team) error
	GetTeam(ctx context.Context, id uuid.UUID) (*Team, error)
	ListTeamsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Team, int64, error)

	// Member operations
	AddMember(ctx context.Context, member *Member) error
	GetMember(ctx context.Context, teamID, userID uuid.UUID) (*Member, error)
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]*Member, error)

	// Transaction support
	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new team repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Migrate creates the teams and team_members tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Team{}, &Member{})
}

// WithTx returns a new repository with the given transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// BeginTx starts a new transaction.
func (r *repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// CreateTeam creates a new team.
func (r *repository) CreateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// GetTeam retrieves a team by ID.
func (r *repository) GetTeam(ctx context.Context, id uuid.UUID) (*Team, error) {
	var team Team
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// ListTeamsByUser lists the teams a user belongs to, newest first.
func (r *repository) ListTeamsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Team, int64, error) {
	var total int64
	err := r.memberTeams(ctx, userID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var teams []*Team
	err = r.memberTeams(ctx, userID).
		Order("teams.created_at DESC, teams.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *repository) memberTeams(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Team{}).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID)
}

// AddMember adds a member to a team.
func (r *repository) AddMember(ctx context.Context, member *Member) error {
	if !member.Role.IsValid() {
		return ErrInvalidRole
	}
	err := r.db.WithContext(ctx).Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyMember
	}
	return err
}

// GetMember retrieves one membership.
func (r *repository) GetMember(ctx context.Context, teamID, userID uuid.UUID) (*Member, error) {
	var member Member
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return &member, nil
}

// IsMember reports whether userID belongs to teamID.
func (r *repository) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Member{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListMembers lists a team's members in join order.
func (r *repository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]*Member, error) {
	var members []*Member
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("joined_at ASC, user_id ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
