package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for profile data access.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Profile, error)
	List(ctx context.Context, limit, offset int) ([]*Profile, int64, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new profile repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Migrate creates the profiles table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Profile{})
}

// Get retrieves a profile by ID.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns one page of profiles and the total count.
func (r *repository) List(ctx context.Context, limit, offset int) ([]*Profile, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Profile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []*Profile
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// ListAll returns every profile in creation order.
// The order is the tie-break order used by match ranking.
func (r *repository) ListAll(ctx context.Context) ([]*Profile, error) {
	var profiles []*Profile
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert creates the profile or replaces its editable fields.
func (r *repository) Upsert(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "bio", "avatar_url", "skills", "interests", "project_preferences", "updated_at",
			}),
		}).
		Create(p).Error
}
