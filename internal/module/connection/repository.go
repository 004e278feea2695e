package connection

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for connection request data access.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	Get(ctx context.Context, id uuid.UUID) (*Request, error)
	FindPending(ctx context.Context, fromID, toID uuid.UUID) (*Request, error)
	MarkResolved(ctx context.Context, req *Request) error
	ListIncoming(ctx context.Context, userID uuid.UUID, status *Status) ([]*Request, error)
	ListOutgoing(ctx context.Context, userID uuid.UUID, status *Status) ([]*Request, error)
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]*Request, error)

	// Transaction support
	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new connection repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Migrate creates the connection_requests table and the index that allows
// at most one pending request per ordered pair.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Request{}); err != nil {
		return err
	}
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_connection_requests_pending_pair
		ON connection_requests (from_id, to_id) WHERE status = 'pending'`).Error
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

// Create inserts a new request.
func (r *repository) Create(ctx context.Context, req *Request) error {
	err := r.db.WithContext(ctx).Create(req).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyPending
	}
	return err
}

// Get retrieves a request by ID.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindPending returns the pending request for the ordered pair, or nil.
func (r *repository) FindPending(ctx context.Context, fromID, toID uuid.UUID) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).
		Where("from_id = ? AND to_id = ? AND status = ?", fromID, toID, StatusPending).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// MarkResolved writes req's terminal status if the stored row is still
// pending. A concurrent resolution wins and yields ErrAlreadyResolved.
func (r *repository) MarkResolved(ctx context.Context, req *Request) error {
	result := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("id = ? AND status = ?", req.ID, StatusPending).
		Updates(map[string]interface{}{
			"status":      req.Status,
			"resolved_at": req.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyResolved
	}
	return nil
}

// ListIncoming lists requests addressed to userID, newest first.
func (r *repository) ListIncoming(ctx context.Context, userID uuid.UUID, status *Status) ([]*Request, error) {
	return r.list(ctx, "to_id = ?", userID, status)
}

// ListOutgoing lists requests sent by userID, newest first.
func (r *repository) ListOutgoing(ctx context.Context, userID uuid.UUID, status *Status) ([]*Request, error) {
	return r.list(ctx, "from_id = ?", userID, status)
}

// ListAccepted lists accepted requests in either direction.
func (r *repository) ListAccepted(ctx context.Context, userID uuid.UUID) ([]*Request, error) {
	var reqs []*Request
	err := r.db.WithContext(ctx).
		Where("(from_id = ? OR to_id = ?) AND status = ?", userID, userID, StatusAccepted).
		Order("resolved_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *repository) list(ctx context.Context, cond string, userID uuid.UUID, status *Status) ([]*Request, error) {
	query := r.db.WithContext(ctx).Where(cond, userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var reqs []*Request
	if err := query.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

