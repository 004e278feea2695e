package board

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for board data access.
type Repository interface {
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)

	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, projectID, taskID uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, projectID uuid.UUID) ([]*Task, error)
	// UpdateTaskStatus stores task.Status if the row still has status from.
	UpdateTaskStatus(ctx context.Context, task *Task, from string) error
	UpdateAssignee(ctx context.Context, task *Task) error

	// Transaction support
	WithTx(tx *gorm.DB) Repository
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new board repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Migrate creates the projects and tasks tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Project{}, &Task{})
}

// WithTx returns a new repository with the given transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// CreateProject creates a new project.
func (r *repository) CreateProject(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetProject retrieves a project by ID.
func (r *repository) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	var project Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// CreateTask creates a new task.
func (r *repository) CreateTask(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetTask retrieves a task of a project.
func (r *repository) GetTask(ctx context.Context, projectID, taskID uuid.UUID) (*Task, error) {
	var task Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", taskID, projectID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListTasks lists a project's tasks, oldest first.
func (r *repository) ListTasks(ctx context.Context, projectID uuid.UUID) ([]*Task, error) {
	var tasks []*Task
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus stores the task's column, guarded by its previous column.
func (r *repository) UpdateTaskStatus(ctx context.Context, task *Task, from string) error {
	result := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ? AND status = ?", task.ID, from).
		Updates(map[string]interface{}{
			"status":     task.Status,
			"updated_at": task.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskChanged
	}
	return nil
}

// UpdateAssignee stores the task's assignee.
func (r *repository) UpdateAssignee(ctx context.Context, task *Task) error {
	result := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"assigned_to": task.AssignedTo,
			"updated_at":  task.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
