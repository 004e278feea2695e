package board

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buildmate/server/internal/shared/events"
	"github.com/buildmate/server/internal/shared/logger"
	"github.com/buildmate/server/internal/shared/tracing"
)

// MembershipChecker answers whether a user belongs to a team.
type MembershipChecker interface {
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
}

// Service provides task board business logic.
type Service struct {
	repo      Repository
	members   MembershipChecker
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new board service.
func NewService(repo Repository, members MembershipChecker, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		members:   members,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// GetBoard returns the project's ordered columns with their tasks.
func (s *Service) GetBoard(ctx context.Context, projectID, actorID uuid.UUID) (*BoardView, error) {
	project, err := s.authorize(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return NewBoardView(project, tasks), nil
}

// CreateTask adds a task to a column.
func (s *Service) CreateTask(ctx context.Context, projectID, actorID uuid.UUID, req *CreateTaskRequest) (_ *Task, err error) {
	ctx, span := tracing.Tracer("board").Start(ctx, "board.CreateTask")
	defer func() { tracing.End(span, err) }()

	project, err := s.authorize(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}

	task, err := CreateTask(project, req.ColumnID, req.Title, req.Description, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.logChange(ctx, task, actorID, events.TaskCreated, "", task.Status)
	return task, nil
}

// MoveTask moves a task one column left or right.
func (s *Service) MoveTask(ctx context.Context, projectID, taskID, actorID uuid.UUID, dir Direction) (_ *Task, err error) {
	ctx, span := tracing.Tracer("board").Start(ctx, "board.MoveTask")
	defer func() { tracing.End(span, err) }()

	project, task, err := s.loadTask(ctx, projectID, taskID, actorID)
	if err != nil {
		return nil, err
	}

	moved, err := MoveTask(project, task, dir)
	if err != nil {
		return nil, err
	}
	return s.storeStatus(ctx, moved, task.Status, actorID, events.TaskMoved)
}

// SetColumn places a task directly in a column.
func (s *Service) SetColumn(ctx context.Context, projectID, taskID, actorID uuid.UUID, columnID string) (_ *Task, err error) {
	ctx, span := tracing.Tracer("board").Start(ctx, "board.SetColumn")
	defer func() { tracing.End(span, err) }()

	project, task, err := s.loadTask(ctx, projectID, taskID, actorID)
	if err != nil {
		return nil, err
	}

	placed, err := SetColumn(project, task, columnID)
	if err != nil {
		return nil, err
	}
	return s.storeStatus(ctx, placed, task.Status, actorID, events.TaskPlaced)
}

// AssignTask sets or clears a task's assignee. The assignee must be a team member.
func (s *Service) AssignTask(ctx context.Context, projectID, taskID, actorID uuid.UUID, assignee *uuid.UUID) (_ *Task, err error) {
	ctx, span := tracing.Tracer("board").Start(ctx, "board.AssignTask")
	defer func() { tracing.End(span, err) }()

	_, task, err := s.loadTask(ctx, projectID, taskID, actorID)
	if err != nil {
		return nil, err
	}

	if assignee != nil {
		var ok bool
		ok, err = s.members.IsMember(ctx, projectID, *assignee)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAssigneeNotMember
		}
	}

	task.AssignedTo = assignee
	task.UpdatedAt = s.now()
	if err = s.repo.UpdateAssignee(ctx, task); err != nil {
		return nil, err
	}

	to := ""
	if assignee != nil {
		to = assignee.String()
	}
	s.logChange(ctx, task, actorID, events.TaskAssigned, "", to)
	return task, nil
}

func (s *Service) authorize(ctx context.Context, projectID, actorID uuid.UUID) (*Project, error) {
	ok, err := s.members.IsMember(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotMember
	}
	return s.repo.GetProject(ctx, projectID)
}

func (s *Service) loadTask(ctx context.Context, projectID, taskID, actorID uuid.UUID) (*Project, *Task, error) {
	project, err := s.authorize(ctx, projectID, actorID)
	if err != nil {
		return nil, nil, err
	}
	task, err := s.repo.GetTask(ctx, projectID, taskID)
	if err != nil {
		return nil, nil, err
	}
	return project, task, nil
}

func (s *Service) storeStatus(ctx context.Context, task *Task, from string, actorID uuid.UUID, kind string) (*Task, error) {
	task.UpdatedAt = s.now()
	if err := s.repo.UpdateTaskStatus(ctx, task, from); err != nil {
		return nil, err
	}
	s.logChange(ctx, task, actorID, kind, from, task.Status)
	return task, nil
}

func (s *Service) logChange(ctx context.Context, task *Task, actorID uuid.UUID, kind, from, to string) {
	s.logger.Info("task changed",
		logger.RequestField(ctx),
		zap.String("task_id", task.ID.String()),
		zap.String("project_id", task.ProjectID.String()),
		zap.String("kind", kind),
		zap.String("from", from),
		zap.String("to", to),
	)
	s.publisher.Publish(events.NewTaskChangedEvent(task.ID, task.ProjectID, actorID, kind, from, to))
}
