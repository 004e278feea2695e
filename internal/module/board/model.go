package board

import (
	"time"

	"github.com/google/uuid"
)

// Default column ids of a new project.
const (
	ColumnTodo       = "todo"
	ColumnInProgress = "inprogress"
	ColumnDone       = "done"
)

// Direction is a one-step move across the board.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Column is one stage of a project's pipeline.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// DefaultColumns returns the stages every new project starts with.
func DefaultColumns() []Column {
	return []Column{
		{ID: ColumnTodo, Title: "To Do", Order: 1},
		{ID: ColumnInProgress, Title: "In Progress", Order: 2},
		{ID: ColumnDone, Title: "Done", Order: 3},
	}
}

// Project is a team's task board. Its id is the team id.
type Project struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Columns   []Column  `json:"columns" gorm:"type:text;serializer:json"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Project) TableName() string {
	return "projects"
}

// NewProject builds a project with columns, or the defaults when none are given.
func NewProject(teamID uuid.UUID, columns []Column, now time.Time) (*Project, error) {
	if len(columns) == 0 {
		columns = DefaultColumns()
	}
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}
	return &Project{ID: teamID, Columns: columns, CreatedAt: now}, nil
}

// Task is a work item; Status is the id of the column it sits in.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status" gorm:"not null"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the database table name.
func (Task) TableName() string {
	return "tasks"
}
