package board

import "github.com/google/uuid"

// CreateTaskRequest is the body of POST /projects/:id/tasks.
type CreateTaskRequest struct {
	ColumnID    string `json:"column_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// MoveTaskRequest is the body of POST .../move.
type MoveTaskRequest struct {
	Direction Direction `json:"direction" binding:"required"`
}

// SetColumnRequest is the body of PUT .../column.
type SetColumnRequest struct {
	ColumnID string `json:"column_id" binding:"required"`
}

// AssignTaskRequest is the body of PUT .../assignee. A null user clears it.
type AssignTaskRequest struct {
	UserID *uuid.UUID `json:"user_id"`
}

// ColumnView is a column with the tasks in it.
type ColumnView struct {
	Column
	Tasks []*Task `json:"tasks"`
}

// BoardView is a project's columns in order with their tasks.
type BoardView struct {
	ProjectID uuid.UUID    `json:"project_id"`
	Columns   []ColumnView `json:"columns"`
}

// NewBoardView groups tasks under the project's ordered columns. Tasks whose
// column is not on the board are left out.
func NewBoardView(project *Project, tasks []*Task) *BoardView {
	ordered := OrderedColumns(project.Columns)
	view := &BoardView{ProjectID: project.ID, Columns: make([]ColumnView, len(ordered))}

	index := make(map[string]int, len(ordered))
	for i, c := range ordered {
		view.Columns[i] = ColumnView{Column: c, Tasks: []*Task{}}
		index[c.ID] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Status]; ok {
			view.Columns[i].Tasks = append(view.Columns[i].Tasks, t)
		}
	}
	return view
}
