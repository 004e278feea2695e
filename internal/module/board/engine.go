package board

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderedColumns returns the columns sorted by Order, ascending.
// The input slice is left untouched.
func OrderedColumns(columns []Column) []Column {
	ordered := make([]Column, len(columns))
	copy(ordered, columns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}

// ValidateColumns checks that ids and order values are unique and non-empty.
func ValidateColumns(columns []Column) error {
	if len(columns) == 0 {
		return ErrInvalidColumns
	}
	ids := make(map[string]struct{}, len(columns))
	orders := make(map[int]struct{}, len(columns))
	for _, c := range columns {
		if strings.TrimSpace(c.ID) == "" {
			return ErrInvalidColumns
		}
		if _, dup := ids[c.ID]; dup {
			return ErrInvalidColumns
		}
		if _, dup := orders[c.Order]; dup {
			return ErrInvalidColumns
		}
		ids[c.ID] = struct{}{}
		orders[c.Order] = struct{}{}
	}
	return nil
}

// columnIndex returns the position of columnID in ordered, or -1.
func columnIndex(ordered []Column, columnID string) int {
	for i, c := range ordered {
		if c.ID == columnID {
			return i
		}
	}
	return -1
}

// CreateTask builds a task in columnID of project.
func CreateTask(project *Project, columnID, title, description string, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if columnIndex(project.Columns, columnID) < 0 {
		return nil, ErrInvalidColumn
	}

	return &Task{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      columnID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MoveTask returns a copy of task moved one column left or right.
func MoveTask(project *Project, task *Task, dir Direction) (*Task, error) {
	var step int
	switch dir {
	case DirectionLeft:
		step = -1
	case DirectionRight:
		step = 1
	default:
		return nil, ErrInvalidDirection
	}

	ordered := OrderedColumns(project.Columns)
	current := columnIndex(ordered, task.Status)
	if current < 0 {
		return nil, ErrNoSuchColumn
	}

	target := current + step
	if target < 0 || target >= len(ordered) {
		return nil, ErrAtBoundary
	}

	moved := *task
	moved.Status = ordered[target].ID
	return &moved, nil
}

// SetColumn returns a copy of task placed directly in columnID.
func SetColumn(project *Project, task *Task, columnID string) (*Task, error) {
	if columnIndex(project.Columns, columnID) < 0 {
		return nil, ErrInvalidColumn
	}

	placed := *task
	placed.Status = columnID
	return &placed, nil
}
