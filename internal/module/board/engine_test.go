package board

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/buildmate/server/internal/shared/errors"
)

var testNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestProject(t *testing.T) *Project {
	t.Helper()
	p, err := NewProject(uuid.New(), nil, testNow)
	require.NoError(t, err)
	return p
}

func TestMoveTask_ThreeColumnWalk(t *testing.T) {
	project := newTestProject(t)
	task, err := CreateTask(project, ColumnTodo, "Write pitch", "", testNow)
	require.NoError(t, err)

	_, err = MoveTask(project, task, DirectionLeft)
	assert.ErrorIs(t, err, ErrAtBoundary)

	task, err = MoveTask(project, task, DirectionRight)
	require.NoError(t, err)
	assert.Equal(t, ColumnInProgress, task.Status)

	task, err = MoveTask(project, task, DirectionRight)
	require.NoError(t, err)
	assert.Equal(t, ColumnDone, task.Status)

	_, err = MoveTask(project, task, DirectionRight)
	assert.ErrorIs(t, err, ErrAtBoundary)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	task, err = MoveTask(project, task, DirectionLeft)
	require.NoError(t, err)
	assert.Equal(t, ColumnInProgress, task.Status)
}

func TestMoveTask_UsesOrderNotPosition(t *testing.T) {
	project := &Project{
		ID: uuid.New(),
		Columns: []Column{
			{ID: "done", Order: 30},
			{ID: "todo", Order: 10},
			{ID: "review", Order: 25},
			{ID: "doing", Order: 20},
		},
	}
	task := &Task{ID: uuid.New(), Status: "doing"}

	right, err := MoveTask(project, task, DirectionRight)
	require.NoError(t, err)
	assert.Equal(t, "review", right.Status)

	left, err := MoveTask(project, task, DirectionLeft)
	require.NoError(t, err)
	assert.Equal(t, "todo", left.Status)

	assert.Equal(t, "doing", task.Status, "input task is not mutated")
	assert.Equal(t, "done", project.Columns[0].ID, "project columns are not reordered")
}

func TestMoveTask_Errors(t *testing.T) {
	project := newTestProject(t)

	_, err := MoveTask(project, &Task{Status: ColumnTodo}, Direction("up"))
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = MoveTask(project, &Task{Status: "archived"}, DirectionRight)
	assert.ErrorIs(t, err, ErrNoSuchColumn)

	single := &Project{Columns: []Column{{ID: "only", Order: 1}}}
	_, err = MoveTask(single, &Task{Status: "only"}, DirectionRight)
	assert.ErrorIs(t, err, ErrAtBoundary)
	_, err = MoveTask(single, &Task{Status: "only"}, DirectionLeft)
	assert.ErrorIs(t, err, ErrAtBoundary)
}

func TestCreateTask(t *testing.T) {
	project := newTestProject(t)

	tests := []struct {
		name     string
		columnID string
		title    string
		wantErr  error
	}{
		{"in first column", ColumnTodo, "Design logo", nil},
		{"in last column", ColumnDone, "Register team", nil},
		{"unknown column", "backlog", "Design logo", ErrInvalidColumn},
		{"blank title", ColumnTodo, "   ", ErrTitleRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := CreateTask(project, tt.columnID, tt.title, " notes ", testNow)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.columnID, task.Status)
			assert.Equal(t, project.ID, task.ProjectID)
			assert.Equal(t, "notes", task.Description)
			assert.Nil(t, task.AssignedTo)
		})
	}
}

func TestSetColumn(t *testing.T) {
	project := newTestProject(t)
	task := &Task{ID: uuid.New(), Status: ColumnTodo}

	placed, err := SetColumn(project, task, ColumnDone)
	require.NoError(t, err)
	assert.Equal(t, ColumnDone, placed.Status)
	assert.Equal(t, ColumnTodo, task.Status)

	same, err := SetColumn(project, task, ColumnTodo)
	require.NoError(t, err)
	assert.Equal(t, ColumnTodo, same.Status)

	_, err = SetColumn(project, task, "nowhere")
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestOrderedColumns(t *testing.T) {
	columns := []Column{{ID: "c", Order: 3}, {ID: "a", Order: 1}, {ID: "b", Order: 2}}

	ordered := OrderedColumns(columns)
	assert.Equal(t, []string{"a", "b", "c"}, []string{ordered[0].ID, ordered[1].ID, ordered[2].ID})
	assert.Equal(t, "c", columns[0].ID)
	assert.Empty(t, OrderedColumns(nil))
}

func TestValidateColumns(t *testing.T) {
	assert.NoError(t, ValidateColumns(DefaultColumns()))
	assert.ErrorIs(t, ValidateColumns(nil), ErrInvalidColumns)
	assert.ErrorIs(t, ValidateColumns([]Column{{ID: "a", Order: 1}, {ID: "b", Order: 1}}), ErrInvalidColumns)
	assert.ErrorIs(t, ValidateColumns([]Column{{ID: "a", Order: 1}, {ID: "a", Order: 2}}), ErrInvalidColumns)
	assert.ErrorIs(t, ValidateColumns([]Column{{ID: " ", Order: 1}}), ErrInvalidColumns)

	_, err := NewProject(uuid.New(), []Column{{ID: "x", Order: 1}, {ID: "y", Order: 1}}, testNow)
	assert.ErrorIs(t, err, ErrInvalidColumns)
}

func TestNewBoardView(t *testing.T) {
	project := newTestProject(t)
	a := &Task{ID: uuid.New(), Status: ColumnDone}
	b := &Task{ID: uuid.New(), Status: ColumnTodo}
	stray := &Task{ID: uuid.New(), Status: "archived"}

	view := NewBoardView(project, []*Task{a, b, stray})
	require.Len(t, view.Columns, 3)
	assert.Equal(t, ColumnTodo, view.Columns[0].ID)
	assert.Equal(t, []*Task{b}, view.Columns[0].Tasks)
	assert.Empty(t, view.Columns[1].Tasks)
	assert.Equal(t, []*Task{a}, view.Columns[2].Tasks)
}
