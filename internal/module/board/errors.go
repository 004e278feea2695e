package board

import apperrors "github.com/buildmate/server/internal/shared/errors"

// Module errors.
var (
	// Engine errors
	ErrInvalidColumn    = apperrors.New(apperrors.ErrValidation, "column is not part of this project")
	ErrNoSuchColumn     = apperrors.New(apperrors.ErrValidation, "task is in a column that is not part of this project")
	ErrAtBoundary       = apperrors.New(apperrors.ErrConflict, "task cannot move past the first or last column")
	ErrInvalidDirection = apperrors.New(apperrors.ErrValidation, "direction must be left or right")
	ErrTitleRequired    = apperrors.New(apperrors.ErrValidation, "title is required")
	ErrInvalidColumns   = apperrors.New(apperrors.ErrValidation, "columns need unique ids and unique order values")

	// Service errors
	ErrProjectNotFound   = apperrors.New(apperrors.ErrNotFound, "project not found")
	ErrTaskNotFound      = apperrors.New(apperrors.ErrNotFound, "task not found")
	ErrNotMember         = apperrors.New(apperrors.ErrForbidden, "only team members can use this board")
	ErrAssigneeNotMember = apperrors.New(apperrors.ErrValidation, "assignee is not a team member")
	ErrTaskChanged       = apperrors.New(apperrors.ErrConflict, "task was changed by someone else")
)
