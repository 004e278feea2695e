package team

import apperrors "github.com/buildmate/server/internal/shared/errors"

// Module errors.
var (
	// Validation errors
	ErrNameTooShort  = apperrors.New(apperrors.ErrValidation, "team name must be at least 3 characters")
	ErrTitleTooShort = apperrors.New(apperrors.ErrValidation, "project title must be at least 5 characters")
	ErrSummaryLength = apperrors.New(apperrors.ErrValidation, "project summary must be 20 to 500 characters")
	ErrInvalidRole   = apperrors.New(apperrors.ErrValidation, "role must be owner or member")

	// Service errors
	ErrTeamNotFound  = apperrors.New(apperrors.ErrNotFound, "team not found")
	ErrNotMember     = apperrors.New(apperrors.ErrForbidden, "only team members can view this team")
	ErrNotOwner      = apperrors.New(apperrors.ErrForbidden, "only the team owner can add members")
	ErrAlreadyMember = apperrors.New(apperrors.ErrConflict, "user is already a team member")
)
