package connection

import apperrors "github.com/buildmate/server/internal/shared/errors"

// Module errors.
var (
	ErrRequestNotFound = apperrors.New(apperrors.ErrNotFound, "connection request not found")
	ErrAlreadyPending  = apperrors.New(apperrors.ErrConflict, "a pending request to this user already exists")
	ErrAlreadyResolved = apperrors.New(apperrors.ErrConflict, "connection request already resolved")
	ErrUnauthorized    = apperrors.New(apperrors.ErrForbidden, "only the recipient can resolve a request")
	ErrSelfRequest     = apperrors.New(apperrors.ErrValidation, "cannot send a request to yourself")
	ErrInvalidDecision = apperrors.New(apperrors.ErrValidation, "decision must be accepted or rejected")
	ErrInvalidUser     = apperrors.New(apperrors.ErrValidation, "user id is required")
)
