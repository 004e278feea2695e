package profile

import apperrors "github.com/buildmate/server/internal/shared/errors"

// Module errors.
var (
	ErrProfileNotFound = apperrors.New(apperrors.ErrNotFound, "profile not found")
	ErrNameRequired    = apperrors.New(apperrors.ErrValidation, "name is required")
)
