package matching

import apperrors "github.com/buildmate/server/internal/shared/errors"

// Module errors.
var (
	ErrSelfMatch = apperrors.New(apperrors.ErrValidation, "cannot score a profile against itself")
)
