package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	// Not found
	ErrTeamNotFound  = errors.New("team not found")
	ErrGroupNotFound = errors.New("group number does not exist")

	// Conflicts
	ErrTeamNameConflict = errors.New("team name already exists")

	// Validation and business rules
	ErrValidationFailed         = errors.New("validation failed")
	ErrTeamNameRequired         = errors.New("team name is required")
	ErrGroupNumberInvalid       = errors.New("group number should either be 1 or 2")
	ErrRegistrationDateInvalid  = errors.New("invalid registration date")
	ErrRegistrationDateInFuture = errors.New("registration date must not be in the future")
	ErrNegativeStats            = errors.New("team statistics must not be negative")
	ErrMatchSameTeam            = errors.New("a team cannot play against itself")
	ErrNegativeGoals            = errors.New("goals must not be negative")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")

	// Logo storage
	ErrLogoStorageUnavailable = errors.New("logo storage is not configured")
	ErrLogoNotFound           = errors.New("team has no logo")
)
