package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrGroupNameRequired     = errors.New("group name is required")
	ErrInviteExpired         = errors.New("invite has expired")
	ErrAlreadyMember         = errors.New("user is already a member of this group")
	ErrNotGroupMember        = errors.New("user is not a member of this group")
	ErrPredictionClosed      = errors.New("predictions are closed for this fixture")
	ErrPredictionSettled     = errors.New("prediction has already been settled")
	ErrFixtureNotFinished    = errors.New("fixture result has not been recorded yet")
	ErrFixtureAlreadyScored  = errors.New("fixture has already been settled")
	ErrInvalidFixtureResult  = errors.New("fixture scores must be non-negative")
	ErrInvalidPredictedScore = errors.New("predicted scores must be non-negative")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserNicknameConflict = errors.New("nickname is already in use")
	ErrGroupNameConflict    = errors.New("group name is already in use")
	ErrPredictionConflict   = errors.New("a prediction for this fixture is already placed")

	// Authorization
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrOwnerActionForbidden = errors.New("only the group owner can perform this action")
	ErrOwnerCannotLeave     = errors.New("the group owner cannot leave their own group")

	// Entity-specific lookups
	ErrUserNotFound       = errors.New("user not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrFixtureNotFound    = errors.New("fixture not found")
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrInviteNotFound     = errors.New("invite not found")
)
