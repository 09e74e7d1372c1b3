package errorvalues

import "errors"

var (
	ErrInvalidInput     = errors.New("missing or invalid required field")
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong username or password")

	ErrHabitNotFound = errors.New("habit doesn't exists")
	ErrOwnerNotFound = errors.New("habit owner doesn't exists")
	// Not-found and not-authorized are reported identically to callers
	// so non-owners can't probe for existing habit ids
	ErrWrongOwner = errors.New("habit has different owner")

	ErrCompletionNotFound = errors.New("completion doesn't exists")
	ErrCompletionExists   = errors.New("completion already recorded for that date")
	ErrInvalidDate        = errors.New("malformed calendar date")

	ErrInvalidConfiguration = errors.New("habit goal duration must be positive")
)
