package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflicting request")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrGenerationFailed means the puzzle generator exhausted its attempt
	// budget without finding a valid grid. Clients treat it as transient and
	// retry the fetch-puzzle flow.
	ErrGenerationFailed = errors.New("daily puzzle generation failed")
)
