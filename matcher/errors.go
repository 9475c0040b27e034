package matcher

import "errors"

var (
	// ErrRosterRequired is returned when a roster provider is not provided.
	ErrRosterRequired = errors.New("roster provider required")

	// ErrRosterUnavailable wraps failures of the roster provider.
	ErrRosterUnavailable = errors.New("doctor roster unavailable")

	// ErrInvalidMaxSuggestions is returned for a non-positive suggestion limit.
	ErrInvalidMaxSuggestions = errors.New("max suggestions must be positive")
)
