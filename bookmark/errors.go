package bookmark

import "errors"

var (
	// ErrNotFound is returned when a Page object lookup fails.
	ErrNotFound = errors.New("not found")

	// ErrInvalidURL is returned when a candidate bookmark URL violates
	// one of the validation constraints. The wrapping error names the
	// violated constraint.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrMissingOwner is returned when a store operation is attempted
	// for a page without an owner partition.
	ErrMissingOwner = errors.New("page has missing owner")
)
