package index

import "errors"

var (
	// ErrBatchTooLarge is returned when a batch commit is attempted with
	// more than MaxBatchSize mutations.
	ErrBatchTooLarge = errors.New("batch exceeds the maximum commit size")

	// ErrMissingPageID is returned when a posting mutation is attempted
	// with an invalid / missing page ID.
	ErrMissingPageID = errors.New("posting has missing / invalid page id")

	// ErrMissingOwner is returned when a posting mutation is attempted
	// without an owner partition.
	ErrMissingOwner = errors.New("posting has missing owner")
)
