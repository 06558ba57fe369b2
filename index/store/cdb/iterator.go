package cdb

import (
	"database/sql"
	"fmt"

	"github.com/ikumen/read-it-later/index"
)

// Static and compile-time check to ensure postingIterator implements
// index.Iterator interface.
var _ index.Iterator = (*postingIterator)(nil)

// postingIterator is an index.Iterator implementation for the
// cockroachDB backed posting store. It wraps the [database/sql] Rows
// type that serves as an iterator for the returned query data. A nil
// rows field represents an intentionally empty result set.
type postingIterator struct {
	rows    *sql.Rows
	lastErr error
	posting *index.Posting
}

// Next loads the next item, returns false when no more postings
// are available or when an error occurs.
func (i *postingIterator) Next() bool {
	// Check if an error occurred during the most recent [rows.Scan]
	// operation or if there are no more rows data to return.
	if i.lastErr != nil || i.rows == nil || !i.rows.Next() {
		return false
	}

	p := new(index.Posting)
	if i.lastErr = i.rows.Scan(
		&p.Owner, &p.Term, &p.PageID, &p.Count,
	); i.lastErr != nil {

		return false
	}

	i.posting = p

	return true
}

// Error returns the last error encountered by the iterator.
func (i *postingIterator) Error() error {
	return i.lastErr
}

// Close releases any resources allocated to the iterator.
func (i *postingIterator) Close() error {
	if i.rows == nil {
		return nil
	}

	if err := i.rows.Close(); err != nil {
		return fmt.Errorf("posting iterator: %w", err)
	}

	return nil
}

// Posting returns the currently fetched posting object.
func (i *postingIterator) Posting() *index.Posting {
	return i.posting
}
