package cdb

import (
	"database/sql"
	"fmt"

	"github.com/ikumen/read-it-later/bookmark"
)

// Static and compile-time check to ensure pageIterator implements
// bookmark.Iterator interface.
var _ bookmark.Iterator = (*pageIterator)(nil)

// pageIterator is a bookmark.PageIterator implementation for the
// cockroachDB backed store. It wraps the [database/sql] Rows type that
// serves as an iterator for the returned query data. A nil rows field
// represents an intentionally empty result set.
type pageIterator struct {
	rows    *sql.Rows
	lastErr error
	page    *bookmark.Page
}

// Next loads the next item, returns false when no more pages
// are available or when an error occurs.
func (i *pageIterator) Next() bool {
	// Check if an error occurred during the most recent [rows.Scan]
	// operation or if there are no more rows data to return.
	if i.lastErr != nil || i.rows == nil || !i.rows.Next() {
		return false
	}

	p := new(bookmark.Page)
	if i.lastErr = i.rows.Scan(
		&p.ID, &p.Owner, &p.URL, &p.Title, &p.Description, &p.Text, &p.CreatedAt,
	); i.lastErr != nil {

		return false
	}

	// Re-assign this field to a .UTC time value to cater for cases
	// where the retrieved time for the field is reverted back to a non
	// UTC value during the Scan / parsing process.
	p.CreatedAt = p.CreatedAt.UTC()
	i.page = p

	return true
}

// Error returns the last error encountered by the iterator.
func (i *pageIterator) Error() error {
	return i.lastErr
}

// Close releases any resources allocated to the iterator.
func (i *pageIterator) Close() error {
	if i.rows == nil {
		return nil
	}

	if err := i.rows.Close(); err != nil {
		return fmt.Errorf("page iterator: %w", err)
	}

	return nil
}

// Page returns the currently fetched page object.
func (i *pageIterator) Page() *bookmark.Page {
	return i.page
}
