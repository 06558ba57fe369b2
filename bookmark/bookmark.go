/*
	bookmark package defines the page model for bookmarked web pages
	and the behavior of page data stores.
*/

package bookmark

import (
	"time"

	"github.com/google/uuid"
)

// Store should be implemented by page data stores / types.
type Store interface {
	// CreatePage persists a new url-only page, assigning its ID and
	// creation timestamp.
	CreatePage(page *Page) error

	// UpdateContent sets the title, description and extracted text of an
	// existing page. it's the single content mutation performed by the
	// fetch pipeline once a page has been rendered.
	UpdateContent(id uuid.UUID, title, description, text string) error

	// FindPage performs a page lookup by id.
	FindPage(id uuid.UUID) (*Page, error)

	// ListPages returns an iterator for a set of pages belonging to the
	// specified owner, ordered by their creation time in descending order.
	// If [startAt] is a non-nil page ID, iteration resumes strictly after
	// that page's position in the ordering. An unknown [startAt] page
	// yields an empty iterator.
	ListPages(owner string, startAt uuid.UUID, limit int) (PageIterator, error)

	// DeletePage removes a page from the specified owner's partition.
	DeletePage(owner string, id uuid.UUID) error
}

// PageIterator is implemented by types that iterate pages.
type PageIterator interface {
	Iterator

	// Page returns the currently fetched page object.
	Page() *Page
}

// Iterator should be embedded / implemented by types that require
// iteration functionality.
type Iterator interface {
	// Next loads the next item, returns false when no more documents
	// are available or when an error occurs.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources allocated to the iterator.
	Close() error
}

// Page represents a bookmarked web page. it serves as a model / schema
// object. Title, Description and Text remain empty until the fetch
// pipeline has retrieved the page content.
type Page struct {
	ID          uuid.UUID // Page unique identifier
	Owner       string    // Owner partition the page belongs to
	URL         string    // Bookmarked location
	Title       string    // Page title (populated by the fetch pipeline)
	Description string    // Short summary derived from the page text
	Text        string    // Full extracted page text
	CreatedAt   time.Time // Bookmark creation timestamp
}
