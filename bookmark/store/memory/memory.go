package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ikumen/read-it-later/bookmark"
)

// Static and compile-time check to ensure InMemoryStore implements
// Store interface.
var _ bookmark.Store = (*InMemoryStore)(nil)

// InMemoryStore implements an in-memory page store that can be
// concurrently accessed by multiple clients.
type InMemoryStore struct {
	mu    sync.RWMutex
	pages map[uuid.UUID]*bookmark.Page
}

// NewInMemoryStore creates a new in-memory page store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		pages: make(map[uuid.UUID]*bookmark.Page),
	}
}

// CreatePage persists a new url-only page, assigning its ID and
// creation timestamp.
func (s *InMemoryStore) CreatePage(page *bookmark.Page) error {
	if page.Owner == "" {
		return fmt.Errorf("create page: %w", bookmark.ErrMissingOwner)
	}

	// Acquire a general lock to avoid data races while mutating page data.
	// Note: No other writes and reads are allowed for as long as this lock
	// is active.
	s.mu.Lock()
	defer s.mu.Unlock()

	// Try to assign a random ID to a new page. in case the generated ID
	// is already used, run the ID generator until a unique ID is found.
	for {
		page.ID = uuid.New()
		if _, exists := s.pages[page.ID]; !exists {
			break
		}
	}

	// Preserve a caller-provided creation time. this keeps the creation
	// ordering under the caller's control when replaying bookmarks.
	if page.CreatedAt.IsZero() {
		page.CreatedAt = time.Now()
	}

	// Make a new local pointer to the page provided by the user.
	// This step protects the local page data from side-effects triggered
	// outside this method.
	pCopy := new(bookmark.Page)
	*pCopy = *page

	s.pages[pCopy.ID] = pCopy

	return nil
}

// UpdateContent sets the title, description and extracted text of an
// existing page.
func (s *InMemoryStore) UpdateContent(
	id uuid.UUID, title, description, text string,
) error {

	// Acquire a general lock to avoid data races while mutating page data.
	s.mu.Lock()
	defer s.mu.Unlock()

	page, exists := s.pages[id]
	if !exists {
		return fmt.Errorf("update content: %w", bookmark.ErrNotFound)
	}

	page.Title = title
	page.Description = description
	page.Text = text

	return nil
}

// FindPage performs a page lookup by id.
func (s *InMemoryStore) FindPage(id uuid.UUID) (*bookmark.Page, error) {
	// Read lock allows other processes or goroutines to perform reads by
	// concurrently acquiring other read locks.
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, exists := s.pages[id]
	if !exists {
		return nil, fmt.Errorf("find page: %w", bookmark.ErrNotFound)
	}

	// Make a new local pointer to the queried page. This step protects
	// the local page data from side-effects triggered outside this method.
	pCopy := new(bookmark.Page)
	*pCopy = *page

	return pCopy, nil
}

// ListPages returns an iterator for a set of pages belonging to the
// specified owner, ordered by their creation time in descending order.
// If [startAt] is a non-nil page ID, iteration resumes strictly after
// that page's position in the ordering.
func (s *InMemoryStore) ListPages(
	owner string, startAt uuid.UUID, limit int,
) (bookmark.PageIterator, error) {

	// Read lock allows other processes or goroutines to perform reads by
	// concurrently acquiring other read locks.
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*bookmark.Page
	for _, page := range s.pages {
		if page.Owner == owner {
			list = append(list, page)
		}
	}

	// Order by creation time in descending order. Ties are broken by page
	// ID so that cursor resolution is stable within this store.
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID.String() < list[j].ID.String()
		}

		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	// Resolve the cursor to its position in the ordering and resume
	// strictly after it. An unknown cursor yields an empty result set.
	if startAt != uuid.Nil {
		cursorIdx := -1
		for idx, page := range list {
			if page.ID == startAt {
				cursorIdx = idx

				break
			}
		}

		if cursorIdx == -1 {
			list = nil
		} else {
			list = list[cursorIdx+1:]
		}
	}

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	return &pageIterator{store: s, pages: list}, nil
}

// DeletePage removes a page from the specified owner's partition.
func (s *InMemoryStore) DeletePage(owner string, id uuid.UUID) error {
	// Acquire a general lock to avoid data races while mutating page data.
	s.mu.Lock()
	defer s.mu.Unlock()

	page, exists := s.pages[id]
	if !exists || page.Owner != owner {
		return fmt.Errorf("delete page: %w", bookmark.ErrNotFound)
	}

	delete(s.pages, id)

	return nil
}
