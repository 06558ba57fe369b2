package memory

import "github.com/ikumen/read-it-later/bookmark"

// Static and compile-time check to ensure pageIterator implements
// bookmark.Iterator interface.
var _ bookmark.Iterator = (*pageIterator)(nil)

// pageIterator is a bookmark.PageIterator implementation for the
// in-memory store.
type pageIterator struct {
	// Pointer to an InMemoryStore instance. it's used here to provide
	// access to the store's mutex object.
	store        *InMemoryStore
	pages        []*bookmark.Page
	currentIndex int
}

// Next loads the next item, returns false when no more pages
// are available or when an error occurs.
func (i *pageIterator) Next() bool {
	if i.currentIndex >= len(i.pages) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error encountered by the iterator.
func (i *pageIterator) Error() error {
	return nil
}

// Close releases any resources allocated to the iterator.
func (i *pageIterator) Close() error {
	return nil
}

// Page returns the currently fetched page object.
func (i *pageIterator) Page() *bookmark.Page {
	// The page pointer contents may be overwritten by a store update
	// outside this method. To avoid data-races, we acquire the read lock
	// first and clone creating a local pointer to the queried page.
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	p := new(bookmark.Page)
	*p = *i.pages[i.currentIndex-1]

	return p
}
