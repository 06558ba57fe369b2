package memory

import "github.com/ikumen/read-it-later/index"

// Static and compile-time check to ensure postingIterator implements
// index.Iterator interface.
var _ index.Iterator = (*postingIterator)(nil)

// postingIterator is an index.Iterator implementation for the in-memory
// posting store. The postings slice is a snapshot taken under the store
// read lock, so iteration requires no further coordination.
type postingIterator struct {
	postings     []*index.Posting
	currentIndex int
}

// Next loads the next item, returns false when no more postings
// are available or when an error occurs.
func (i *postingIterator) Next() bool {
	if i.currentIndex >= len(i.postings) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error encountered by the iterator.
func (i *postingIterator) Error() error {
	return nil
}

// Close releases any resources allocated to the iterator.
func (i *postingIterator) Close() error {
	return nil
}

// Posting returns the currently fetched posting object.
func (i *postingIterator) Posting() *index.Posting {
	return i.postings[i.currentIndex-1]
}
