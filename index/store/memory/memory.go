package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ikumen/read-it-later/index"
)

// Static and compile-time check to ensure InMemoryIndex implements
// Store interface.
var _ index.Store = (*InMemoryIndex)(nil)

// postingList maps page IDs to term occurrence counts.
type postingList map[uuid.UUID]int

// termSet tracks the terms a page is currently indexed under.
type termSet map[string]struct{}

// InMemoryIndex implements an in-memory posting store that can be
// concurrently accessed by multiple clients.
type InMemoryIndex struct {
	mu sync.RWMutex
	// postings: owner -> term -> page -> count.
	postings map[string]map[string]postingList
	// pageTerms: owner -> page -> terms. Reverse mapping that supports
	// reindex diffing and the page-deletion cascade.
	pageTerms map[string]map[uuid.UUID]termSet
}

// NewInMemoryIndex creates a new in-memory posting store.
func NewInMemoryIndex() *InMemoryIndex {
	return &InMemoryIndex{
		postings:  make(map[string]map[string]postingList),
		pageTerms: make(map[string]map[uuid.UUID]termSet),
	}
}

// UpsertBatch writes the provided postings in a single atomic commit,
// overwriting the counts of any postings that already exist.
func (s *InMemoryIndex) UpsertBatch(postings []index.Posting) error {
	if len(postings) > index.MaxBatchSize {
		return fmt.Errorf("upsert batch: %w", index.ErrBatchTooLarge)
	}

	// Validate the full batch up-front so a rejected batch leaves the
	// index untouched.
	for _, p := range postings {
		if p.Owner == "" {
			return fmt.Errorf("upsert batch: %w", index.ErrMissingOwner)
		}
		if p.PageID == uuid.Nil {
			return fmt.Errorf("upsert batch: %w", index.ErrMissingPageID)
		}
	}

	// Acquire a general lock to avoid data races while mutating posting
	// data. Note: No other writes and reads are allowed for as long as
	// this lock is active.
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range postings {
		terms, exists := s.postings[p.Owner]
		if !exists {
			terms = make(map[string]postingList)
			s.postings[p.Owner] = terms
		}

		pages, exists := terms[p.Term]
		if !exists {
			pages = make(postingList)
			terms[p.Term] = pages
		}

		pages[p.PageID] = p.Count

		ownerPages, exists := s.pageTerms[p.Owner]
		if !exists {
			ownerPages = make(map[uuid.UUID]termSet)
			s.pageTerms[p.Owner] = ownerPages
		}

		pageTermSet, exists := ownerPages[p.PageID]
		if !exists {
			pageTermSet = make(termSet)
			ownerPages[p.PageID] = pageTermSet
		}

		pageTermSet[p.Term] = struct{}{}
	}

	return nil
}

// DeleteBatch removes the postings identified by the provided keys in a
// single atomic commit. Keys without a matching posting are ignored.
func (s *InMemoryIndex) DeleteBatch(keys []index.PostingKey) error {
	if len(keys) > index.MaxBatchSize {
		return fmt.Errorf("delete batch: %w", index.ErrBatchTooLarge)
	}

	// Acquire a general lock to avoid data races while mutating posting
	// data.
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if pages, exists := s.postings[key.Owner][key.Term]; exists {
			delete(pages, key.PageID)
			if len(pages) == 0 {
				delete(s.postings[key.Owner], key.Term)
			}
		}

		if pageTermSet, exists := s.pageTerms[key.Owner][key.PageID]; exists {
			delete(pageTermSet, key.Term)
			if len(pageTermSet) == 0 {
				delete(s.pageTerms[key.Owner], key.PageID)
			}
		}
	}

	return nil
}

// PostingsForTerm returns an iterator for the term's posting list,
// ordered by occurrence count in descending order. If [startAt] is a
// non-nil page ID, iteration resumes strictly after that posting's
// position in the ordering.
func (s *InMemoryIndex) PostingsForTerm(
	owner, term string, startAt uuid.UUID, limit int,
) (index.Iterator, error) {

	// Read lock allows other processes or goroutines to perform reads by
	// concurrently acquiring other read locks.
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*index.Posting
	for pageID, count := range s.postings[owner][term] {
		list = append(list, &index.Posting{
			Owner:  owner,
			Term:   term,
			PageID: pageID,
			Count:  count,
		})
	}

	// Order by count in descending order. Ties are broken by page ID so
	// that cursor resolution is stable within this store; callers must
	// not rely on the tie order.
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count == list[j].Count {
			return list[i].PageID.String() < list[j].PageID.String()
		}

		return list[i].Count > list[j].Count
	})

	// Resolve the cursor to its position in the ordering and resume
	// strictly after it. An unknown cursor yields an empty result set.
	if startAt != uuid.Nil {
		cursorIdx := -1
		for idx, p := range list {
			if p.PageID == startAt {
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

	return &postingIterator{postings: list}, nil
}

// TermsForPage returns the set of terms the specified page is currently
// indexed under.
func (s *InMemoryIndex) TermsForPage(
	owner string, pageID uuid.UUID,
) ([]string, error) {

	// Read lock allows other processes or goroutines to perform reads by
	// concurrently acquiring other read locks.
	s.mu.RLock()
	defer s.mu.RUnlock()

	pageTermSet := s.pageTerms[owner][pageID]
	if len(pageTermSet) == 0 {
		return nil, nil
	}

	terms := make([]string, 0, len(pageTermSet))
	for term := range pageTermSet {
		terms = append(terms, term)
	}

	sort.Strings(terms)

	return terms, nil
}
