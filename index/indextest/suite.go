package indextest

import (
	"errors"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"github.com/ikumen/read-it-later/index"
)

// BaseSuite defines a set of re-usable posting store related tests that
// can be executed against any concrete type that implements the
// index.Store interface.
type BaseSuite struct {
	s index.Store
}

// SetStore configures the test-suite to run all tests against an
// instance of index.Store.
func (s *BaseSuite) SetStore(store index.Store) {
	s.s = store
}

// TestUpsertAndQueryPostings verifies batched posting writes, the
// count-descending read ordering and the overwrite-on-reindex
// semantics.
func (s *BaseSuite) TestUpsertAndQueryPostings(c *check.C) {
	pageA, pageB, pageC := uuid.New(), uuid.New(), uuid.New()

	err := s.s.UpsertBatch([]index.Posting{
		{Owner: "user-1", Term: "telescope", PageID: pageA, Count: 2},
		{Owner: "user-1", Term: "telescope", PageID: pageB, Count: 7},
		{Owner: "user-1", Term: "telescope", PageID: pageC, Count: 4},
		{Owner: "user-1", Term: "galaxy", PageID: pageA, Count: 1},
	})
	c.Assert(err, check.IsNil, check.Commentf("++++Upsert batch++++: %v", err))

	postings := s.postingsForTerm(c, "user-1", "telescope", uuid.Nil, 10)
	c.Assert(len(postings), check.Equals, 3)
	c.Assert(postings[0].PageID, check.Equals, pageB)
	c.Assert(postings[0].Count, check.Equals, 7)
	c.Assert(postings[1].PageID, check.Equals, pageC)
	c.Assert(postings[2].PageID, check.Equals, pageA)

	// Re-indexing the same page must overwrite the prior count, not
	// increment it.
	err = s.s.UpsertBatch([]index.Posting{
		{Owner: "user-1", Term: "telescope", PageID: pageA, Count: 9},
	})
	c.Assert(err, check.IsNil)

	postings = s.postingsForTerm(c, "user-1", "telescope", uuid.Nil, 10)
	c.Assert(len(postings), check.Equals, 3)
	c.Assert(postings[0].PageID, check.Equals, pageA)
	c.Assert(postings[0].Count, check.Equals, 9)

	// A term with no postings yields an empty result, not an error.
	c.Assert(len(s.postingsForTerm(c, "user-1", "quasar", uuid.Nil, 10)), check.Equals, 0)
}

// TestBatchValidation verifies that oversized or malformed batches are
// rejected before any mutation takes place.
func (s *BaseSuite) TestBatchValidation(c *check.C) {
	oversized := make([]index.Posting, index.MaxBatchSize+1)
	for i := range oversized {
		oversized[i] = index.Posting{
			Owner: "user-1", Term: "term", PageID: uuid.New(), Count: 1,
		}
	}

	err := s.s.UpsertBatch(oversized)
	c.Assert(errors.Is(err, index.ErrBatchTooLarge), check.Equals, true)

	oversizedKeys := make([]index.PostingKey, index.MaxBatchSize+1)
	for i := range oversizedKeys {
		oversizedKeys[i] = index.PostingKey{
			Owner: "user-1", Term: "term", PageID: uuid.New(),
		}
	}

	err = s.s.DeleteBatch(oversizedKeys)
	c.Assert(errors.Is(err, index.ErrBatchTooLarge), check.Equals, true)

	err = s.s.UpsertBatch([]index.Posting{
		{Term: "term", PageID: uuid.New(), Count: 1},
	})
	c.Assert(errors.Is(err, index.ErrMissingOwner), check.Equals, true)

	err = s.s.UpsertBatch([]index.Posting{
		{Owner: "user-1", Term: "term", Count: 1},
	})
	c.Assert(errors.Is(err, index.ErrMissingPageID), check.Equals, true)

	// None of the rejected batches may have left postings behind.
	c.Assert(len(s.postingsForTerm(c, "user-1", "term", uuid.Nil, 10)), check.Equals, 0)
}

// TestDeleteBatch verifies posting removal semantics.
func (s *BaseSuite) TestDeleteBatch(c *check.C) {
	pageA, pageB := uuid.New(), uuid.New()

	err := s.s.UpsertBatch([]index.Posting{
		{Owner: "user-1", Term: "telescope", PageID: pageA, Count: 2},
		{Owner: "user-1", Term: "telescope", PageID: pageB, Count: 5},
		{Owner: "user-1", Term: "galaxy", PageID: pageA, Count: 3},
	})
	c.Assert(err, check.IsNil)

	err = s.s.DeleteBatch([]index.PostingKey{
		{Owner: "user-1", Term: "telescope", PageID: pageA},
		// Unknown keys are ignored.
		{Owner: "user-1", Term: "nebula", PageID: pageA},
	})
	c.Assert(err, check.IsNil, check.Commentf("++++Delete batch++++: %v", err))

	postings := s.postingsForTerm(c, "user-1", "telescope", uuid.Nil, 10)
	c.Assert(len(postings), check.Equals, 1)
	c.Assert(postings[0].PageID, check.Equals, pageB)

	terms, err := s.s.TermsForPage("user-1", pageA)
	c.Assert(err, check.IsNil)
	c.Assert(terms, check.DeepEquals, []string{"galaxy"})
}

// TestPostingsPagination verifies cursor-based pagination over the
// count-descending ordering: successive requests using the last seen
// page ID as the cursor must produce non-overlapping, gap-free result
// sets.
func (s *BaseSuite) TestPostingsPagination(c *check.C) {
	const numOfPostings = 7

	batch := make([]index.Posting, numOfPostings)
	for i := 0; i < numOfPostings; i++ {
		batch[i] = index.Posting{
			Owner:  "user-1",
			Term:   "telescope",
			PageID: uuid.New(),
			Count:  numOfPostings - i,
		}
	}

	c.Assert(s.s.UpsertBatch(batch), check.IsNil)

	var (
		seen   []*index.Posting
		cursor = uuid.Nil
	)

	for {
		page := s.postingsForTerm(c, "user-1", "telescope", cursor, 3)
		if len(page) == 0 {
			break
		}

		seen = append(seen, page...)
		cursor = page[len(page)-1].PageID
	}

	c.Assert(len(seen), check.Equals, numOfPostings)
	for idx, p := range seen {
		c.Assert(p.Count, check.Equals, numOfPostings-idx)
		c.Assert(p.PageID, check.Equals, batch[idx].PageID)
	}

	// A cursor pointing to an unknown / deleted posting yields an empty
	// result set rather than an error.
	c.Assert(
		len(s.postingsForTerm(c, "user-1", "telescope", uuid.New(), 3)),
		check.Equals, 0,
	)
}

// TestOwnerIsolation verifies that postings never leak across owner
// partitions.
func (s *BaseSuite) TestOwnerIsolation(c *check.C) {
	pageA, pageB := uuid.New(), uuid.New()

	err := s.s.UpsertBatch([]index.Posting{
		{Owner: "user-1", Term: "telescope", PageID: pageA, Count: 2},
		{Owner: "user-2", Term: "telescope", PageID: pageB, Count: 5},
	})
	c.Assert(err, check.IsNil)

	postings := s.postingsForTerm(c, "user-1", "telescope", uuid.Nil, 10)
	c.Assert(len(postings), check.Equals, 1)
	c.Assert(postings[0].PageID, check.Equals, pageA)

	terms, err := s.s.TermsForPage("user-2", pageA)
	c.Assert(err, check.IsNil)
	c.Assert(len(terms), check.Equals, 0)
}

// postingsForTerm drains a PostingsForTerm iterator into a slice.
func (s *BaseSuite) postingsForTerm(
	c *check.C, owner, term string, startAt uuid.UUID, limit int,
) []*index.Posting {

	it, err := s.s.PostingsForTerm(owner, term, startAt, limit)
	c.Assert(err, check.IsNil)

	var postings []*index.Posting
	for it.Next() {
		postings = append(postings, it.Posting())
	}

	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	return postings
}
