package storetest

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"github.com/ikumen/read-it-later/bookmark"
)

// BaseSuite defines a set of re-usable page store related tests that can
// be executed against any concrete type that implements the
// bookmark.Store interface.
type BaseSuite struct {
	s bookmark.Store
}

// SetStore configures the test-suite to run all tests against an
// instance of bookmark.Store.
func (s *BaseSuite) SetStore(store bookmark.Store) {
	s.s = store
}

// TestCreateAndFindPage verifies the creation and lookup logic for pages.
func (s *BaseSuite) TestCreateAndFindPage(c *check.C) {
	page := &bookmark.Page{
		Owner: "user-1",
		URL:   "https://example.com/article",
	}

	err := s.s.CreatePage(page)
	c.Assert(err, check.IsNil, check.Commentf("++++Create page++++: %v", err))
	c.Assert(page.ID, check.Not(check.Equals), uuid.Nil)
	c.Assert(page.CreatedAt.IsZero(), check.Equals, false)

	found, err := s.s.FindPage(page.ID)
	c.Assert(err, check.IsNil)
	c.Assert(found, check.DeepEquals, page)

	// Pages without an owner partition must be rejected.
	err = s.s.CreatePage(&bookmark.Page{URL: "https://example.com"})
	c.Assert(errors.Is(err, bookmark.ErrMissingOwner), check.Equals, true)

	// Lookups for unknown pages must report not-found.
	_, err = s.s.FindPage(uuid.New())
	c.Assert(errors.Is(err, bookmark.ErrNotFound), check.Equals, true)
}

// TestUpdateContent verifies the single content mutation performed by
// the fetch pipeline.
func (s *BaseSuite) TestUpdateContent(c *check.C) {
	page := &bookmark.Page{
		Owner: "user-1",
		URL:   "https://example.com/article",
	}

	c.Assert(s.s.CreatePage(page), check.IsNil)

	err := s.s.UpdateContent(
		page.ID, "Article", "Astronomy telescopes...",
		"Astronomy telescopes observe galaxies",
	)
	c.Assert(err, check.IsNil, check.Commentf("++++Update content++++: %v", err))

	found, err := s.s.FindPage(page.ID)
	c.Assert(err, check.IsNil)
	c.Assert(found.Title, check.Equals, "Article")
	c.Assert(found.Description, check.Equals, "Astronomy telescopes...")
	c.Assert(found.Text, check.Equals, "Astronomy telescopes observe galaxies")

	// The url and creation time must survive the content update.
	c.Assert(found.URL, check.Equals, page.URL)
	c.Assert(found.CreatedAt.Equal(page.CreatedAt), check.Equals, true)

	err = s.s.UpdateContent(uuid.New(), "t", "d", "text")
	c.Assert(errors.Is(err, bookmark.ErrNotFound), check.Equals, true)
}

// TestListPagesOrdering verifies that listed pages are ordered by their
// creation time in descending order and scoped to a single owner
// partition.
func (s *BaseSuite) TestListPagesOrdering(c *check.C) {
	pages := s.createPages(c, "user-1", 5)

	// Seed another owner's partition to verify isolation.
	other := &bookmark.Page{Owner: "user-2", URL: "https://example.com/other"}
	c.Assert(s.s.CreatePage(other), check.IsNil)

	listed := s.listPages(c, "user-1", uuid.Nil, 10)
	c.Assert(len(listed), check.Equals, len(pages))

	// Pages were created oldest-first, listings are newest-first.
	for idx, page := range listed {
		c.Assert(page.ID, check.Equals, pages[len(pages)-1-idx].ID)
	}
}

// TestListPagesPagination verifies cursor-based pagination over the
// created-at ordering: successive requests using the last seen page ID
// as the cursor must produce non-overlapping, gap-free result sets.
func (s *BaseSuite) TestListPagesPagination(c *check.C) {
	pages := s.createPages(c, "user-1", 7)

	var (
		seen    []*bookmark.Page
		cursor  = uuid.Nil
		numReqs int
	)

	for {
		batch := s.listPages(c, "user-1", cursor, 3)
		numReqs++
		if len(batch) == 0 {
			break
		}

		seen = append(seen, batch...)
		cursor = batch[len(batch)-1].ID
	}

	c.Assert(numReqs, check.Equals, 4) // 3 + 3 + 1 + empty probe
	c.Assert(len(seen), check.Equals, len(pages))

	for idx, page := range seen {
		c.Assert(page.ID, check.Equals, pages[len(pages)-1-idx].ID)
	}

	// A cursor pointing to an unknown / deleted page yields an empty
	// result set rather than an error.
	c.Assert(len(s.listPages(c, "user-1", uuid.New(), 3)), check.Equals, 0)
}

// TestDeletePage verifies page removal semantics.
func (s *BaseSuite) TestDeletePage(c *check.C) {
	page := &bookmark.Page{
		Owner: "user-1",
		URL:   "https://example.com/article",
	}

	c.Assert(s.s.CreatePage(page), check.IsNil)

	// A page cannot be deleted through another owner's partition.
	err := s.s.DeletePage("user-2", page.ID)
	c.Assert(errors.Is(err, bookmark.ErrNotFound), check.Equals, true)

	c.Assert(s.s.DeletePage("user-1", page.ID), check.IsNil)

	_, err = s.s.FindPage(page.ID)
	c.Assert(errors.Is(err, bookmark.ErrNotFound), check.Equals, true)

	// Repeated deletes must also report not-found.
	err = s.s.DeletePage("user-1", page.ID)
	c.Assert(errors.Is(err, bookmark.ErrNotFound), check.Equals, true)
}

// createPages inserts [num] pages for [owner] with strictly increasing
// creation times and returns them in creation (oldest-first) order.
func (s *BaseSuite) createPages(
	c *check.C, owner string, num int,
) []*bookmark.Page {

	pages := make([]*bookmark.Page, num)
	baseTime := time.Now().Add(-time.Duration(num) * time.Hour).UTC()

	for i := 0; i < num; i++ {
		page := &bookmark.Page{
			Owner:     owner,
			URL:       fmt.Sprintf("https://example.com/%d", i),
			CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
		}

		c.Assert(s.s.CreatePage(page), check.IsNil)
		pages[i] = page
	}

	return pages
}

// listPages drains a ListPages iterator into a slice.
func (s *BaseSuite) listPages(
	c *check.C, owner string, startAt uuid.UUID, limit int,
) []*bookmark.Page {

	it, err := s.s.ListPages(owner, startAt, limit)
	c.Assert(err, check.IsNil)

	var pages []*bookmark.Page
	for it.Next() {
		pages = append(pages, it.Page())
	}

	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	return pages
}
