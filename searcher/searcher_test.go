package searcher

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"github.com/ikumen/read-it-later/bookmark"
	membookmark "github.com/ikumen/read-it-later/bookmark/store/memory"
	"github.com/ikumen/read-it-later/indexer"
	memindex "github.com/ikumen/read-it-later/index/store/memory"
)

// Initialize and register a pointer instance of the searcherTestSuite
// to be executed by check testing package.
var _ = check.Suite(new(searcherTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

type searcherTestSuite struct {
	pages    *membookmark.InMemoryStore
	postings *memindex.InMemoryIndex
	writer   *indexer.Writer
	searcher *Searcher
}

func (s *searcherTestSuite) SetUpTest(c *check.C) {
	s.pages = membookmark.NewInMemoryStore()
	s.postings = memindex.NewInMemoryIndex()

	var err error
	s.writer, err = indexer.NewWriter(indexer.Config{Store: s.postings})
	c.Assert(err, check.IsNil)

	s.searcher, err = New(Config{Pages: s.pages, Postings: s.postings})
	c.Assert(err, check.IsNil)
}

// TestEndToEnd runs the full bookmark -> ingest -> index -> search
// flow against the in-memory backends.
func (s *searcherTestSuite) TestEndToEnd(c *check.C) {
	page := s.bookmark(
		c, "user-1", "http://example.com/article",
		"Article", "Astronomy telescopes observe galaxies", time.Now(),
	)

	results, err := s.searcher.Search("user-1", "telescopes", uuid.Nil, 10)
	c.Assert(err, check.IsNil)
	c.Assert(results.Sanitized, check.Equals, false)
	c.Assert(len(results.Hits), check.Equals, 1)
	c.Assert(results.Hits[0].ID, check.Equals, page.ID)
	c.Assert(results.Hits[0].Title, check.Equals, "Article")
	c.Assert(results.Hits[0].URL, check.Equals, "http://example.com/article")

	// A term with zero postings resolves to an empty result set.
	results, err = s.searcher.Search("user-1", "nonexistent", uuid.Nil, 10)
	c.Assert(err, check.IsNil)
	c.Assert(len(results.Hits), check.Equals, 0)

	// An empty term lists the owner's pages instead.
	results, err = s.searcher.Search("user-1", "", uuid.Nil, 10)
	c.Assert(err, check.IsNil)
	c.Assert(len(results.Hits), check.Equals, 1)
	c.Assert(results.Hits[0].ID, check.Equals, page.ID)
}

// TestSearchPreservesPostingOrder verifies that joined results keep the
// count-descending posting order rather than being re-sorted by page
// attributes.
func (s *searcherTestSuite) TestSearchPreservesPostingOrder(c *check.C) {
	now := time.Now()

	// Creation order is deliberately the inverse of the term frequency
	// order.
	low := s.bookmark(c, "user-1", "https://example.com/low",
		"Zebra", "telescope", now.Add(2*time.Hour))
	mid := s.bookmark(c, "user-1", "https://example.com/mid",
		"Apple", "telescope telescope", now.Add(time.Hour))
	high := s.bookmark(c, "user-1", "https://example.com/high",
		"Mango", "telescope telescope telescope", now)

	results, err := s.searcher.Search("user-1", "telescope", uuid.Nil, 10)
	c.Assert(err, check.IsNil)
	c.Assert(len(results.Hits), check.Equals, 3)
	c.Assert(results.Hits[0].ID, check.Equals, high.ID)
	c.Assert(results.Hits[1].ID, check.Equals, mid.ID)
	c.Assert(results.Hits[2].ID, check.Equals, low.ID)
}

// TestSearchSkipsPagesWithoutRecords verifies that postings whose page
// record has been deleted resolve to a skipped hit, not an error.
func (s *searcherTestSuite) TestSearchSkipsPagesWithoutRecords(c *check.C) {
	kept := s.bookmark(c, "user-1", "https://example.com/kept",
		"Kept", "telescope", time.Now())
	dropped := s.bookmark(c, "user-1", "https://example.com/dropped",
		"Dropped", "telescope telescope", time.Now())

	// Remove the page record but leave its postings behind, simulating
	// the window during a delete cascade.
	c.Assert(s.pages.DeletePage("user-1", dropped.ID), check.IsNil)

	results, err := s.searcher.Search("user-1", "telescope", uuid.Nil, 10)
	c.Assert(err, check.IsNil)
	c.Assert(len(results.Hits), check.Equals, 1)
	c.Assert(results.Hits[0].ID, check.Equals, kept.ID)
}

// TestSearchTermSanitization verifies that query terms are normalized
// the same way indexed text is, with the alteration reported back.
func (s *searcherTestSuite) TestSearchTermSanitization(c *check.C) {
	page := s.bookmark(c, "user-1", "https://example.com/article",
		"Article", "telescope", time.Now())

	results, err := s.searcher.Search("user-1", " Tele-scope! ", uuid.Nil, 10)
	c.Assert(err, check.IsNil)
	c.Assert(results.Sanitized, check.Equals, true)
	c.Assert(results.Term, check.Equals, "telescope")
	c.Assert(len(results.Hits), check.Equals, 1)
	c.Assert(results.Hits[0].ID, check.Equals, page.ID)

	// Case folding and trimming alone do not count as sanitization.
	results, err = s.searcher.Search("user-1", " Telescope ", uuid.Nil, 10)
	c.Assert(err, check.IsNil)
	c.Assert(results.Sanitized, check.Equals, false)
}

// TestListPagination verifies the cursor contract on the listing path,
// including the limit+1 probe pattern recommended for callers.
func (s *searcherTestSuite) TestListPagination(c *check.C) {
	now := time.Now()

	var pages []*bookmark.Page
	for i := 0; i < 5; i++ {
		pages = append(pages, s.bookmark(
			c, "user-1", "https://example.com/article",
			"Article", "telescope", now.Add(time.Duration(i)*time.Hour),
		))
	}

	// Probe with limit+1: three hits back means a further page exists
	// and the extra hit's ID is the next cursor.
	results, err := s.searcher.Search("user-1", "", uuid.Nil, 3)
	c.Assert(err, check.IsNil)
	c.Assert(len(results.Hits), check.Equals, 3)
	c.Assert(results.Hits[0].ID, check.Equals, pages[4].ID)
	c.Assert(results.Hits[1].ID, check.Equals, pages[3].ID)

	cursor := results.Hits[2].ID

	results, err = s.searcher.Search("user-1", "", cursor, 3)
	c.Assert(err, check.IsNil)
	c.Assert(len(results.Hits), check.Equals, 2)
	c.Assert(results.Hits[0].ID, check.Equals, pages[1].ID)
	c.Assert(results.Hits[1].ID, check.Equals, pages[0].ID)

	// Results never include page text.
	for _, hit := range results.Hits {
		c.Assert(hit.Title, check.Equals, "Article")
	}
}

// bookmark creates a page, applies its fetched content and indexes it.
func (s *searcherTestSuite) bookmark(
	c *check.C, owner, url, title, text string, createdAt time.Time,
) *bookmark.Page {

	page := &bookmark.Page{Owner: owner, URL: url, CreatedAt: createdAt}
	c.Assert(s.pages.CreatePage(page), check.IsNil)
	c.Assert(s.pages.UpdateContent(page.ID, title, text[:min(len(text), 32)], text), check.IsNil)
	c.Assert(s.writer.IndexPage(context.TODO(), owner, page.ID, title, text), check.IsNil)

	found, err := s.pages.FindPage(page.ID)
	c.Assert(err, check.IsNil)

	return found
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
