/*
	searcher package resolves search and listing requests against the
	posting index and the page store. A request with a term walks the
	term's posting list in count-descending order and joins each posting
	back to its page record; a request without a term lists the owner's
	pages by creation time in descending order. Both paths paginate with
	a last-seen-page-id cursor.
*/

package searcher

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/ikumen/read-it-later/bookmark"
	"github.com/ikumen/read-it-later/index"
	"github.com/ikumen/read-it-later/tokenizer"
)

// PageStore defines a minimum set of API methods the searcher needs
// from the page data store.
type PageStore interface {
	// FindPage performs a page lookup by id.
	FindPage(id uuid.UUID) (*bookmark.Page, error)

	// ListPages returns an iterator for a set of pages belonging to the
	// specified owner, ordered by their creation time in descending
	// order.
	ListPages(owner string, startAt uuid.UUID, limit int) (bookmark.PageIterator, error)
}

// PostingStore defines a minimum set of API methods the searcher needs
// from the posting data store.
type PostingStore interface {
	// PostingsForTerm returns an iterator for the term's posting list,
	// ordered by occurrence count in descending order.
	PostingsForTerm(owner, term string, startAt uuid.UUID, limit int) (index.Iterator, error)
}

// Config defines configurations for the searcher.
type Config struct {
	// Pages is the store page records are resolved from.
	Pages PageStore

	// Postings is the store term posting lists are read from.
	Postings PostingStore

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.Pages == nil {
		err = multierror.Append(err, fmt.Errorf("page store not provided"))
	}

	if config.Postings == nil {
		err = multierror.Append(err, fmt.Errorf("posting store not provided"))
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Result is a single search / listing hit. Page text is indexed but
// never served back in results.
type Result struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Results is an ordered page of search / listing hits.
type Results struct {
	// Hits in their retrieval order: count-descending for term
	// searches, creation-time-descending for listings.
	Hits []Result

	// Term the lookup was performed with, after normalization.
	Term string

	// Sanitized reports that normalization altered the caller's query
	// term. it's a warning surfaced to the caller, not an error.
	Sanitized bool
}

// Searcher resolves search and listing requests. it's safe for
// concurrent use: resolution never mutates shared state.
type Searcher struct {
	config Config
}

// New creates and returns a fully configured searcher instance.
func New(config Config) (*Searcher, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("searcher: config validation failed: %w", err)
	}

	return &Searcher{config: config}, nil
}

// Search resolves up to [limit] results for the owner's query. An empty
// (or empty-after-normalization) term lists the owner's pages instead
// of searching. A term without postings resolves to an empty result
// set, not an error. Callers that need to probe for a further page
// should request limit+1 results and treat the extra hit's ID as the
// next cursor.
func (s *Searcher) Search(
	owner, term string, startAt uuid.UUID, limit int,
) (*Results, error) {

	normalized := tokenizer.NormalizeTerm(term)
	sanitized := normalized != strings.ToLower(strings.TrimSpace(term))
	if sanitized {
		s.config.Logger.WithFields(logrus.Fields{
			"term":       term,
			"normalized": normalized,
		}).Warn("query term was sanitized")
	}

	results := &Results{Term: normalized, Sanitized: sanitized}

	if normalized == "" {
		if err := s.listPages(owner, startAt, limit, results); err != nil {
			return nil, err
		}

		return results, nil
	}

	if err := s.searchTerm(owner, normalized, startAt, limit, results); err != nil {
		return nil, err
	}

	return results, nil
}

// searchTerm walks the term's posting list and joins each posting back
// to its page record, preserving the count-descending posting order.
func (s *Searcher) searchTerm(
	owner, term string, startAt uuid.UUID, limit int, results *Results,
) error {

	it, err := s.config.Postings.PostingsForTerm(owner, term, startAt, limit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	defer func() { _ = it.Close() }()

	for it.Next() {
		p := it.Posting()

		page, err := s.config.Pages.FindPage(p.PageID)
		if err != nil {
			// A posting may outlive its page for the duration of a delete
			// cascade. Skip such hits instead of failing the search.
			if errors.Is(err, bookmark.ErrNotFound) {
				s.config.Logger.WithFields(logrus.Fields{
					"owner": owner,
					"term":  term,
					"page":  p.PageID,
				}).Debug("skipping posting without a page record")

				continue
			}

			return fmt.Errorf("search: %w", err)
		}

		results.Hits = append(results.Hits, toResult(page))
	}

	if err := it.Error(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	return nil
}

// listPages resolves the owner's pages in creation-time-descending
// order.
func (s *Searcher) listPages(
	owner string, startAt uuid.UUID, limit int, results *Results,
) error {

	it, err := s.config.Pages.ListPages(owner, startAt, limit)
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}
	defer func() { _ = it.Close() }()

	for it.Next() {
		results.Hits = append(results.Hits, toResult(it.Page()))
	}

	if err := it.Error(); err != nil {
		return fmt.Errorf("list pages: %w", err)
	}

	return nil
}

func toResult(page *bookmark.Page) Result {
	return Result{
		ID:          page.ID,
		Title:       page.Title,
		URL:         page.URL,
		Description: page.Description,
		CreatedAt:   page.CreatedAt,
	}
}
