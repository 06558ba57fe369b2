/*
	index package defines the posting model for the inverted search
	index and the behavior of posting data stores. A posting associates
	a normalized term with a page and the number of times the term
	occurs on that page. Postings are partitioned per owner.
*/

package index

import "github.com/google/uuid"

// MaxBatchSize is the maximum number of mutations a store accepts in a
// single batch commit. it mirrors the per-commit cap imposed by the
// hosted document stores this posting layout was originally designed
// around.
const MaxBatchSize = 500

// Store should be implemented by posting data stores / types.
type Store interface {
	// UpsertBatch writes the provided postings in a single atomic
	// commit, overwriting the counts of any postings that already
	// exist. Batches larger than MaxBatchSize are rejected with
	// ErrBatchTooLarge before any mutation takes place.
	UpsertBatch(postings []Posting) error

	// DeleteBatch removes the postings identified by the provided keys
	// in a single atomic commit. Keys without a matching posting are
	// ignored. Batches larger than MaxBatchSize are rejected with
	// ErrBatchTooLarge.
	DeleteBatch(keys []PostingKey) error

	// PostingsForTerm returns an iterator for the term's posting list,
	// ordered by occurrence count in descending order. If [startAt] is
	// a non-nil page ID, it is resolved to its position in the ordering
	// first and iteration resumes strictly after it. An unknown
	// [startAt] page yields an empty iterator.
	//
	// No secondary ordering is part of the contract: the relative order
	// of postings with equal counts is store-defined and must be treated
	// as unstable by callers.
	PostingsForTerm(owner, term string, startAt uuid.UUID, limit int) (Iterator, error)

	// TermsForPage returns the set of terms the specified page is
	// currently indexed under. it supports reindex diffing and the
	// page-deletion cascade.
	TermsForPage(owner string, pageID uuid.UUID) ([]string, error)
}

// Iterator is implemented by types that iterate postings.
type Iterator interface {
	// Next loads the next item, returns false when no more postings
	// are available or when an error occurs.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources allocated to the iterator.
	Close() error

	// Posting returns the currently fetched posting object.
	Posting() *Posting
}

// Posting represents a single term -> page association. it serves as a
// model / schema object.
type Posting struct {
	Owner  string    // Owner partition the posting belongs to
	Term   string    // Normalized term
	PageID uuid.UUID // Page the term occurs on
	Count  int       // Occurrences of the term across the page title and text
}

// PostingKey identifies a single posting within an owner's partition.
type PostingKey struct {
	Owner  string
	Term   string
	PageID uuid.UUID
}

// Key returns the identifying key of a posting.
func (p *Posting) Key() PostingKey {
	return PostingKey{Owner: p.Owner, Term: p.Term, PageID: p.PageID}
}
