/*
	queue package defines the job queue connecting the page store to the
	fetch and index stages. Using an explicit queue instead of implicit
	store-level triggers keeps retry, ordering and backpressure under
	the application's control.
*/

package queue

import "github.com/google/uuid"

// Kind identifies the stage a job is destined for.
type Kind uint8

const (
	// KindFetch requests that a page's content be fetched and saved.
	KindFetch Kind = iota

	// KindIndex requests that a page's saved content be (re)indexed.
	KindIndex

	// KindDeindex requests that all of a page's postings be removed.
	KindDeindex
)

// Job describes a unit of pipeline work for a single page. The page
// record itself stays the source of truth for content: index jobs carry
// only the page identity and the consumer loads the current content
// from the page store.
type Job struct {
	Kind   Kind
	Owner  string
	PageID uuid.UUID
	URL    string // only populated for fetch jobs
}

// Queue should be implemented by types that can serve as job queues.
type Queue interface {
	// Enqueue adds a new job at the end of the queue.
	Enqueue(job Job) error

	// PendingJobs checks the queue for unconsumed jobs.
	PendingJobs() bool

	// DiscardJobs drops all unconsumed jobs from the queue.
	DiscardJobs() error

	// Jobs returns an iterator of queued jobs.
	Jobs() Iterator

	// Close releases all resources consumed by the queue.
	Close() error
}

// Iterator should be embedded / implemented by types that require
// iteration functionality.
type Iterator interface {
	// Next loads the next item, returns false when no more items
	// are available or when an error occurs.
	Next() bool

	// Job returns the current job from the result set.
	Job() Job

	// Error returns the last error encountered by the iterator.
	Error() error
}
