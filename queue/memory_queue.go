package queue

import "sync"

// Static and compile-time check to ensure inMemoryQueue implements
// Queue interface.
var _ Queue = (*inMemoryQueue)(nil)

// inMemoryQueue stores jobs in memory and dequeues them in FIFO order.
// Jobs can be enqueued concurrently but the returned iterator is not
// safe for concurrent access.
type inMemoryQueue struct {
	mu   sync.Mutex
	jobs []Job
	job  Job
}

// NewInMemoryQueue creates a new in-memory job queue instance.
func NewInMemoryQueue() Queue {
	return &inMemoryQueue{}
}

// Enqueue adds a new job at the end of the queue.
func (q *inMemoryQueue) Enqueue(job Job) error {
	q.mu.Lock()

	q.jobs = append(q.jobs, job)

	q.mu.Unlock()

	return nil
}

// PendingJobs checks the queue for unconsumed jobs.
func (q *inMemoryQueue) PendingJobs() bool {
	q.mu.Lock()

	pending := len(q.jobs) != 0

	q.mu.Unlock()

	return pending
}

// DiscardJobs drops all unconsumed jobs from the queue.
func (q *inMemoryQueue) DiscardJobs() error {
	q.mu.Lock()

	q.jobs = q.jobs[:0]
	q.job = Job{}

	q.mu.Unlock()

	return nil
}

// Jobs returns an iterator of queued jobs.
func (q *inMemoryQueue) Jobs() Iterator {
	return q
}

// Close releases all resources consumed by the queue.
func (q *inMemoryQueue) Close() error {
	return nil
}

// Next loads the next item, returns false when no more items
// are available or when an error occurs.
func (q *inMemoryQueue) Next() bool {
	q.mu.Lock()

	if len(q.jobs) == 0 {
		q.mu.Unlock()

		return false
	}

	// Dequeue from the front of the queue: pipeline jobs for the same
	// page must be consumed in the order they were produced.
	q.job = q.jobs[0]
	q.jobs = q.jobs[1:]

	q.mu.Unlock()

	return true
}

// Job returns the current job from the result set.
func (q *inMemoryQueue) Job() Job {
	q.mu.Lock()

	job := q.job

	q.mu.Unlock()

	return job
}

// Error returns the last error encountered by the iterator.
func (q *inMemoryQueue) Error() error {
	return nil
}
