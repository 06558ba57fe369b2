package queue_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ikumen/read-it-later/queue"
)

func TestJobEnqueueDequeueAndIteration(t *testing.T) {
	q := queue.NewInMemoryQueue()

	pageIDs := make([]uuid.UUID, 10)
	for i := 0; i < 10; i++ {
		pageIDs[i] = uuid.New()

		err := q.Enqueue(queue.Job{
			Kind:   queue.KindIndex,
			Owner:  "user-1",
			PageID: pageIDs[i],
		})
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	}

	// Assert on pending jobs.
	if !q.PendingJobs() {
		t.Error("Expected queue to have pending jobs but got none")
	}

	// Assert that the jobs are dequeued in the order they were produced.
	var (
		it             = q.Jobs()
		numOfProcessed int
	)

	for jobIdx := 0; it.Next(); jobIdx++ {
		if got := it.Job().PageID; got != pageIDs[jobIdx] {
			t.Errorf("Expected job for page %s, but got %s instead", pageIDs[jobIdx], got)
		}

		numOfProcessed++
	}

	if numOfProcessed != 10 {
		t.Errorf(
			"Expected %d jobs, but got %d jobs instead",
			10,
			numOfProcessed,
		)
	}

	// Assert that the iterator didn't encounter any errors during iteration.
	if err := it.Error(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if err := q.Enqueue(queue.Job{Kind: queue.KindFetch}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	// Discard pending jobs.
	if err := q.DiscardJobs(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	// Assert on pending jobs.
	if q.PendingJobs() {
		t.Error("Expected queue to have 0 pending jobs")
	}

	if err := q.Close(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
