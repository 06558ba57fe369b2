/*
	indexer package maintains the inverted search index. The Writer
	tokenizes a page's title and text, diffs the resulting term set
	against the terms the page was previously indexed under, and applies
	the difference to the posting store as a sequence of bounded batch
	commits.
*/

package indexer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/ikumen/read-it-later/index"
	"github.com/ikumen/read-it-later/tokenizer"
)

// Config defines configurations for the posting writer.
type Config struct {
	// Store is the posting store mutations are committed to.
	Store index.Store

	// BatchSize caps the number of mutations per commit. If not
	// specified, index.MaxBatchSize is used instead. Values above
	// index.MaxBatchSize are rejected since the store would refuse
	// the resulting batches.
	BatchSize int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.Store == nil {
		err = multierror.Append(err, fmt.Errorf("posting store not provided"))
	}

	if config.BatchSize == 0 {
		config.BatchSize = index.MaxBatchSize
	}

	if config.BatchSize < 0 || config.BatchSize > index.MaxBatchSize {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for batch size, must be in (0, %d]", index.MaxBatchSize,
		))
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Writer maintains term -> page postings for indexed pages. Writers for
// different pages may run in parallel; operations targeting the same
// page are serialized internally so that interleaved delete / upsert
// sequences from concurrent re-indexes cannot corrupt the posting set.
type Writer struct {
	config    Config
	pageLocks *keyedMutex
}

// NewWriter creates and returns a fully configured posting writer.
func NewWriter(config Config) (*Writer, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("posting writer: config validation failed: %w", err)
	}

	return &Writer{
		config:    config,
		pageLocks: newKeyedMutex(),
	}, nil
}

// IndexPage makes the page searchable under the terms occurring in its
// title and text, fully replacing any postings from a previous index
// pass. it's idempotent: re-indexing identical content yields an
// identical posting set, which makes at-least-once ingestion triggers
// safe.
//
// Batches are committed sequentially; a failed batch is recorded and
// does not block submission of the remaining batches. The returned
// error accumulates every failed batch, so a non-nil result with
// committed batches represents a partial failure, not a rollback.
func (w *Writer) IndexPage(
	ctx context.Context, owner string, pageID uuid.UUID, title, text string,
) error {

	if owner == "" {
		return fmt.Errorf("index page: %w", index.ErrMissingOwner)
	}
	if pageID == uuid.Nil {
		return fmt.Errorf("index page: %w", index.ErrMissingPageID)
	}

	unlock := w.pageLocks.lock(owner + "/" + pageID.String())
	defer unlock()

	terms := tokenizer.Tokenize(strings.Join([]string{title, text}, " "))

	// Diff against the page's previous term set so postings for terms
	// that no longer occur are removed instead of left stale.
	prevTerms, err := w.config.Store.TermsForPage(owner, pageID)
	if err != nil {
		return fmt.Errorf("index page: %w", err)
	}

	var staleKeys []index.PostingKey
	for _, term := range prevTerms {
		if _, stillPresent := terms[term]; !stillPresent {
			staleKeys = append(staleKeys, index.PostingKey{
				Owner:  owner,
				Term:   term,
				PageID: pageID,
			})
		}
	}

	postings := make([]index.Posting, 0, len(terms))
	for term, count := range terms {
		postings = append(postings, index.Posting{
			Owner:  owner,
			Term:   term,
			PageID: pageID,
			Count:  count,
		})
	}

	var indexErr error

	// Deletes go first: a crash between the two phases leaves the index
	// briefly incomplete rather than stale.
	if err := w.commitDeletes(ctx, owner, pageID, staleKeys); err != nil {
		indexErr = multierror.Append(indexErr, err)
	}

	if err := w.commitUpserts(ctx, owner, pageID, postings); err != nil {
		indexErr = multierror.Append(indexErr, err)
	}

	if indexErr != nil {
		return fmt.Errorf("index page: %w", indexErr)
	}

	return nil
}

// RemovePage deletes every posting of the specified page. it's the
// index side of the page-deletion cascade.
func (w *Writer) RemovePage(
	ctx context.Context, owner string, pageID uuid.UUID,
) error {

	if owner == "" {
		return fmt.Errorf("remove page: %w", index.ErrMissingOwner)
	}
	if pageID == uuid.Nil {
		return fmt.Errorf("remove page: %w", index.ErrMissingPageID)
	}

	unlock := w.pageLocks.lock(owner + "/" + pageID.String())
	defer unlock()

	terms, err := w.config.Store.TermsForPage(owner, pageID)
	if err != nil {
		return fmt.Errorf("remove page: %w", err)
	}

	keys := make([]index.PostingKey, 0, len(terms))
	for _, term := range terms {
		keys = append(keys, index.PostingKey{
			Owner:  owner,
			Term:   term,
			PageID: pageID,
		})
	}

	if err := w.commitDeletes(ctx, owner, pageID, keys); err != nil {
		return fmt.Errorf("remove page: %w", err)
	}

	return nil
}

// commitUpserts partitions postings into batches bounded by the
// configured batch size and commits them in sequence. Batch N+1 is not
// constructed before batch N's outcome is known. A non-empty trailing
// batch smaller than the cap is always committed.
func (w *Writer) commitUpserts(
	ctx context.Context, owner string, pageID uuid.UUID, postings []index.Posting,
) error {

	var err error

	for batchIdx := 0; len(postings) > 0; batchIdx++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return multierror.Append(err, ctxErr)
		}

		batch := postings
		if len(batch) > w.config.BatchSize {
			batch = batch[:w.config.BatchSize]
		}
		postings = postings[len(batch):]

		if commitErr := w.config.Store.UpsertBatch(batch); commitErr != nil {
			// Record the failed batch with enough context for a later
			// re-index and move on to the next batch.
			w.config.Logger.WithFields(logrus.Fields{
				"owner":      owner,
				"page":       pageID,
				"batch":      batchIdx,
				"batch_size": len(batch),
				"err":        commitErr,
			}).Warn("posting upsert batch failed")

			err = multierror.Append(
				err, fmt.Errorf("upsert batch %d: %w", batchIdx, commitErr),
			)
		}
	}

	return err
}

// commitDeletes is the delete-side counterpart of commitUpserts with
// the same batching and failure semantics.
func (w *Writer) commitDeletes(
	ctx context.Context, owner string, pageID uuid.UUID, keys []index.PostingKey,
) error {

	var err error

	for batchIdx := 0; len(keys) > 0; batchIdx++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return multierror.Append(err, ctxErr)
		}

		batch := keys
		if len(batch) > w.config.BatchSize {
			batch = batch[:w.config.BatchSize]
		}
		keys = keys[len(batch):]

		if commitErr := w.config.Store.DeleteBatch(batch); commitErr != nil {
			w.config.Logger.WithFields(logrus.Fields{
				"owner":      owner,
				"page":       pageID,
				"batch":      batchIdx,
				"batch_size": len(batch),
				"err":        commitErr,
			}).Warn("posting delete batch failed")

			err = multierror.Append(
				err, fmt.Errorf("delete batch %d: %w", batchIdx, commitErr),
			)
		}
	}

	return err
}
