package cdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/ikumen/read-it-later/index"
)

// Expected schema:
//
//	CREATE TABLE IF NOT EXISTS postings (
//		owner STRING NOT NULL,
//		term STRING NOT NULL,
//		page_id UUID NOT NULL,
//		count INT NOT NULL,
//		PRIMARY KEY (owner, term, page_id),
//		INDEX (owner, term, count DESC),
//		INDEX (owner, page_id)
//	);
var (
	upsertPostingQuery = `
					INSERT INTO postings (owner, term, page_id, count)
					VALUES ($1, $2, $3, $4)
					ON CONFLICT (owner, term, page_id)
					DO UPDATE SET count=$4
					`
	deletePostingQuery = "DELETE FROM postings WHERE owner=$1 AND term=$2 AND page_id=$3"

	postingsForTermQuery = `
					SELECT owner, term, page_id, count FROM postings
					WHERE owner=$1 AND term=$2
					ORDER BY count DESC, page_id
					LIMIT $3
					`
	postingsForTermAfterQuery = `
					SELECT owner, term, page_id, count FROM postings
					WHERE owner=$1 AND term=$2 AND
						(count < $3 OR (count = $3 AND page_id > $4))
					ORDER BY count DESC, page_id
					LIMIT $5
					`
	cursorCountQuery = "SELECT count FROM postings WHERE owner=$1 AND term=$2 AND page_id=$3"

	termsForPageQuery = "SELECT term FROM postings WHERE owner=$1 AND page_id=$2 ORDER BY term"
)

// Timeout for individual batch commits and lookups. A batch commit that
// exceeds it fails as a whole and surfaces to the posting writer as a
// partial-failure outcome.
const opTimeout = 5 * time.Second

// Static and compile-time check to ensure CockroachDBIndex implements
// index.Store interface.
var _ index.Store = (*CockroachDBIndex)(nil)

// CockroachDBIndex implements a persistent posting store using a
// CockroachDB instance.
type CockroachDBIndex struct {
	db *sql.DB
}

// NewCockroachDBIndex returns a CockroachDBIndex instance.
func NewCockroachDBIndex(dsn string) (*CockroachDBIndex, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &CockroachDBIndex{db}, nil
}

// Close terminates the connection to the cockroachDB instance.
func (s *CockroachDBIndex) Close() error {
	return s.db.Close()
}

// UpsertBatch writes the provided postings in a single atomic commit,
// overwriting the counts of any postings that already exist.
func (s *CockroachDBIndex) UpsertBatch(postings []index.Posting) error {
	if len(postings) > index.MaxBatchSize {
		return fmt.Errorf("upsert batch: %w", index.ErrBatchTooLarge)
	}

	for _, p := range postings {
		if p.Owner == "" {
			return fmt.Errorf("upsert batch: %w", index.ErrMissingOwner)
		}
		if p.PageID == uuid.Nil {
			return fmt.Errorf("upsert batch: %w", index.ErrMissingPageID)
		}
	}

	return s.inTx(func(tx *sql.Tx) error {
		for _, p := range postings {
			if _, err := tx.Exec(
				upsertPostingQuery, p.Owner, p.Term, p.PageID, p.Count,
			); err != nil {

				return err
			}
		}

		return nil
	}, "upsert batch")
}

// DeleteBatch removes the postings identified by the provided keys in a
// single atomic commit. Keys without a matching posting are ignored.
func (s *CockroachDBIndex) DeleteBatch(keys []index.PostingKey) error {
	if len(keys) > index.MaxBatchSize {
		return fmt.Errorf("delete batch: %w", index.ErrBatchTooLarge)
	}

	return s.inTx(func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.Exec(
				deletePostingQuery, key.Owner, key.Term, key.PageID,
			); err != nil {

				return err
			}
		}

		return nil
	}, "delete batch")
}

// PostingsForTerm returns an iterator for the term's posting list,
// ordered by occurrence count in descending order. If [startAt] is a
// non-nil page ID, it is resolved to its position in the ordering first
// and iteration resumes strictly after it.
func (s *CockroachDBIndex) PostingsForTerm(
	owner, term string, startAt uuid.UUID, limit int,
) (index.Iterator, error) {

	var (
		rows *sql.Rows
		err  error
	)

	if startAt == uuid.Nil {
		rows, err = s.db.Query(postingsForTermQuery, owner, term, limit)
	} else {
		// Resolve the cursor posting to its position in the [count desc]
		// ordering first, then fetch the postings strictly after it. A
		// cursor pointing to a deleted / unknown posting yields an empty
		// result set.
		var cursorCount int

		err = s.db.QueryRow(cursorCountQuery, owner, term, startAt).Scan(&cursorCount)
		if err == sql.ErrNoRows {
			return &postingIterator{}, nil
		} else if err != nil {
			return nil, fmt.Errorf("postings for term: %w", err)
		}

		rows, err = s.db.Query(
			postingsForTermAfterQuery, owner, term, cursorCount, startAt, limit,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("postings for term: %w", err)
	}

	return &postingIterator{rows: rows}, nil
}

// TermsForPage returns the set of terms the specified page is currently
// indexed under.
func (s *CockroachDBIndex) TermsForPage(
	owner string, pageID uuid.UUID,
) ([]string, error) {

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, termsForPageQuery, owner, pageID)
	if err != nil {
		return nil, fmt.Errorf("terms for page: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("terms for page: %w", err)
		}

		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("terms for page: %w", err)
	}

	return terms, nil
}

// inTx runs fn inside a transaction bounded by the operation timeout,
// committing on success and rolling back on failure.
func (s *CockroachDBIndex) inTx(fn func(tx *sql.Tx) error, op string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
