package cdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/ikumen/read-it-later/bookmark"
)

// Expected schema:
//
//	CREATE TABLE IF NOT EXISTS pages (
//		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//		owner STRING NOT NULL,
//		url STRING NOT NULL,
//		title STRING NOT NULL DEFAULT '',
//		description STRING NOT NULL DEFAULT '',
//		page_text STRING NOT NULL DEFAULT '',
//		created_at TIMESTAMPTZ NOT NULL,
//		INDEX (owner, created_at DESC)
//	);
var (
	createPageQuery = `
					INSERT INTO pages (owner, url, created_at)
					VALUES ($1, $2, $3)
					RETURNING id
					`
	updateContentQuery = `
					UPDATE pages SET title=$2, description=$3, page_text=$4
					WHERE id=$1
					`
	findPageQuery = `
					SELECT id, owner, url, title, description, page_text, created_at
					FROM pages WHERE id=$1
					`
	listPagesQuery = `
					SELECT id, owner, url, title, description, page_text, created_at
					FROM pages WHERE owner=$1
					ORDER BY created_at DESC, id
					LIMIT $2
					`
	listPagesAfterQuery = `
					SELECT id, owner, url, title, description, page_text, created_at
					FROM pages
					WHERE owner=$1 AND
						(created_at < $2 OR (created_at = $2 AND id > $3))
					ORDER BY created_at DESC, id
					LIMIT $4
					`
	cursorCreatedAtQuery = "SELECT created_at FROM pages WHERE owner=$1 AND id=$2"

	deletePageQuery = "DELETE FROM pages WHERE owner=$1 AND id=$2"
)

// Timeout for individual store operations.
const opTimeout = 5 * time.Second

// Static and compile-time check to ensure CockroachDBStore implements
// bookmark.Store interface.
var _ bookmark.Store = (*CockroachDBStore)(nil)

// CockroachDBStore implements a persistent page store using a
// CockroachDB instance.
type CockroachDBStore struct {
	db *sql.DB
}

// NewCockroachDBStore returns a CockroachDBStore instance.
func NewCockroachDBStore(dsn string) (*CockroachDBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &CockroachDBStore{db}, nil
}

// Close terminates the connection to the cockroachDB instance.
func (s *CockroachDBStore) Close() error {
	return s.db.Close()
}

// CreatePage persists a new url-only page, assigning its ID and
// creation timestamp.
func (s *CockroachDBStore) CreatePage(page *bookmark.Page) error {
	if page.Owner == "" {
		return fmt.Errorf("create page: %w", bookmark.ErrMissingOwner)
	}

	if page.CreatedAt.IsZero() {
		page.CreatedAt = time.Now()
	}
	page.CreatedAt = page.CreatedAt.UTC()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := s.db.QueryRowContext(
		ctx, createPageQuery, page.Owner, page.URL, page.CreatedAt,
	).Scan(&page.ID)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}

	return nil
}

// UpdateContent sets the title, description and extracted text of an
// existing page.
func (s *CockroachDBStore) UpdateContent(
	id uuid.UUID, title, description, text string,
) error {

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, updateContentQuery, id, title, description, text)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}

	if numOfRows, err := res.RowsAffected(); err == nil && numOfRows == 0 {
		return fmt.Errorf("update content: %w", bookmark.ErrNotFound)
	}

	return nil
}

// FindPage performs a page lookup by id.
func (s *CockroachDBStore) FindPage(id uuid.UUID) (*bookmark.Page, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	p := new(bookmark.Page)

	err := s.db.QueryRowContext(ctx, findPageQuery, id).Scan(
		&p.ID, &p.Owner, &p.URL, &p.Title, &p.Description, &p.Text, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find page: %w", bookmark.ErrNotFound)
		}

		return nil, fmt.Errorf("find page: %w", err)
	}

	p.CreatedAt = p.CreatedAt.UTC()

	return p, nil
}

// ListPages returns an iterator for a set of pages belonging to the
// specified owner, ordered by their creation time in descending order.
// If [startAt] is a non-nil page ID, iteration resumes strictly after
// that page's position in the ordering.
func (s *CockroachDBStore) ListPages(
	owner string, startAt uuid.UUID, limit int,
) (bookmark.PageIterator, error) {

	var (
		rows *sql.Rows
		err  error
	)

	if startAt == uuid.Nil {
		rows, err = s.db.Query(listPagesQuery, owner, limit)
	} else {
		// Resolve the cursor page to its position in the [created_at desc]
		// ordering first, then fetch the pages strictly after it. A cursor
		// pointing to a deleted / unknown page yields an empty result set.
		var cursorCreatedAt time.Time

		err = s.db.QueryRow(cursorCreatedAtQuery, owner, startAt).Scan(&cursorCreatedAt)
		if err == sql.ErrNoRows {
			return &pageIterator{}, nil
		} else if err != nil {
			return nil, fmt.Errorf("list pages: %w", err)
		}

		rows, err = s.db.Query(
			listPagesAfterQuery, owner, cursorCreatedAt.UTC(), startAt, limit,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	return &pageIterator{rows: rows}, nil
}

// DeletePage removes a page from the specified owner's partition.
func (s *CockroachDBStore) DeletePage(owner string, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, deletePageQuery, owner, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}

	if numOfRows, err := res.RowsAffected(); err == nil && numOfRows == 0 {
		return fmt.Errorf("delete page: %w", bookmark.ErrNotFound)
	}

	return nil
}
