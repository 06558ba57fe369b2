package indexer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/ikumen/read-it-later/bookmark"
	"github.com/ikumen/read-it-later/queue"
)

// PageAPI defines a minimum set of API methods for loading saved pages
// prior to indexing.
type PageAPI interface {
	// FindPage looks up a page by its ID.
	FindPage(id uuid.UUID) (*bookmark.Page, error)
}

// IndexAPI defines a minimum set of API methods for maintaining the
// posting records of a page.
type IndexAPI interface {
	// IndexPage replaces the posting records for a page with the postings
	// derived from the provided content.
	IndexPage(ctx context.Context, owner string, pageID uuid.UUID, title, text string) error

	// RemovePage deletes all posting records for a page.
	RemovePage(ctx context.Context, owner string, pageID uuid.UUID) error
}

// Config defines configurations for the indexer service.
type Config struct {
	// API for interacting with the page store.
	PageAPI PageAPI

	// API for maintaining posting records.
	IndexAPI IndexAPI

	// The queue of pending index and de-index jobs consumed by this service.
	IndexQueue queue.Queue

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The duration between subsequent index passes.
	PollInterval time.Duration

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.PageAPI == nil {
		err = multierror.Append(err, fmt.Errorf("page API not provided"))
	}

	if config.IndexAPI == nil {
		err = multierror.Append(err, fmt.Errorf("index API not provided"))
	}

	if config.IndexQueue == nil {
		err = multierror.Append(err, fmt.Errorf("index queue not provided"))
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.PollInterval == 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for poll interval"))
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
