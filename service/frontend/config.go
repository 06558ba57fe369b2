package frontend

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/ikumen/read-it-later/bookmark"
	"github.com/ikumen/read-it-later/queue"
	"github.com/ikumen/read-it-later/searcher"
)

const (
	defaultNumOfResultsPerPage = 10

	// defaultOwner partitions requests that carry no owner header.
	defaultOwner = "default"
)

// PageAPI defines a minimum set of API methods for adding and removing
// pages in the page store.
type PageAPI interface {
	// CreatePage persists a new url-only page, assigning its ID and
	// creation timestamp.
	CreatePage(page *bookmark.Page) error

	// DeletePage removes a page from the specified owner's partition.
	DeletePage(owner string, id uuid.UUID) error
}

// SearchAPI defines a minimum set of API methods for resolving search
// and listing requests.
type SearchAPI interface {
	// Search resolves up to [limit] results for the owner's query.
	Search(owner, term string, startAt uuid.UUID, limit int) (*searcher.Results, error)
}

// Config defines configurations for the front-end service.
type Config struct {
	// API for inserting and removing pages in the page store.
	PageAPI PageAPI

	// API for resolving search and listing requests.
	SearchAPI SearchAPI

	// The queue that fetch jobs get published to when a page is
	// bookmarked.
	FetchQueue queue.Queue

	// The queue that de-index jobs get published to when a page is
	// deleted.
	IndexQueue queue.Queue

	// Address to listen for incoming requests.
	ListenAddr string

	// The host name this application serves on. Bookmarks pointing back
	// at this host get rejected. If not specified, the self-host check
	// is disabled.
	SelfHost string

	// Number of results per page. If not specified, a default value of 10
	// results per page will be used instead.
	NumOfResultsPerPage int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.PageAPI == nil {
		err = multierror.Append(err, fmt.Errorf("page API not provided"))
	}

	if config.SearchAPI == nil {
		err = multierror.Append(err, fmt.Errorf("search API not provided"))
	}

	if config.FetchQueue == nil {
		err = multierror.Append(err, fmt.Errorf("fetch queue not provided"))
	}

	if config.IndexQueue == nil {
		err = multierror.Append(err, fmt.Errorf("index queue not provided"))
	}

	if config.ListenAddr == "" {
		err = multierror.Append(err, fmt.Errorf("listen address not provided"))
	}

	if config.NumOfResultsPerPage <= 0 {
		config.NumOfResultsPerPage = defaultNumOfResultsPerPage
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
