package fetcher

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	content_fetcher "github.com/ikumen/read-it-later/fetcher"
	"github.com/ikumen/read-it-later/queue"
)

// PageAPI defines a minimum set of API methods for updating saved pages
// with their fetched content.
type PageAPI interface {
	// UpdateContent saves the fetched title, description and text for an
	// existing page.
	UpdateContent(id uuid.UUID, title, description, text string) error
}

// FetchAPI defines a minimum set of API methods for retrieving and
// extracting page content.
type FetchAPI interface {
	// Fetch retrieves the document at the provided url and extracts its
	// readable content.
	Fetch(url string) (*content_fetcher.Content, error)
}

// Config defines configurations for the content-fetcher service.
type Config struct {
	// API for interacting with the page store.
	PageAPI PageAPI

	// API for retrieving and extracting page content. If not specified,
	// a default fetcher backed by http.DefaultClient will be used instead.
	FetchAPI FetchAPI

	// The queue of pending fetch jobs consumed by this service.
	FetchQueue queue.Queue

	// The queue that index jobs get published to once a page's content
	// has been saved.
	IndexQueue queue.Queue

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The duration between subsequent fetch passes.
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

	if config.FetchAPI == nil {
		config.FetchAPI = content_fetcher.New(nil, content_fetcher.DefaultMaxDescriptionLength)
	}

	if config.FetchQueue == nil {
		err = multierror.Append(err, fmt.Errorf("fetch queue not provided"))
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
