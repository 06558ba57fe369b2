package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ikumen/read-it-later/bookmark"
	"github.com/ikumen/read-it-later/queue"
)

// Service represents an indexer service for the read-it-later
// application. It satisfies the service.Service interface.
type Service struct {
	config Config
}

// New creates and returns a fully configured indexer service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("indexer service: config validation failed: %w", err)
	}

	return &Service{config: config}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "indexer" }

// Run executes the service and blocks until the context gets cancelled
// or an error occurs.
func (svc *Service) Run(ctx context.Context) error {
	svc.config.Logger.WithField(
		"poll_interval", svc.config.PollInterval.String(),
	).Info("starting service")
	defer svc.config.Logger.Info("stopped service")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-svc.config.Clock.After(svc.config.PollInterval):
			if err := svc.indexPending(ctx); err != nil {
				return err
			}
		}
	}
}

// indexPending drains the index queue, re-building the posting records
// for each queued page. Failures for individual pages are logged and
// skipped so that one bad page cannot stall the rest of the queue.
func (svc *Service) indexPending(ctx context.Context) error {
	if !svc.config.IndexQueue.PendingJobs() {
		return nil
	}

	it := svc.config.IndexQueue.Jobs()
	for it.Next() {
		if ctx.Err() != nil {
			return nil
		}

		job := it.Job()
		if err := svc.processJob(ctx, job); err != nil {
			svc.config.Logger.WithFields(logrus.Fields{
				"owner":   job.Owner,
				"page_id": job.PageID.String(),
			}).WithError(err).Warn("unable to process index job")
		}
	}

	if err := it.Error(); err != nil {
		return fmt.Errorf("indexer: unable to consume index queue: %w", err)
	}

	return nil
}

func (svc *Service) processJob(ctx context.Context, job queue.Job) error {
	switch job.Kind {
	case queue.KindIndex:
		page, err := svc.config.PageAPI.FindPage(job.PageID)
		if err != nil {
			// The page may have been deleted after the job was queued. The
			// de-index job that accompanies a deletion takes care of any
			// postings the page left behind.
			if errors.Is(err, bookmark.ErrNotFound) {
				svc.config.Logger.WithFields(logrus.Fields{
					"owner":   job.Owner,
					"page_id": job.PageID.String(),
				}).Debug("skipping index job for deleted page")

				return nil
			}

			return fmt.Errorf("unable to load page: %w", err)
		}

		return svc.config.IndexAPI.IndexPage(
			ctx, job.Owner, job.PageID, page.Title, page.Text,
		)
	case queue.KindDeindex:
		return svc.config.IndexAPI.RemovePage(ctx, job.Owner, job.PageID)
	default:
		return fmt.Errorf("unsupported job kind: %d", job.Kind)
	}
}
