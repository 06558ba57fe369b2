package fetcher

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ikumen/read-it-later/queue"
)

// Service represents a content-fetcher service for the read-it-later
// application. It satisfies the service.Service interface.
type Service struct {
	config Config
}

// New creates and returns a fully configured content-fetcher service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("fetcher service: config validation failed: %w", err)
	}

	return &Service{config: config}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "fetcher" }

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
			if err := svc.fetchPending(ctx); err != nil {
				return err
			}
		}
	}
}

// fetchPending drains the fetch queue, saving the extracted content for
// each queued page and publishing a follow-up index job. Failures for
// individual pages are logged and skipped so that one unreachable URL
// cannot stall the rest of the queue.
func (svc *Service) fetchPending(ctx context.Context) error {
	if !svc.config.FetchQueue.PendingJobs() {
		return nil
	}

	it := svc.config.FetchQueue.Jobs()
	for it.Next() {
		if ctx.Err() != nil {
			return nil
		}

		job := it.Job()
		if err := svc.fetchPage(job); err != nil {
			svc.config.Logger.WithFields(logrus.Fields{
				"owner":   job.Owner,
				"page_id": job.PageID.String(),
				"url":     job.URL,
			}).WithError(err).Warn("unable to fetch page content")
		}
	}

	if err := it.Error(); err != nil {
		return fmt.Errorf("fetcher: unable to consume fetch queue: %w", err)
	}

	return nil
}

func (svc *Service) fetchPage(job queue.Job) error {
	content, err := svc.config.FetchAPI.Fetch(job.URL)
	if err != nil {
		return err
	}

	err = svc.config.PageAPI.UpdateContent(
		job.PageID, content.Title, content.Description, content.Text,
	)
	if err != nil {
		return fmt.Errorf("unable to save page content: %w", err)
	}

	return svc.config.IndexQueue.Enqueue(queue.Job{
		Kind:   queue.KindIndex,
		Owner:  job.Owner,
		PageID: job.PageID,
	})
}
