package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/juju/clock/testclock"
	check "gopkg.in/check.v1"

	content_fetcher "github.com/ikumen/read-it-later/fetcher"
	"github.com/ikumen/read-it-later/queue"
	"github.com/ikumen/read-it-later/service/fetcher/mocks"
)

var _ = check.Suite(new(ConfigTestSuite))
var _ = check.Suite(new(FetcherServiceTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type ConfigTestSuite struct{}

func (s *ConfigTestSuite) TestConfigValidation(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	originalConfig := Config{
		PageAPI:      mocks.NewMockPageAPI(ctrl),
		FetchAPI:     mocks.NewMockFetchAPI(ctrl),
		FetchQueue:   queue.NewInMemoryQueue(),
		IndexQueue:   queue.NewInMemoryQueue(),
		PollInterval: time.Minute,
	}

	config := originalConfig
	c.Assert(config.validate(), check.IsNil)

	c.Assert(config.Clock, check.Not(check.IsNil), check.Commentf("default clock was not assigned"))
	c.Assert(config.Logger, check.Not(check.IsNil), check.Commentf("default logger was not assigned"))

	config = originalConfig
	config.FetchAPI = nil
	c.Assert(config.validate(), check.IsNil)
	c.Assert(config.FetchAPI, check.Not(check.IsNil), check.Commentf("default fetcher was not assigned"))

	config = originalConfig
	config.PageAPI = nil
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*page API not provided.*")

	config = originalConfig
	config.FetchQueue = nil
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*fetch queue not provided.*")

	config = originalConfig
	config.IndexQueue = nil
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*index queue not provided.*")

	config = originalConfig
	config.PollInterval = 0
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*invalid value for poll interval.*")
}

type FetcherServiceTestSuite struct{}

func (s *FetcherServiceTestSuite) TestFullRun(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	mockPages := mocks.NewMockPageAPI(ctrl)
	mockFetch := mocks.NewMockFetchAPI(ctrl)
	clk := testclock.NewClock(time.Now())

	fetchQueue := queue.NewInMemoryQueue()
	indexQueue := queue.NewInMemoryQueue()

	config := Config{
		PageAPI:      mockPages,
		FetchAPI:     mockFetch,
		FetchQueue:   fetchQueue,
		IndexQueue:   indexQueue,
		Clock:        clk,
		PollInterval: time.Minute,
	}

	svc, err := New(config)
	c.Assert(err, check.IsNil)

	pageID := uuid.New()
	c.Assert(fetchQueue.Enqueue(queue.Job{
		Kind:   queue.KindFetch,
		Owner:  "owner-1",
		PageID: pageID,
		URL:    "https://example.com/article",
	}), check.IsNil)

	mockFetch.EXPECT().Fetch("https://example.com/article").Return(&content_fetcher.Content{
		Title:       "Example article",
		Description: "A short summary.",
		Text:        "A short summary. The rest of the article text.",
	}, nil)
	mockPages.EXPECT().UpdateContent(
		pageID, "Example article", "A short summary.",
		"A short summary. The rest of the article text.",
	).Return(nil)

	ctx, cancelFn := context.WithCancel(context.TODO())
	defer cancelFn()

	go func() {
		// Wait until the main loop calls time.After (or timeout if 10
		// sec elapse) and advance the time to trigger a new fetch pass.
		c.Assert(clk.WaitAdvance(time.Minute, 10*time.Second, 1), check.IsNil)

		// Wait until the main loop calls time.After again and cancel
		// the context.
		c.Assert(clk.WaitAdvance(time.Millisecond, 10*time.Second, 1), check.IsNil)
		cancelFn()
	}()

	// Enter the blocking main loop.
	err = svc.Run(ctx)
	c.Assert(err, check.IsNil)

	// The fetched page should have been forwarded to the index queue.
	c.Assert(indexQueue.PendingJobs(), check.Equals, true)

	it := indexQueue.Jobs()
	c.Assert(it.Next(), check.Equals, true)

	job := it.Job()
	c.Assert(job.Kind, check.Equals, queue.KindIndex)
	c.Assert(job.Owner, check.Equals, "owner-1")
	c.Assert(job.PageID, check.Equals, pageID)

	c.Assert(it.Next(), check.Equals, false)
	c.Assert(it.Error(), check.IsNil)
}

func (s *FetcherServiceTestSuite) TestRunSkipsFailedFetches(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	mockPages := mocks.NewMockPageAPI(ctrl)
	mockFetch := mocks.NewMockFetchAPI(ctrl)
	clk := testclock.NewClock(time.Now())

	fetchQueue := queue.NewInMemoryQueue()
	indexQueue := queue.NewInMemoryQueue()

	config := Config{
		PageAPI:      mockPages,
		FetchAPI:     mockFetch,
		FetchQueue:   fetchQueue,
		IndexQueue:   indexQueue,
		Clock:        clk,
		PollInterval: time.Minute,
	}

	svc, err := New(config)
	c.Assert(err, check.IsNil)

	brokenID, workingID := uuid.New(), uuid.New()
	c.Assert(fetchQueue.Enqueue(queue.Job{
		Kind:   queue.KindFetch,
		Owner:  "owner-1",
		PageID: brokenID,
		URL:    "https://example.com/broken",
	}), check.IsNil)
	c.Assert(fetchQueue.Enqueue(queue.Job{
		Kind:   queue.KindFetch,
		Owner:  "owner-1",
		PageID: workingID,
		URL:    "https://example.com/working",
	}), check.IsNil)

	mockFetch.EXPECT().Fetch("https://example.com/broken").Return(
		nil, content_fetcher.ErrUnsupportedContent,
	)
	mockFetch.EXPECT().Fetch("https://example.com/working").Return(&content_fetcher.Content{
		Title: "Working page",
		Text:  "content",
	}, nil)
	mockPages.EXPECT().UpdateContent(workingID, "Working page", "", "content").Return(nil)

	ctx, cancelFn := context.WithCancel(context.TODO())
	defer cancelFn()

	go func() {
		c.Assert(clk.WaitAdvance(time.Minute, 10*time.Second, 1), check.IsNil)
		c.Assert(clk.WaitAdvance(time.Millisecond, 10*time.Second, 1), check.IsNil)
		cancelFn()
	}()

	err = svc.Run(ctx)
	c.Assert(err, check.IsNil)

	// Only the page that fetched successfully should reach the index queue.
	it := indexQueue.Jobs()
	c.Assert(it.Next(), check.Equals, true)
	c.Assert(it.Job().PageID, check.Equals, workingID)
	c.Assert(it.Next(), check.Equals, false)
}
