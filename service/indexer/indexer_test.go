package indexer

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/juju/clock/testclock"
	check "gopkg.in/check.v1"

	"github.com/ikumen/read-it-later/bookmark"
	"github.com/ikumen/read-it-later/queue"
	"github.com/ikumen/read-it-later/service/indexer/mocks"
)

var _ = check.Suite(new(ConfigTestSuite))
var _ = check.Suite(new(IndexerServiceTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type ConfigTestSuite struct{}

func (s *ConfigTestSuite) TestConfigValidation(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	originalConfig := Config{
		PageAPI:      mocks.NewMockPageAPI(ctrl),
		IndexAPI:     mocks.NewMockIndexAPI(ctrl),
		IndexQueue:   queue.NewInMemoryQueue(),
		PollInterval: time.Minute,
	}

	config := originalConfig
	c.Assert(config.validate(), check.IsNil)

	c.Assert(config.Clock, check.Not(check.IsNil), check.Commentf("default clock was not assigned"))
	c.Assert(config.Logger, check.Not(check.IsNil), check.Commentf("default logger was not assigned"))

	config = originalConfig
	config.PageAPI = nil
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*page API not provided.*")

	config = originalConfig
	config.IndexAPI = nil
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*index API not provided.*")

	config = originalConfig
	config.IndexQueue = nil
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*index queue not provided.*")

	config = originalConfig
	config.PollInterval = 0
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*invalid value for poll interval.*")
}

type IndexerServiceTestSuite struct{}

func (s *IndexerServiceTestSuite) TestFullRun(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	mockPages := mocks.NewMockPageAPI(ctrl)
	mockIndex := mocks.NewMockIndexAPI(ctrl)
	clk := testclock.NewClock(time.Now())

	indexQueue := queue.NewInMemoryQueue()

	config := Config{
		PageAPI:      mockPages,
		IndexAPI:     mockIndex,
		IndexQueue:   indexQueue,
		Clock:        clk,
		PollInterval: time.Minute,
	}

	svc, err := New(config)
	c.Assert(err, check.IsNil)

	indexedID, removedID := uuid.New(), uuid.New()
	c.Assert(indexQueue.Enqueue(queue.Job{
		Kind:   queue.KindIndex,
		Owner:  "owner-1",
		PageID: indexedID,
	}), check.IsNil)
	c.Assert(indexQueue.Enqueue(queue.Job{
		Kind:   queue.KindDeindex,
		Owner:  "owner-1",
		PageID: removedID,
	}), check.IsNil)

	mockPages.EXPECT().FindPage(indexedID).Return(&bookmark.Page{
		ID:    indexedID,
		Owner: "owner-1",
		Title: "Example article",
		Text:  "the full article text",
	}, nil)
	mockIndex.EXPECT().IndexPage(
		gomock.Any(), "owner-1", indexedID, "Example article", "the full article text",
	).Return(nil)
	mockIndex.EXPECT().RemovePage(gomock.Any(), "owner-1", removedID).Return(nil)

	ctx, cancelFn := context.WithCancel(context.TODO())
	defer cancelFn()

	go func() {
		// Wait until the main loop calls time.After (or timeout if 10
		// sec elapse) and advance the time to trigger a new index pass.
		c.Assert(clk.WaitAdvance(time.Minute, 10*time.Second, 1), check.IsNil)

		// Wait until the main loop calls time.After again and cancel
		// the context.
		c.Assert(clk.WaitAdvance(time.Millisecond, 10*time.Second, 1), check.IsNil)
		cancelFn()
	}()

	// Enter the blocking main loop.
	err = svc.Run(ctx)
	c.Assert(err, check.IsNil)

	c.Assert(indexQueue.PendingJobs(), check.Equals, false)
}

func (s *IndexerServiceTestSuite) TestRunSkipsDeletedPages(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	mockPages := mocks.NewMockPageAPI(ctrl)
	mockIndex := mocks.NewMockIndexAPI(ctrl)
	clk := testclock.NewClock(time.Now())

	indexQueue := queue.NewInMemoryQueue()

	config := Config{
		PageAPI:      mockPages,
		IndexAPI:     mockIndex,
		IndexQueue:   indexQueue,
		Clock:        clk,
		PollInterval: time.Minute,
	}

	svc, err := New(config)
	c.Assert(err, check.IsNil)

	deletedID := uuid.New()
	c.Assert(indexQueue.Enqueue(queue.Job{
		Kind:   queue.KindIndex,
		Owner:  "owner-1",
		PageID: deletedID,
	}), check.IsNil)

	// The page was deleted after the job was queued. The service should
	// skip the job without calling the index API.
	mockPages.EXPECT().FindPage(deletedID).Return(nil, bookmark.ErrNotFound)

	ctx, cancelFn := context.WithCancel(context.TODO())
	defer cancelFn()

	go func() {
		c.Assert(clk.WaitAdvance(time.Minute, 10*time.Second, 1), check.IsNil)
		c.Assert(clk.WaitAdvance(time.Millisecond, 10*time.Second, 1), check.IsNil)
		cancelFn()
	}()

	err = svc.Run(ctx)
	c.Assert(err, check.IsNil)
}
