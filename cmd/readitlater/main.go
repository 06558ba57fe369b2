package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ikumen/read-it-later/bookmark"
	bookmarkcdb "github.com/ikumen/read-it-later/bookmark/store/cdb"
	memstore "github.com/ikumen/read-it-later/bookmark/store/memory"
	"github.com/ikumen/read-it-later/index"
	indexcdb "github.com/ikumen/read-it-later/index/store/cdb"
	memindex "github.com/ikumen/read-it-later/index/store/memory"
	"github.com/ikumen/read-it-later/indexer"
	"github.com/ikumen/read-it-later/queue"
	"github.com/ikumen/read-it-later/searcher"
	"github.com/ikumen/read-it-later/service"
	fetchersvc "github.com/ikumen/read-it-later/service/fetcher"
	"github.com/ikumen/read-it-later/service/frontend"
	indexersvc "github.com/ikumen/read-it-later/service/indexer"
)

const (
	appName = "read-it-later"
	appSHA  = "compiled-and-deployed-at"
)

func main() {
	host, _ := os.Hostname()
	// Instantiate a root logger that will be passed to all services.
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"SHA":  appSHA,
		"host": host,
	})

	svcGroup, err := configureServices(logger)
	if err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	// Launch a separate process to listen and respond to os signals
	// and trigger a graceful shutdown.
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info("shutting down due to os signal")
			// Cancel context, this signals all services to return since they all
			// share this same context.
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err := svcGroup.Execute(ctx); err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	// Shutdown due to context cancellation.
	logger.Info("shutdown complete")
}

func configureServices(logger *logrus.Entry) (service.Group, error) {
	var (
		fetcherConfig  fetchersvc.Config
		indexerConfig  indexersvc.Config
		frontendConfig frontend.Config
	)

	flag.DurationVar(
		&fetcherConfig.PollInterval, "fetcher-poll-interval",
		5*time.Second, "Time between subsequent fetch queue polls",
	)
	flag.DurationVar(
		&indexerConfig.PollInterval, "indexer-poll-interval",
		5*time.Second, "Time between subsequent index queue polls",
	)

	flag.StringVar(
		&frontendConfig.ListenAddr, "frontend-listen-addr",
		":8080", "Address to listen on for incoming frontend requests",
	)
	flag.IntVar(
		&frontendConfig.NumOfResultsPerPage, "frontend-results-per-page",
		10, "Number of search results returned per page",
	)
	flag.StringVar(
		&frontendConfig.SelfHost, "self-host",
		"", "Host name this application serves on; bookmarks pointing back at it get rejected",
	)

	pageStoreURI := flag.String(
		"page-store-uri", "in-memory://",
		"URI for connecting to a page data store."+
			" [supported URI's: in-memory://, postgresql://user@host:26257/readitlater?sslmode=disable]",
	)
	indexStoreURI := flag.String(
		"index-store-uri", "in-memory://",
		"URI for connecting to a posting data store."+
			" [supported URI's: in-memory://, postgresql://user@host:26257/readitlater?sslmode=disable]",
	)

	flag.Parse()

	// Retrieve suitable page store and posting store implementations and
	// plug them into service configurations.
	pageStore, err := getPageStore(*pageStoreURI, logger)
	if err != nil {
		return nil, err
	}

	postingStore, err := getPostingStore(*indexStoreURI, logger)
	if err != nil {
		return nil, err
	}

	postingWriter, err := indexer.NewWriter(indexer.Config{
		Store:  postingStore,
		Logger: logger.WithField("component", "posting-writer"),
	})
	if err != nil {
		return nil, err
	}

	search, err := searcher.New(searcher.Config{
		Pages:    pageStore,
		Postings: postingStore,
		Logger:   logger.WithField("component", "searcher"),
	})
	if err != nil {
		return nil, err
	}

	fetchQueue := queue.NewInMemoryQueue()
	indexQueue := queue.NewInMemoryQueue()

	var svc service.Service
	var svcGrp service.Group

	fetcherConfig.PageAPI = pageStore
	fetcherConfig.FetchQueue = fetchQueue
	fetcherConfig.IndexQueue = indexQueue
	fetcherConfig.Logger = logger.WithField("service", "fetcher")
	if svc, err = fetchersvc.New(fetcherConfig); err == nil {
		svcGrp = append(svcGrp, svc)
	} else {
		return nil, err
	}

	indexerConfig.PageAPI = pageStore
	indexerConfig.IndexAPI = postingWriter
	indexerConfig.IndexQueue = indexQueue
	indexerConfig.Logger = logger.WithField("service", "indexer")
	if svc, err = indexersvc.New(indexerConfig); err == nil {
		svcGrp = append(svcGrp, svc)
	} else {
		return nil, err
	}

	frontendConfig.PageAPI = pageStore
	frontendConfig.SearchAPI = search
	frontendConfig.FetchQueue = fetchQueue
	frontendConfig.IndexQueue = indexQueue
	frontendConfig.Logger = logger.WithField("service", "frontend")
	if svc, err = frontend.New(frontendConfig); err == nil {
		svcGrp = append(svcGrp, svc)
	} else {
		return nil, err
	}

	return svcGrp, nil
}

func getPageStore(pageStoreURI string, logger *logrus.Entry) (bookmark.Store, error) {
	if pageStoreURI == "" {
		return nil, fmt.Errorf("page store URI must be specified with --page-store-uri")
	}

	url, err := url.Parse(pageStoreURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page store URI: %w", err)
	}

	switch url.Scheme {
	case "in-memory":
		logger.Info("using in-memory page store")

		return memstore.NewInMemoryStore(), nil
	case "postgresql":
		logger.Info("using CDB page store")

		return bookmarkcdb.NewCockroachDBStore(pageStoreURI)
	default:
		return nil, fmt.Errorf("unsupported page store URI scheme: %q", url.Scheme)
	}
}

func getPostingStore(indexStoreURI string, logger *logrus.Entry) (index.Store, error) {
	if indexStoreURI == "" {
		return nil, fmt.Errorf("index store URI must be specified with --index-store-uri")
	}

	url, err := url.Parse(indexStoreURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index store URI: %w", err)
	}

	switch url.Scheme {
	case "in-memory":
		logger.Info("using in-memory posting store")

		return memindex.NewInMemoryIndex(), nil
	case "postgresql":
		logger.Info("using CDB posting store")

		return indexcdb.NewCockroachDBIndex(indexStoreURI)
	default:
		return nil, fmt.Errorf("unsupported index store URI scheme: %q", url.Scheme)
	}
}
