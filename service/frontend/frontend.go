package frontend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ikumen/read-it-later/bookmark"
	"github.com/ikumen/read-it-later/queue"
	"github.com/ikumen/read-it-later/searcher"
)

const (
	pagesEndpoint  = "/api/pages"
	pageEndpoint   = "/api/pages/{pageID}"
	searchEndpoint = "/api/search"

	// ownerHeader carries the owner partition a request operates on.
	ownerHeader = "X-Owner"
)

// Service represents a front-end service for the read-it-later
// application. It satisfies the service.Service interface.
type Service struct {
	config Config
	// Any router type that satisfies the http.Handler interface.
	router *chi.Mux
}

// New creates and returns a fully configured front-end service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("frontend service: config validation failed: %w", err)
	}

	svc := &Service{
		config: config,
		router: chi.NewRouter(),
	}

	svc.router.Post(pagesEndpoint, svc.createPage)
	svc.router.Delete(pageEndpoint, svc.deletePage)
	svc.router.Get(searchEndpoint, svc.search)

	return svc, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "frontend" }

// Run executes the service and blocks until the context gets cancelled
// or an error occurs.
func (svc *Service) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", svc.config.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	srv := &http.Server{
		Addr:    svc.config.ListenAddr,
		Handler: svc.router,
	}

	go func() {
		<-ctx.Done()

		_ = srv.Close()
	}()

	svc.config.Logger.WithField("addr", svc.config.ListenAddr).Info(
		"started service",
	)

	if err = srv.Serve(l); err == http.ErrServerClosed {
		// Server closed gracefully.
		err = nil
	}

	return err
}

// createPageRequest is the payload for bookmarking a new page.
type createPageRequest struct {
	URL string `json:"url"`
}

// createPageResponse echoes back the stored page record.
type createPageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	CreatedAt string    `json:"createdAt"`
}

func (svc *Service) createPage(w http.ResponseWriter, r *http.Request) {
	var req createPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		svc.respondError(w, http.StatusBadRequest, "invalid or malformed request body")

		return
	}

	if err := bookmark.ValidateURL(req.URL, svc.config.SelfHost); err != nil {
		svc.respondError(w, http.StatusBadRequest, err.Error())

		return
	}

	owner := requestOwner(r)
	page := &bookmark.Page{Owner: owner, URL: req.URL}

	if err := svc.config.PageAPI.CreatePage(page); err != nil {
		svc.config.Logger.WithField("err", err).Error(
			"could not insert page into the page store",
		)
		svc.respondError(w, http.StatusInternalServerError, "could not save page; please try again later")

		return
	}

	if err := svc.config.FetchQueue.Enqueue(queue.Job{
		Kind:   queue.KindFetch,
		Owner:  owner,
		PageID: page.ID,
		URL:    page.URL,
	}); err != nil {
		svc.config.Logger.WithFields(logrus.Fields{
			"err":     err,
			"page_id": page.ID.String(),
		}).Error("could not queue fetch job for page")
	}

	svc.respondJSON(w, http.StatusCreated, createPageResponse{
		ID:        page.ID,
		URL:       page.URL,
		CreatedAt: page.CreatedAt.Format(time.RFC3339),
	})
}

func (svc *Service) deletePage(w http.ResponseWriter, r *http.Request) {
	pageID, err := uuid.Parse(chi.URLParam(r, "pageID"))
	if err != nil {
		svc.respondError(w, http.StatusBadRequest, "invalid page id")

		return
	}

	owner := requestOwner(r)

	if err := svc.config.PageAPI.DeletePage(owner, pageID); err != nil {
		if errors.Is(err, bookmark.ErrNotFound) {
			svc.respondError(w, http.StatusNotFound, "page not found")

			return
		}

		svc.config.Logger.WithField("err", err).Error(
			"could not delete page from the page store",
		)
		svc.respondError(w, http.StatusInternalServerError, "could not delete page; please try again later")

		return
	}

	if err := svc.config.IndexQueue.Enqueue(queue.Job{
		Kind:   queue.KindDeindex,
		Owner:  owner,
		PageID: pageID,
	}); err != nil {
		svc.config.Logger.WithFields(logrus.Fields{
			"err":     err,
			"page_id": pageID.String(),
		}).Error("could not queue de-index job for page")
	}

	w.WriteHeader(http.StatusNoContent)
}

// searchResponse is an ordered page of search / listing hits. Next
// carries the cursor for retrieving the following page and is omitted
// when no further results exist.
type searchResponse struct {
	Term      string            `json:"term"`
	Sanitized bool              `json:"sanitized,omitempty"`
	Hits      []searcher.Result `json:"hits"`
	Next      string            `json:"next,omitempty"`
}

func (svc *Service) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := svc.config.NumOfResultsPerPage
	if rawLimit := query.Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			svc.respondError(w, http.StatusBadRequest, "limit must be a positive integer")

			return
		}

		if parsed < limit {
			limit = parsed
		}
	}

	startAt := uuid.Nil
	if rawCursor := query.Get("at"); rawCursor != "" {
		parsed, err := uuid.Parse(rawCursor)
		if err != nil {
			svc.respondError(w, http.StatusBadRequest, "invalid results cursor")

			return
		}

		startAt = parsed
	}

	// Probe for one extra result to detect whether a further page of
	// results exists.
	results, err := svc.config.SearchAPI.Search(
		requestOwner(r), query.Get("term"), startAt, limit+1,
	)
	if err != nil {
		svc.config.Logger.WithField("err", err).Error("search query execution failed")
		svc.respondError(w, http.StatusInternalServerError, "an error occurred; please try again later")

		return
	}

	resp := searchResponse{
		Term:      results.Term,
		Sanitized: results.Sanitized,
		Hits:      results.Hits,
	}

	if len(resp.Hits) > limit {
		resp.Hits = resp.Hits[:limit]
		resp.Next = resp.Hits[limit-1].ID.String()
	}

	if resp.Hits == nil {
		resp.Hits = []searcher.Result{}
	}

	svc.respondJSON(w, http.StatusOK, resp)
}

func requestOwner(r *http.Request) string {
	if owner := r.Header.Get(ownerHeader); owner != "" {
		return owner
	}

	return defaultOwner
}

func (svc *Service) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		svc.config.Logger.WithField("err", err).Error("failed to encode response payload")
	}
}

func (svc *Service) respondError(w http.ResponseWriter, status int, msg string) {
	svc.respondJSON(w, status, map[string]string{"error": msg})
}
