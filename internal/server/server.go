// Package server exposes the answer bank over the search endpoint consumed by pkg/search.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/samvad-hq/answer-search/internal/answers"
	"github.com/samvad-hq/answer-search/internal/logger"
	"github.com/samvad-hq/answer-search/internal/metrics"
	"github.com/samvad-hq/answer-search/pkg/search"
)

const maxRequestBytes = 1 << 20

// Searcher is the query side of the answer bank.
type Searcher interface {
	Search(query string, filters map[string]any) []answers.Match
	Len() int
}

// Server holds the HTTP handlers.
type Server struct {
	bank Searcher
	log  logger.Logger
}

// searchResponse mirrors search.Response with typed results.
type searchResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Results []answers.Match `json:"results"`
}

// New creates a Server.
func New(bank Searcher, log logger.Logger) *Server {
	return &Server{bank: bank, log: logger.Ensure(log)}
}

// Router builds the chi router with middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(metrics.Middleware())

	r.Post(search.SearchPath, s.handleSearch)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metrics.Handler())
	return r
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, searchResponse{
			Success: false,
			Message: "invalid request body: " + err.Error(),
			Results: []answers.Match{},
		})
		return
	}

	results := s.bank.Search(req.Query, req.Filters)
	s.log.DebugObj("search served", "search_meta", map[string]any{
		"query":      req.Query,
		"filters":    req.Filters,
		"results":    len(results),
		"bank_size":  s.bank.Len(),
		"request_id": chiMiddleware.GetReqID(r.Context()),
	})
	writeJSON(w, http.StatusOK, searchResponse{Success: true, Results: results})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "ok",
		"bank_size": s.bank.Len(),
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.InfoObj("http request", "http_request", map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  chiMiddleware.GetReqID(r.Context()),
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
