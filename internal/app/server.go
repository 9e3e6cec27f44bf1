package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/samvad-hq/answer-search/internal/answers"
	"github.com/samvad-hq/answer-search/internal/config"
	"github.com/samvad-hq/answer-search/internal/logger"
	"github.com/samvad-hq/answer-search/internal/server"
)

// Server wires the answer bank into the HTTP search endpoint.
type Server struct {
	cfg  *config.Config
	bank *answers.Bank
	http *http.Server
	log  logger.Logger
}

// NewServer builds the server runtime, loading the answer bank when answers_file is set.
func NewServer(cfg *config.Config, log logger.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	bank := answers.NewBank(nil)
	if cfg.AnswersFile != "" {
		items, err := answers.LoadCSVFile(cfg.AnswersFile, answers.ImportOptions{
			Encoding:        cfg.AnswersEncoding,
			OptionSeparator: cfg.OptionSeparator,
			AnswerSeparator: cfg.AnswerSeparator,
		})
		if err != nil {
			return nil, fmt.Errorf("load answers: %w", err)
		}
		bank.Replace(items)
		log.InfoObj("answer bank loaded", "answers_meta", map[string]any{
			"file":  cfg.AnswersFile,
			"count": bank.Len(),
		})
	} else {
		log.WarnObj("no answers file configured; serving an empty bank", "answers_file", cfg.AnswersFile)
	}

	return &Server{
		cfg:  cfg,
		bank: bank,
		log:  log,
		http: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           server.New(bank, log).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is cancelled, then shuts down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	if s == nil || s.http == nil {
		return fmt.Errorf("server is not initialized")
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoObj("http server listening", "listen_addr", s.cfg.ListenAddr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.InfoObj("http server shutting down", "reason", ctx.Err())
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
