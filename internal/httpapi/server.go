// Package httpapi exposes the mirrored collections as a JSON read API.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"content_mirror/internal/domain"
	"content_mirror/internal/service"
)

type Queries interface {
	List(ctx context.Context, kind domain.Kind, q service.Query) (*service.Page, error)
	GetBySlug(ctx context.Context, kind domain.Kind, slug string) (*domain.Item, error)
	GetByID(ctx context.Context, kind domain.Kind, id string) (*domain.Item, error)
	Clear(ctx context.Context, kind domain.Kind) error
	Count(ctx context.Context, kind domain.Kind) (int, error)
	RecentSince(ctx context.Context, kind domain.Kind, hours int) ([]domain.Item, error)
	Kinds() []domain.Kind
}

type Config struct {
	Addr            string
	AdminToken      string
	AdminTokenHash  string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	queries Queries
	cfg     Config
	mux     *http.ServeMux
	logger  *slog.Logger
}

func New(queries Queries, cfg Config, logger *slog.Logger) *Server {
	s := &Server{
		queries: queries,
		cfg:     cfg,
		mux:     http.NewServeMux(),
		logger:  logger.With("component", "http"),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /api/{kind}", s.handleList)
	s.mux.HandleFunc("GET /api/{kind}/{slug}", s.handleGetBySlug)
	s.mux.HandleFunc("GET /api/{kind}/id/{id}", s.handleGetByID)

	s.mux.Handle("POST /admin/{kind}/clear", s.requireAdmin(http.HandlerFunc(s.handleClear)))
	s.mux.Handle("GET /admin/{kind}/count", s.requireAdmin(http.HandlerFunc(s.handleCount)))
	s.mux.Handle("GET /admin/{kind}/recent", s.requireAdmin(http.HandlerFunc(s.handleRecent)))
}
