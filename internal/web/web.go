// Package web serves the local HTML dashboard and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/huangsam/ytdash/core/load"
	"github.com/huangsam/ytdash/internal/contract"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// server context is cancelled.
const shutdownTimeout = 10 * time.Second

//go:embed templates/*.html
var templatesFS embed.FS

// Server serves one channel export. The dataset is loaded on the first
// request and shared read-only by every handler afterwards.
type Server struct {
	cfg    *contract.Config
	memo   *load.Memo
	logger *zap.Logger
	pages  map[string]*template.Template
}

// NewServer builds a dashboard over the exports configured in cfg.
func NewServer(cfg *contract.Config, memo *load.Memo, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, memo: memo, logger: logger, pages: pages}, nil
}

// parsePages parses every page together with the shared layout.
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"aggregate.html", "videos.html", "video.html"} {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// NewRouter returns a router with every dashboard route.
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	// HTML
	r.HandleFunc("/aggregate", s.handleAggregatePage).Methods(http.MethodGet)
	r.HandleFunc("/videos", s.handleVideosPage).Methods(http.MethodGet)
	r.HandleFunc("/videos/{id}", s.handleVideoPage).Methods(http.MethodGet)
	r.HandleFunc("/videos/{id}/audience.{format:png|svg}", s.handleAudienceChart).Methods(http.MethodGet)
	r.HandleFunc("/videos/{id}/views.{format:png|svg}", s.handleViewsChart).Methods(http.MethodGet)

	// JSON
	r.HandleFunc("/api/aggregate", s.handleAPIAggregate).Methods(http.MethodGet)
	r.HandleFunc("/api/videos", s.handleAPIVideos).Methods(http.MethodGet)
	r.HandleFunc("/api/videos/{id}", s.handleAPIVideo).Methods(http.MethodGet)

	r.Use(s.logRequests)
	return r
}

// logRequests logs every request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting dashboard", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down dashboard: %w", err)
	}
	return nil
}
