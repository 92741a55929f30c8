package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Server is the HTTP surface: the search endpoint, the digest trigger and
// prometheus metrics.
type Server struct {
	httpServer *http.Server
}

func New(port int, requestTimeout time.Duration, search SearchService, digest DigestService) *Server {

	handlers := newHandlers(search, digest)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	// The timeout bounds the whole search including the origin fetch; the
	// client sees either a complete result or an error, never a partial one.
	router.Use(middleware.Timeout(requestTimeout))

	router.Post("/api/jobs/search", handlers.search)
	router.Post("/api/digest/run", handlers.runDigest)
	router.Handle("/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: requestTimeout + 10*time.Second,
		},
	}
}

func (s *Server) Run() {
	log.Infof("http server listening on %v", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("http server failed: %v", err)
	}
}

func (s *Server) Stop(ctx context.Context) {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Errorf("http server shutdown failed: %v", err)
	}
}
