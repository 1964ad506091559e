// Package server exposes the scraper and the image proxy over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// Scraper turns a recipe page URL into a payload.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*core.Recipe, error)
}

// Server wires the handlers onto a gin engine.
type Server struct {
	engine  *gin.Engine
	scraper Scraper
	images  core.ImageConverter
	log     *slog.Logger
}

// New builds the router. apiKey guards /scrape.
func New(scraper Scraper, images core.ImageConverter, apiKey string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		engine:  gin.New(),
		scraper: scraper,
		images:  images,
		log:     log,
	}

	s.engine.Use(gin.Recovery(), requestID(), requestLogger(log))
	s.engine.GET("/health", s.health)
	s.engine.GET("/scrape", requireAPIKey(apiKey, log), s.scrape)
	s.engine.OPTIONS("/scrape", requireAPIKey(apiKey, log), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	s.engine.GET("/image-proxy", s.imageProxy)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
