// Package server provides HTTP server initialization and lifecycle.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lixi-server/internal/config"
	"lixi-server/internal/handler"
	"lixi-server/internal/service"
)

// Server wraps the HTTP server with application dependencies.
type Server struct {
	cfg  *config.Config
	http *http.Server
}

// New builds the gin engine, registers routes and returns a ready server.
func New(cfg *config.Config, rooms *service.RoomService) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	handler.New(rooms).RegisterRoutes(engine)

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: engine,
		},
	}
}

// Start begins serving. Blocks until the listener fails or Stop is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down within the configured timeout.
func (s *Server) Stop() {
	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
		return
	}
	log.Info().Msg("HTTP server stopped")
}

// requestLogger logs one line per request with zerolog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
