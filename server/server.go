package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexshd/fuzzy/internal/catalog"
	"github.com/gin-gonic/gin"
)

// Server holds the state for the REST API server.
type Server struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	router  *gin.Engine
}

// NewServer creates a new Server instance.
func NewServer(cat *catalog.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(logger))

	s := &Server{
		catalog: cat,
		logger:  logger,
		router:  r,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mostly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr, "rulesets", s.catalog.Dir())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/v1/rulesets", s.handleList)
	s.router.GET("/v1/rulesets/:name", s.handleDescribe)
	s.router.POST("/v1/rulesets/:name/evaluate", s.handleEvaluate)
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) fail(c *gin.Context, err error) {
	appErr := MapError(err)
	if appErr.Code >= 500 {
		s.logger.Error("request failed", "err", err, "request_id", c.GetString(requestIDKey))
	} else {
		s.logger.Debug("request rejected", "status", appErr.Code, "err", err, "request_id", c.GetString(requestIDKey))
	}
	c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Error()})
}
