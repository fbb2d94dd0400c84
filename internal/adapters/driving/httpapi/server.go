// Package httpapi exposes the question-answering service over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driven"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driving"
	"github.com/custodia-labs/helpcenter-rag/internal/logger"
)

// Server serves the ask/health endpoints.
type Server struct {
	answers driving.AnswerService
	index   driven.VectorIndex
	engine  *gin.Engine
}

// askRequest is the POST /ask_question body.
type askRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k"`
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(answers driving.AnswerService, index driven.VectorIndex) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		answers: answers,
		index:   index,
		engine:  engine,
	}

	engine.GET("/health", s.handleHealth)
	engine.POST("/ask_question", s.handleAsk)
	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleHealth reports whether the vector index is reachable.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.index.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"detail": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAsk answers a question from the ingested corpus.
func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "query is required"})
		return
	}

	answer, err := s.answers.Ask(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		case errors.Is(err, domain.ErrGateway), errors.Is(err, domain.ErrRetrieval):
			logger.Warn("Ask failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"detail": "upstream service failure"})
		default:
			logger.Warn("Ask failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, answer)
}
