package api

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// Runner is the pipeline entry point the server triggers.
type Runner interface {
	Run(ctx context.Context, limit int) error
}

// Server exposes the pipeline over HTTP so runs can be triggered
// remotely, e.g. from a scheduler.
type Server struct {
	runner Runner

	mu      sync.Mutex
	running bool
}

// NewServer creates a server around the given runner.
func NewServer(runner Runner) *Server {
	return &Server{runner: runner}
}

// RunRequest is the payload for POST /api/run.
type RunRequest struct {
	Count int `json:"count"`
}

// Router constructs a Gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.POST("/api/run", s.handleRun)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handleRun starts a pipeline run in the background. Only one run may be
// in flight at a time; concurrent triggers get a 409.
func (s *Server) handleRun(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}
	if req.Count <= 0 {
		req.Count = 1
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()
		if err := s.runner.Run(context.Background(), req.Count); err != nil {
			log.Printf("Run failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"message": "run started", "count": req.Count})
}
