// Package server is the reference HTTP backend of the toolbox. It serves the
// generation endpoints the toolbox client calls.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/tuannvm/ai-toolbox/internal/config"
	"github.com/tuannvm/ai-toolbox/internal/generator"
	"github.com/tuannvm/ai-toolbox/internal/jira"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/models"
	"github.com/tuannvm/ai-toolbox/internal/transcript"
)

// VideoDetailer looks up the title and author of a video. It never fails.
type VideoDetailer interface {
	Details(ctx context.Context, videoID string) models.VideoDetails
}

// Deps are the collaborators the handlers call into
type Deps struct {
	Generator   *generator.Service
	Transcripts transcript.Fetcher
	Details     VideoDetailer
	Jira        jira.IssueCreator
}

// Server serves the toolbox API
type Server struct {
	cfg    *config.Config
	deps   Deps
	engine *gin.Engine
}

// New creates a server with all routes registered
func New(cfg *config.Config, deps Deps) *Server {
	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(requestLogger())
	engine.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	engine.Use(collectMetrics())

	s := &Server{cfg: cfg, deps: deps, engine: engine}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to AI Toolbox API"})
	})
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.POST("/social/generate", s.handleSocial)
	api.POST("/youtube/summarize", s.handleYouTube)
	api.POST("/transcript/analyze", s.handleTranscript)
	api.POST("/communication/generate", s.handleCommunication)
	api.POST("/jira/generate", s.handleJiraGenerate)
	api.POST("/jira/create", s.handleJiraCreate)
	api.POST("/comments/generate", s.handleComment)
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ServerAddr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting toolbox API on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Infof("Shutting down toolbox API...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// abortJSON writes the error body shared by every endpoint
func abortJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorBody{Code: status, Message: message},
	})
}
