package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuannvm/ai-toolbox/internal/jira"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/metrics"
	"github.com/tuannvm/ai-toolbox/internal/models"
	"github.com/tuannvm/ai-toolbox/internal/transcript"
)

const customTranscriptTitle = "Custom Transcript"

// bind decodes the body and reports missing fields as 400
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Debugf("Rejected %s: %v", c.FullPath(), err)
		abortJSON(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

// generate runs fn, records metrics and writes the result or a 500
func generate(c *gin.Context, tool string, fn func(ctx context.Context) (string, error)) (string, bool) {
	start := time.Now()
	result, err := fn(c.Request.Context())
	metrics.GenerationsTotal.WithLabelValues(tool, metrics.Status(err)).Inc()
	metrics.GenerationDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Errorf("Generation for %s failed (request %s): %v", tool, c.GetString("request_id"), err)
		abortJSON(c, http.StatusInternalServerError, "generation failed")
		return "", false
	}
	return result, true
}

func (s *Server) handleSocial(c *gin.Context) {
	var req models.SocialPostRequest
	if !bind(c, &req) {
		return
	}
	result, ok := generate(c, "social", func(ctx context.Context) (string, error) {
		return s.deps.Generator.SocialPost(ctx, req)
	})
	if ok {
		c.JSON(http.StatusOK, models.GenerationResponse{Result: result})
	}
}

func (s *Server) handleYouTube(c *gin.Context) {
	var req models.YouTubeRequest
	if !bind(c, &req) {
		return
	}
	videoID, ok := transcript.ExtractVideoID(req.VideoURL)
	if !ok {
		abortJSON(c, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}

	ctx := c.Request.Context()
	details := s.deps.Details.Details(ctx, videoID)

	text, err := s.deps.Transcripts.Fetch(ctx, videoID, req.Language)
	metrics.TranscriptFetchesTotal.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		log.Errorf("Failed to get transcript for %s: %v", videoID, err)
		if errors.Is(err, transcript.ErrNoTranscript) {
			abortJSON(c, http.StatusUnprocessableEntity, "no transcript available for this video")
			return
		}
		abortJSON(c, http.StatusBadGateway, "failed to get transcript")
		return
	}

	result, ok := generate(c, "youtube", func(ctx context.Context) (string, error) {
		return s.deps.Generator.Transcript(ctx, text, req.OutputType, req.CustomPrompt, details.Title)
	})
	if ok {
		c.JSON(http.StatusOK, models.GenerationResponse{Result: result, VideoDetails: &details})
	}
}

func (s *Server) handleTranscript(c *gin.Context) {
	var req models.TranscriptRequest
	if !bind(c, &req) {
		return
	}
	result, ok := generate(c, "transcript", func(ctx context.Context) (string, error) {
		return s.deps.Generator.Transcript(ctx, req.Transcript, req.OutputType, req.CustomPrompt, customTranscriptTitle)
	})
	if ok {
		c.JSON(http.StatusOK, models.GenerationResponse{Result: result})
	}
}

func (s *Server) handleCommunication(c *gin.Context) {
	var req models.CommunicationRequest
	if !bind(c, &req) {
		return
	}
	result, ok := generate(c, "communication", func(ctx context.Context) (string, error) {
		return s.deps.Generator.Communication(ctx, req)
	})
	if ok {
		c.JSON(http.StatusOK, models.GenerationResponse{Result: result})
	}
}

func (s *Server) handleJiraGenerate(c *gin.Context) {
	var req models.JiraGenerateRequest
	if !bind(c, &req) {
		return
	}
	result, ok := generate(c, "jira", func(ctx context.Context) (string, error) {
		return s.deps.Generator.JiraTicket(ctx, req)
	})
	if ok {
		c.JSON(http.StatusOK, models.GenerationResponse{Result: result})
	}
}

func (s *Server) handleJiraCreate(c *gin.Context) {
	var req models.JiraCreateRequest
	if !bind(c, &req) {
		return
	}
	created, err := s.deps.Jira.CreateIssue(c.Request.Context(), req.JiraSettings, jira.Issue{
		Summary:     req.Subject,
		Description: req.Content,
		IssueType:   req.TicketType,
		Priority:    req.Priority,
	})
	metrics.JiraIssuesTotal.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		log.Errorf("Jira issue creation failed for %v: %v", req.JiraSettings, err)
		abortJSON(c, http.StatusBadGateway, "failed to create Jira ticket")
		return
	}
	log.Infof("Created Jira issue %s", created.Key)
	c.JSON(http.StatusOK, models.JiraCreateResponse{TicketURL: created.URL, TicketKey: created.Key})
}

func (s *Server) handleComment(c *gin.Context) {
	var req models.CommentRequest
	if !bind(c, &req) {
		return
	}
	result, ok := generate(c, "comments", func(ctx context.Context) (string, error) {
		return s.deps.Generator.Comment(ctx, req)
	})
	if ok {
		c.JSON(http.StatusOK, models.GenerationResponse{Result: result})
	}
}
