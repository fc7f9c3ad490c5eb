package generator

import (
	"context"
	"fmt"

	"github.com/tuannvm/ai-toolbox/internal/llm"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/models"
)

// Service produces tool results by prompting an LLM
type Service struct {
	llm llm.LLMClient
}

// NewService creates a generation service backed by the given client
func NewService(client llm.LLMClient) *Service {
	return &Service{llm: client}
}

// SocialPost generates a social media post
func (s *Service) SocialPost(ctx context.Context, req models.SocialPostRequest) (string, error) {
	log.Infof("Generating %s post about %q", req.Platform, req.Topic)
	return s.complete(ctx, "social post", SocialPostPrompt(req))
}

// Transcript analyses transcript text. title names the source video.
func (s *Service) Transcript(ctx context.Context, transcript, outputType, customPrompt, title string) (string, error) {
	log.Infof("Analyzing transcript (%d chars) as %s", len(transcript), outputType)
	return s.complete(ctx, "transcript analysis", TranscriptPrompt(transcript, outputType, customPrompt, title))
}

// Communication generates a team communication
func (s *Service) Communication(ctx context.Context, req models.CommunicationRequest) (string, error) {
	log.Infof("Generating %s: %q", req.ContentType, req.Subject)
	return s.complete(ctx, "communication", CommunicationPrompt(req))
}

// JiraTicket expands rough notes into a ticket body
func (s *Service) JiraTicket(ctx context.Context, req models.JiraGenerateRequest) (string, error) {
	log.Infof("Generating %s ticket: %q", req.TicketType, req.Subject)
	return s.complete(ctx, "jira ticket", JiraTicketPrompt(req))
}

// Comment generates a comment for a post
func (s *Service) Comment(ctx context.Context, req models.CommentRequest) (string, error) {
	log.Infof("Generating %s comment for %s", req.Tone, req.Platform)
	return s.complete(ctx, "comment", CommentPrompt(req))
}

func (s *Service) complete(ctx context.Context, what string, p llm.Prompt) (string, error) {
	out, err := s.llm.Complete(ctx, p)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", what, err)
	}
	return out, nil
}
