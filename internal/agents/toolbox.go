package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"trpc.group/trpc-go/trpc-a2a-go/protocol"
	"trpc.group/trpc-go/trpc-a2a-go/server"
	"trpc.group/trpc-go/trpc-a2a-go/taskmanager"

	"github.com/tuannvm/ai-toolbox/internal/common"
	"github.com/tuannvm/ai-toolbox/internal/config"
	"github.com/tuannvm/ai-toolbox/internal/generator"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/models"
	"github.com/tuannvm/ai-toolbox/internal/transcript"
)

// Tool names accepted in a ToolTask
const (
	ToolSocialPost    = "social-post"
	ToolYouTube       = "youtube"
	ToolTranscript    = "transcript"
	ToolCommunication = "communication"
	ToolJira          = "jira"
	ToolComments      = "comments"
)

// VideoDetailer looks up the title and author of a video
type VideoDetailer interface {
	Details(ctx context.Context, videoID string) models.VideoDetails
}

// ToolboxAgent exposes the generation tools to other agents.
// Jira ticket creation is not offered: it needs the caller's credentials.
type ToolboxAgent struct {
	config      *config.Config
	generator   *generator.Service
	transcripts transcript.Fetcher
	details     VideoDetailer
}

// NewToolboxAgent creates a new ToolboxAgent
func NewToolboxAgent(cfg *config.Config, gen *generator.Service, transcripts transcript.Fetcher, details VideoDetailer) *ToolboxAgent {
	return &ToolboxAgent{
		config:      cfg,
		generator:   gen,
		transcripts: transcripts,
		details:     details,
	}
}

// Skills describes the tools on the agent card
func Skills() []server.AgentSkill {
	skill := func(id, name, description string, examples ...string) server.AgentSkill {
		return server.AgentSkill{
			ID:          id,
			Name:        name,
			Description: common.StringPtr(description),
			Tags:        []string{"generation", id},
			Examples:    examples,
		}
	}
	return []server.AgentSkill{
		skill(ToolSocialPost, "Social Post Generator", "Writes a post for linkedin, twitter, youtube or instagram",
			`{"tool":"social-post","input":{"topic":"remote work tips","platform":"twitter","writing_style":"humorous"}}`),
		skill(ToolYouTube, "YouTube Summarizer", "Summarizes a YouTube video from its captions"),
		skill(ToolTranscript, "Transcript Analyzer", "Analyzes a pasted transcript"),
		skill(ToolCommunication, "Team Communication", "Drafts emails, announcements and status updates"),
		skill(ToolJira, "Jira Ticket Writer", "Turns rough notes into a structured Jira ticket body"),
		skill(ToolComments, "Comment Generator", "Writes a comment replying to a social post"),
	}
}

// Process implements the TaskProcessor interface from trpc-a2a-go
func (a *ToolboxAgent) Process(ctx context.Context, taskID string, message protocol.Message, handle taskmanager.TaskHandle) error {
	log.Infof("Received task with ID: %s", taskID)

	if err := handle.UpdateStatus(protocol.TaskState("working"), nil); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	task, err := common.ExtractToolTask(message)
	if err != nil {
		log.Warnf("Task %s carries no tool task: %v", taskID, err)
		return fmt.Errorf("failed to extract task data: %w", err)
	}
	log.Infof("Processing %s task %s", task.Tool, taskID)

	result, err := a.run(ctx, task)
	if err != nil {
		log.Errorf("Task %s failed: %v", taskID, err)
		return err
	}

	artifact := protocol.Artifact{
		Name:        common.StringPtr(task.Tool),
		Description: common.StringPtr("Generated " + task.Tool + " text"),
		Parts:       []protocol.Part{protocol.NewTextPart(result)},
	}
	if err := handle.AddArtifact(artifact); err != nil {
		return fmt.Errorf("failed to record artifact: %w", err)
	}

	resultJSON, err := json.Marshal(models.ToolTaskResult{Tool: task.Tool, Result: result})
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	responseMsg := &protocol.Message{
		Parts: []protocol.Part{protocol.NewTextPart(string(resultJSON))},
	}
	if err := handle.UpdateStatus(protocol.TaskState("completed"), responseMsg); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	log.Infof("Task %s completed successfully", taskID)
	return nil
}

// run validates the task input the same way the HTTP API does, then generates
func (a *ToolboxAgent) run(ctx context.Context, task *models.ToolTask) (string, error) {
	switch task.Tool {
	case ToolSocialPost:
		var req models.SocialPostRequest
		if err := decode(task.Input, &req); err != nil {
			return "", err
		}
		return a.generator.SocialPost(ctx, req)

	case ToolYouTube:
		var req models.YouTubeRequest
		if err := decode(task.Input, &req); err != nil {
			return "", err
		}
		videoID, ok := transcript.ExtractVideoID(req.VideoURL)
		if !ok {
			return "", fmt.Errorf("invalid YouTube URL: %s", req.VideoURL)
		}
		details := a.details.Details(ctx, videoID)
		text, err := a.transcripts.Fetch(ctx, videoID, req.Language)
		if err != nil {
			return "", fmt.Errorf("failed to get transcript: %w", err)
		}
		return a.generator.Transcript(ctx, text, req.OutputType, req.CustomPrompt, details.Title)

	case ToolTranscript:
		var req models.TranscriptRequest
		if err := decode(task.Input, &req); err != nil {
			return "", err
		}
		return a.generator.Transcript(ctx, req.Transcript, req.OutputType, req.CustomPrompt, "Custom Transcript")

	case ToolCommunication:
		var req models.CommunicationRequest
		if err := decode(task.Input, &req); err != nil {
			return "", err
		}
		return a.generator.Communication(ctx, req)

	case ToolJira:
		var req models.JiraGenerateRequest
		if err := decode(task.Input, &req); err != nil {
			return "", err
		}
		return a.generator.JiraTicket(ctx, req)

	case ToolComments:
		var req models.CommentRequest
		if err := decode(task.Input, &req); err != nil {
			return "", err
		}
		return a.generator.Comment(ctx, req)

	default:
		return "", fmt.Errorf("unknown tool: %s", task.Tool)
	}
}

func decode(input map[string]interface{}, out interface{}) error {
	if err := common.DecodeInput(input, out); err != nil {
		return err
	}
	if err := binding.Validator.ValidateStruct(out); err != nil {
		return fmt.Errorf("invalid task input: %w", err)
	}
	return nil
}

// StartServer starts the A2A server for this agent and blocks until ctx is done
func (a *ToolboxAgent) StartServer(ctx context.Context) error {
	srv, err := common.SetupServer(common.SetupServerOptions{
		AgentName:    a.config.AgentName,
		AgentVersion: a.config.AgentVersion,
		AgentURL:     a.config.AgentURL,
		Description:  "Generates social posts, video summaries, team communication, Jira tickets and comments",
		AuthType:     a.config.AuthType,
		JWTSecret:    a.config.JWTSecret,
		APIKey:       a.config.APIKey,
		Processor:    a,
		Skills:       Skills(),
	})
	if err != nil {
		return err
	}
	return common.StartServer(ctx, srv, fmt.Sprintf(":%d", a.config.AgentPort))
}
