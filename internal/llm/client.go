package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/tuannvm/ai-toolbox/internal/config"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

// Prompt is one system/user exchange sent to a model.
// Zero MaxTokens or Temperature means "use the client default".
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// LLMClient defines the interface for interacting with LLM services
type LLMClient interface {
	// Complete sends a prompt to the LLM and returns the completion
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// ErrEmptyCompletion is returned when a provider answers with no choices
var ErrEmptyCompletion = errors.New("LLM returned no completion")

// Client implements the LLMClient interface using langchain-go
type Client struct {
	llm         llms.Model
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

// NewClient creates a new LLM client based on the provided configuration
func NewClient(cfg *config.Config) (LLMClient, error) {
	var llmModel llms.Model
	var err error

	switch cfg.LLMProvider {
	case "openai":
		opts := []openai.Option{
			openai.WithToken(cfg.LLMAPIKey),
			openai.WithModel(cfg.LLMModel),
		}
		if cfg.LLMServiceURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.LLMServiceURL))
		}
		llmModel, err = openai.New(opts...)
	case "azure":
		llmModel, err = openai.New(
			openai.WithToken(cfg.LLMAPIKey),
			openai.WithModel(cfg.LLMModel),
			openai.WithBaseURL(cfg.LLMServiceURL),
		)
	case "openai-sdk":
		return NewSDKClient(cfg)
	case "mock":
		log.Warnf("Using the mock LLM provider; completions are canned")
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &Client{
		llm:         llmModel,
		maxTokens:   cfg.LLMMaxTokens,
		temperature: cfg.LLMTemperature,
		timeout:     cfg.LLMTimeoutDuration(),
	}, nil
}

// Complete sends a prompt to the LLM and returns the completion
func (c *Client) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if c.llm == nil {
		return "", errors.New("LLM client not initialized")
	}

	log.Infof("Sending prompt to LLM: %s", log.Truncate(prompt.User))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, prompt.System),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt.User),
	}
	maxTokens, temperature := resolve(prompt, c.maxTokens, c.temperature)

	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	completion := resp.Choices[0].Content

	log.Infof("Received response from LLM: %s", log.Truncate(completion))

	return completion, nil
}

// resolve applies client defaults to the per-prompt generation options
func resolve(p Prompt, maxTokens int, temperature float64) (int, float64) {
	if p.MaxTokens > 0 {
		maxTokens = p.MaxTokens
	}
	if p.Temperature > 0 {
		temperature = p.Temperature
	}
	return maxTokens, temperature
}
