package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/tuannvm/ai-toolbox/internal/config"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

// SDKClient implements LLMClient with the official openai-go SDK
type SDKClient struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

// NewSDKClient creates a chat completions client for the "openai-sdk" provider
func NewSDKClient(cfg *config.Config) (*SDKClient, error) {
	if cfg.LLMAPIKey == "" {
		return nil, errors.New("openai api key missing; set LLM_API_KEY")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.LLMAPIKey)}
	if cfg.LLMServiceURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLMServiceURL))
	}
	return &SDKClient{
		client:      openai.NewClient(opts...),
		model:       cfg.LLMModel,
		maxTokens:   cfg.LLMMaxTokens,
		temperature: cfg.LLMTemperature,
		timeout:     cfg.LLMTimeoutDuration(),
	}, nil
}

// Complete sends the prompt as a chat completion
func (c *SDKClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	log.Infof("Sending prompt to %s: %s", c.model, log.Truncate(prompt.User))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	maxTokens, temperature := resolve(prompt, c.maxTokens, c.temperature)
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	completion := resp.Choices[0].Message.Content

	log.Infof("Received response from %s: %s", c.model, log.Truncate(completion))
	return completion, nil
}
