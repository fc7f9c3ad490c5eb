package common

import (
	"context"
	"fmt"
	"time"

	"trpc.group/trpc-go/trpc-a2a-go/client"
	"trpc.group/trpc-go/trpc-a2a-go/protocol"

	"github.com/tuannvm/ai-toolbox/internal/config"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

// SetupA2AClient creates and configures an A2A client with appropriate authentication
func SetupA2AClient(cfg *config.Config, targetURL string) (*client.A2AClient, error) {
	var opts []client.Option
	switch cfg.AuthType {
	case "apikey":
		log.Debugf("Using API key authentication for A2A client")
		opts = append(opts, client.WithAPIKeyAuth(cfg.APIKey, "X-API-Key"))
	case "jwt":
		log.Warnf("JWT client tokens are not supported; calling %s without credentials", targetURL)
	default:
		log.Warnf("No authentication configured for A2A client")
	}

	a2aClient, err := client.NewA2AClient(targetURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create A2A client: %w", err)
	}
	return a2aClient, nil
}

// SendTask synchronously sends a task and returns the completion message.
// Artifact parts are appended after the status message parts.
func SendTask(ctx context.Context, a2aClient *client.A2AClient, params protocol.SendTaskParams) (protocol.Message, error) {
	task, err := a2aClient.SendTasks(ctx, params)
	if err != nil {
		return protocol.Message{}, fmt.Errorf("SendTasks RPC failed: %w", err)
	}
	var parts []protocol.Part
	if task.Status.Message != nil {
		parts = append(parts, task.Status.Message.Parts...)
	}
	for _, art := range task.Artifacts {
		parts = append(parts, art.Parts...)
	}
	return protocol.Message{Parts: parts}, nil
}

// AwaitTask polls a task until it reaches a final state or ctx is done
func AwaitTask(ctx context.Context, a2aClient *client.A2AClient, taskID string, interval time.Duration) (*protocol.Task, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		task, err := a2aClient.GetTasks(ctx, protocol.TaskQueryParams{ID: taskID})
		if err != nil {
			return nil, fmt.Errorf("failed to get task: %w", err)
		}
		log.Debugf("Task %s status: %s", taskID, task.Status.State)

		switch task.Status.State {
		case protocol.TaskState("completed"), protocol.TaskState("failed"), protocol.TaskState("canceled"):
			return task, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
