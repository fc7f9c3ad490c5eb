package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"trpc.group/trpc-go/trpc-a2a-go/protocol"

	"github.com/tuannvm/ai-toolbox/internal/common"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/models"
)

func agentCallCmd(a *app) *cobra.Command {
	var (
		tool    string
		input   string
		target  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "agent-call",
		Short: "Send a tool task to the toolbox A2A agent",
		Example: `  toolbox agent-call --tool social-post \
    --input '{"topic":"remote work tips","platform":"twitter","writing_style":"humorous"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var fields map[string]interface{}
			if err := json.Unmarshal([]byte(input), &fields); err != nil {
				return fmt.Errorf("--input must be a JSON object: %w", err)
			}
			msg, err := common.NewToolTaskMessage(models.ToolTask{Tool: tool, Input: fields})
			if err != nil {
				return err
			}

			if target == "" {
				target = a.cfg.AgentURL
			}
			a2aClient, err := common.SetupA2AClient(a.cfg, target)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel func()
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			taskID := uuid.New().String()
			log.Infof("Sending %s task %s to %s", tool, taskID, target)
			reply, err := common.SendTask(ctx, a2aClient, protocol.SendTaskParams{ID: taskID, Message: msg})
			if err != nil {
				return err
			}
			if len(reply.Parts) == 0 {
				task, err := common.AwaitTask(ctx, a2aClient, taskID, time.Second)
				if err != nil {
					return err
				}
				if task.Status.State != protocol.TaskState("completed") {
					return fmt.Errorf("task %s ended as %s", taskID, task.Status.State)
				}
				if task.Status.Message != nil {
					reply = *task.Status.Message
				}
			}

			for _, part := range reply.Parts {
				text, ok := common.TextOf(part)
				if !ok {
					continue
				}
				var result models.ToolTaskResult
				if err := json.Unmarshal([]byte(text), &result); err == nil && result.Result != "" {
					fmt.Fprintln(cmd.OutOrStdout(), result.Result)
					return nil
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), common.JoinText(reply))
			return nil
		},
	}
	cmd.Flags().StringVar(&tool, "tool", "", "Tool name: social-post, youtube, transcript, communication, jira, comments")
	cmd.Flags().StringVar(&input, "input", "{}", "Tool input as a JSON object, same fields as the HTTP API")
	cmd.Flags().StringVar(&target, "agent-url", "", "Agent URL (defaults to AGENT_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Give up after this long")
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}
