package common

import (
	"encoding/json"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-a2a-go/protocol"

	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/models"
)

// ErrNoToolTask is returned when no part of a message holds a tool task
var ErrNoToolTask = errors.New("no tool task found in message")

// ExtractToolTask finds the first part holding a ToolTask.
// DataParts are decoded from their data, TextParts from their JSON text.
func ExtractToolTask(message protocol.Message) (*models.ToolTask, error) {
	if len(message.Parts) == 0 {
		return nil, fmt.Errorf("message has no parts")
	}

	for _, part := range message.Parts {
		var raw []byte

		var dp *protocol.DataPart
		switch v := part.(type) {
		case protocol.DataPart:
			dp = &v
		case *protocol.DataPart:
			dp = v
		}
		if dp != nil {
			b, err := json.Marshal(dp.Data)
			if err != nil {
				log.Debugf("Skipping DataPart that cannot be marshalled: %v", err)
				continue
			}
			raw = b
		} else if text, ok := TextOf(part); ok {
			raw = []byte(text)
		} else {
			continue
		}

		var task models.ToolTask
		if err := json.Unmarshal(raw, &task); err != nil {
			log.Debugf("Skipping part that is not a tool task: %v", err)
			continue
		}
		if task.Tool != "" {
			return &task, nil
		}
	}
	return nil, ErrNoToolTask
}

// DecodeInput converts a task's loose input map into a typed request
func DecodeInput(input map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal task input: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode task input: %w", err)
	}
	return nil
}

// NewToolTaskMessage builds the message an A2A caller sends for a tool task
func NewToolTaskMessage(task models.ToolTask) (protocol.Message, error) {
	raw, err := json.Marshal(task)
	if err != nil {
		return protocol.Message{}, fmt.Errorf("failed to marshal tool task: %w", err)
	}
	return protocol.Message{
		Parts: []protocol.Part{protocol.NewTextPart(string(raw))},
	}, nil
}
