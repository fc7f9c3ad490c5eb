package toolbox

import (
	"context"
	"strings"

	"github.com/tuannvm/ai-toolbox/internal/models"
)

// ToolID identifies one of the dashboard tools
type ToolID string

const (
	ToolSocialPost    ToolID = "social-post"
	ToolYouTube       ToolID = "youtube"
	ToolCommunication ToolID = "communication"
	ToolJira          ToolID = "jira"
)

// Tool is the part of a tool controller the dashboard needs
type Tool interface {
	ID() ToolID
	// Detach makes any in-flight request discard its result
	Detach()
}

// run drives one invocation: gate on the current phase, call, record the outcome
func run[T any](ctx context.Context, inv *Invocation[T], call func(context.Context) (T, error)) (T, error) {
	var zero T
	token, err := inv.Begin()
	if err != nil {
		return zero, err
	}
	res, err := call(ctx)
	if err != nil {
		inv.Fail(token, err)
		return zero, err
	}
	inv.Succeed(token, res)
	return res, nil
}

// textTool holds what every text-producing tool shares
type textTool struct {
	id         ToolID
	dispatcher *Dispatcher
	state      *Invocation[string]
}

func newTextTool(id ToolID, d *Dispatcher) textTool {
	return textTool{id: id, dispatcher: d, state: NewInvocation[string](string(id))}
}

// ID returns the tool identifier
func (t *textTool) ID() ToolID { return t.id }

// Detach discards any in-flight result
func (t *textTool) Detach() { t.state.Detach() }

// State returns the current invocation snapshot
func (t *textTool) State() Snapshot[string] { return t.state.Snapshot() }

func (t *textTool) generate(ctx context.Context, endpoint string, body interface{}) (string, error) {
	return run(ctx, t.state, func(ctx context.Context) (string, error) {
		var resp models.GenerationResponse
		if err := t.dispatcher.Post(ctx, endpoint, body, &resp); err != nil {
			return "", err
		}
		return resp.Result, nil
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
