package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient answers every prompt without calling a provider.
// It records prompts so callers can assert on what was sent.
type MockClient struct {
	mu       sync.Mutex
	prompts  []Prompt
	Response string
	Err      error
}

// NewMockClient creates a mock that echoes a short canned completion
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Complete records the prompt and returns the configured response
func (m *MockClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("[mock completion] %s", firstLine(prompt.User)), nil
}

// Prompts returns every prompt received so far
func (m *MockClient) Prompts() []Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Prompt, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Last returns the most recent prompt
func (m *MockClient) Last() (Prompt, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return Prompt{}, false
	}
	return m.prompts[len(m.prompts)-1], true
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
