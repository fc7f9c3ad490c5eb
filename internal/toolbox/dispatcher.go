package toolbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

// Endpoints of the toolbox API
const (
	EndpointSocialGenerate        = "/api/social/generate"
	EndpointYouTubeSummarize      = "/api/youtube/summarize"
	EndpointTranscriptAnalyze     = "/api/transcript/analyze"
	EndpointCommunicationGenerate = "/api/communication/generate"
	EndpointJiraGenerate          = "/api/jira/generate"
	EndpointJiraCreate            = "/api/jira/create"
	EndpointCommentsGenerate      = "/api/comments/generate"
)

// Dispatcher issues exactly one JSON POST per call against the toolbox API.
// It never retries and sets no timeout of its own; callers cancel through ctx.
type Dispatcher struct {
	baseURL    string
	httpClient *http.Client
}

// DispatcherOption customizes a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) DispatcherOption {
	return func(d *Dispatcher) {
		if c != nil {
			d.httpClient = c
		}
	}
}

// NewDispatcher creates a dispatcher rooted at baseURL
func NewDispatcher(baseURL string, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BaseURL returns the API root the dispatcher posts to
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// Post sends body as JSON to endpoint and decodes the response into out.
// Any transport error or non-2xx status is reported as a *RequestFailedError.
func (d *Dispatcher) Post(ctx context.Context, endpoint string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debugf("Dispatching request to %s", endpoint)
	resp, err := d.httpClient.Do(req)
	if err != nil {
		log.Errorf("Request to %s failed: %v", endpoint, err)
		return &RequestFailedError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Errorf("Request to %s failed: status %d, body: %s", endpoint, resp.StatusCode, log.Truncate(string(respBody)))
		return &RequestFailedError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorf("Failed to decode response from %s: %v", endpoint, err)
		return &RequestFailedError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
