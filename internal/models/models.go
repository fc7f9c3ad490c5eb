// Package models holds the JSON contract shared by the toolbox client and the
// API server. The server enforces the binding tags.
package models

import "fmt"

// SocialPostRequest is the body of POST /api/social/generate
type SocialPostRequest struct {
	Topic              string `json:"topic" binding:"required"`
	Platform           string `json:"platform" binding:"required"`
	WritingStyle       string `json:"writing_style" binding:"required"`
	CustomInstructions string `json:"custom_instructions,omitempty"`
}

// YouTubeRequest is the body of POST /api/youtube/summarize
type YouTubeRequest struct {
	VideoURL     string `json:"video_url" binding:"required"`
	OutputType   string `json:"output_type" binding:"required"`
	Language     string `json:"language"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
}

// TranscriptRequest is the body of POST /api/transcript/analyze
type TranscriptRequest struct {
	Transcript   string `json:"transcript" binding:"required"`
	OutputType   string `json:"output_type" binding:"required"`
	Language     string `json:"language"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
}

// CommunicationRequest is the body of POST /api/communication/generate
type CommunicationRequest struct {
	ContentType    string `json:"content_type" binding:"required"`
	Subject        string `json:"subject" binding:"required"`
	Details        string `json:"details,omitempty"`
	Tone           string `json:"tone" binding:"required"`
	Style          string `json:"style" binding:"required"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

// JiraGenerateRequest is the body of POST /api/jira/generate
type JiraGenerateRequest struct {
	Subject          string `json:"subject" binding:"required"`
	RoughDescription string `json:"rough_description" binding:"required"`
	TicketType       string `json:"ticket_type" binding:"required"`
	Priority         string `json:"priority"`
}

// JiraSettings carries the caller's Jira credentials inside a create request.
// The JSON keys are camelCase on the wire.
type JiraSettings struct {
	JiraURL    string `json:"jiraUrl" binding:"required"`
	Username   string `json:"username" binding:"required"`
	APIToken   string `json:"apiToken" binding:"required"`
	ProjectKey string `json:"projectKey" binding:"required"`
}

// String redacts the API token so settings can never leak through logs
func (s JiraSettings) String() string {
	return fmt.Sprintf("JiraSettings{JiraURL:%s Username:%s APIToken:[redacted] ProjectKey:%s}", s.JiraURL, s.Username, s.ProjectKey)
}

// GoString keeps %#v redacted as well
func (s JiraSettings) GoString() string { return s.String() }

// JiraCreateRequest is the body of POST /api/jira/create
type JiraCreateRequest struct {
	Subject      string       `json:"subject" binding:"required"`
	Content      string       `json:"content" binding:"required"`
	TicketType   string       `json:"ticket_type" binding:"required"`
	Priority     string       `json:"priority"`
	JiraSettings JiraSettings `json:"jira_settings"`
}

// CommentRequest is the body of POST /api/comments/generate
type CommentRequest struct {
	Content            string `json:"content" binding:"required"`
	Platform           string `json:"platform" binding:"required"`
	Tone               string `json:"tone" binding:"required"`
	CustomInstructions string `json:"custom_instructions,omitempty"`
}

// GenerationResponse is returned by every generation endpoint
type GenerationResponse struct {
	Result       string        `json:"result"`
	VideoDetails *VideoDetails `json:"video_details,omitempty"`
}

// JiraCreateResponse is returned by POST /api/jira/create
type JiraCreateResponse struct {
	TicketURL string `json:"ticket_url"`
	TicketKey string `json:"ticket_key,omitempty"`
}

// VideoDetails describes the video a YouTube summary was produced from
type VideoDetails struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// ErrorResponse is the JSON body of every failed API call
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody holds the code and message of a failed API call
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToolTask is the payload an A2A caller sends to the toolbox agent.
// Input holds the JSON body of the matching HTTP endpoint.
type ToolTask struct {
	Tool  string                 `json:"tool"`
	Input map[string]interface{} `json:"input"`
}

// ToolTaskResult is the payload the toolbox agent returns
type ToolTaskResult struct {
	Tool   string `json:"tool"`
	Result string `json:"result"`
}
