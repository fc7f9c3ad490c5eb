package toolbox

import (
	"context"
	"fmt"

	"github.com/tuannvm/ai-toolbox/internal/models"
)

// InputMode selects which of the two YouTube tool inputs is active
type InputMode string

const (
	InputModeVideo      InputMode = "video"
	InputModeTranscript InputMode = "transcript"
)

// OutputTypeCustom enables the custom prompt field
const OutputTypeCustom = "custom"

// YouTube output types and languages offered by the form
var (
	YouTubeOutputTypes = []string{"summary", "notes", "explanation", "questions", OutputTypeCustom}
	YouTubeLanguages   = []string{"english", "spanish", "french", "german", "hindi", "japanese"}
)

// YouTubeForm holds the YouTube/transcript analyzer inputs.
// Only the field belonging to ActiveTab is sent.
type YouTubeForm struct {
	ActiveTab    InputMode
	VideoURL     string
	Transcript   string
	OutputType   string
	Language     string
	CustomPrompt string
}

// Route validates the form and returns the endpoint and body for the active tab
func (f YouTubeForm) Route() (string, interface{}, error) {
	var input string
	switch f.ActiveTab {
	case InputModeVideo, "":
		if err := required("videoUrl", f.VideoURL); err != nil {
			return "", nil, err
		}
		input = f.VideoURL
	case InputModeTranscript:
		if err := required("transcript", f.Transcript); err != nil {
			return "", nil, err
		}
		input = f.Transcript
	default:
		return "", nil, newValidationError("activeTab", fmt.Sprintf("unknown input mode %q", f.ActiveTab))
	}
	if err := required("outputType", f.OutputType); err != nil {
		return "", nil, err
	}
	if err := required("language", f.Language); err != nil {
		return "", nil, err
	}

	var customPrompt string
	if f.OutputType == OutputTypeCustom && !isBlank(f.CustomPrompt) {
		customPrompt = f.CustomPrompt
	}

	if f.ActiveTab == InputModeTranscript {
		return EndpointTranscriptAnalyze, models.TranscriptRequest{
			Transcript:   input,
			OutputType:   f.OutputType,
			Language:     f.Language,
			CustomPrompt: customPrompt,
		}, nil
	}
	return EndpointYouTubeSummarize, models.YouTubeRequest{
		VideoURL:     input,
		OutputType:   f.OutputType,
		Language:     f.Language,
		CustomPrompt: customPrompt,
	}, nil
}

// ExportSpec names the markdown export after the output type
func (f YouTubeForm) ExportSpec() ExportSpec {
	return ExportSpec{Tool: "youtube-analysis", Qualifier: f.OutputType, Ext: ExtMarkdown}
}

// YouTubeTool summarizes YouTube videos or pasted transcripts
type YouTubeTool struct {
	textTool
}

// NewYouTubeTool creates a YouTube tool instance
func NewYouTubeTool(d *Dispatcher) *YouTubeTool {
	return &YouTubeTool{textTool: newTextTool(ToolYouTube, d)}
}

// Generate validates the form and requests an analysis from the endpoint of the active tab
func (t *YouTubeTool) Generate(ctx context.Context, form YouTubeForm) (string, error) {
	endpoint, body, err := form.Route()
	if err != nil {
		return "", err
	}
	return t.generate(ctx, endpoint, body)
}
