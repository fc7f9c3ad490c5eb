package toolbox

import (
	"context"

	"github.com/tuannvm/ai-toolbox/internal/models"
)

// Choices offered by the communication form
var (
	CommunicationContentTypes = []string{"email", "announcement", "status-update", "meeting-summary", "chat-message"}
	CommunicationTones        = []string{"professional", "friendly", "formal", "casual", "urgent"}
	CommunicationStyles       = []string{"concise", "detailed", "bullet-points", "narrative"}
)

// CommunicationForm holds the team communication generator inputs
type CommunicationForm struct {
	ContentType    string
	Subject        string
	Details        string
	Tone           string
	Style          string
	AdditionalInfo string
}

// Request validates the form and builds the request body
func (f CommunicationForm) Request() (models.CommunicationRequest, error) {
	for _, field := range []struct{ name, value string }{
		{"contentType", f.ContentType},
		{"subject", f.Subject},
		{"tone", f.Tone},
		{"style", f.Style},
	} {
		if err := required(field.name, field.value); err != nil {
			return models.CommunicationRequest{}, err
		}
	}
	req := models.CommunicationRequest{
		ContentType: f.ContentType,
		Subject:     f.Subject,
		Tone:        f.Tone,
		Style:       f.Style,
	}
	if !isBlank(f.Details) {
		req.Details = f.Details
	}
	if !isBlank(f.AdditionalInfo) {
		req.AdditionalInfo = f.AdditionalInfo
	}
	return req, nil
}

// ExportSpec names the exported file after the content type
func (f CommunicationForm) ExportSpec() ExportSpec {
	return ExportSpec{Tool: "communication", Qualifier: f.ContentType, Ext: ExtText}
}

// CommunicationTool generates team communications
type CommunicationTool struct {
	textTool
}

// NewCommunicationTool creates a communication tool instance
func NewCommunicationTool(d *Dispatcher) *CommunicationTool {
	return &CommunicationTool{textTool: newTextTool(ToolCommunication, d)}
}

// Generate validates the form and requests the communication text
func (t *CommunicationTool) Generate(ctx context.Context, form CommunicationForm) (string, error) {
	req, err := form.Request()
	if err != nil {
		return "", err
	}
	return t.generate(ctx, EndpointCommunicationGenerate, req)
}
