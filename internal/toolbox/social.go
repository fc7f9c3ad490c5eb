package toolbox

import (
	"context"

	"github.com/tuannvm/ai-toolbox/internal/models"
)

// Platforms and writing styles offered by the social post form
var (
	SocialPlatforms     = []string{"linkedin", "twitter", "youtube", "instagram"}
	SocialWritingStyles = []string{"professional", "casual", "inspirational", "educational", "humorous", "thought-provoking"}
)

// SocialPostForm holds the social post generator inputs
type SocialPostForm struct {
	Topic              string
	Platform           string
	WritingStyle       string
	CustomInstructions string
}

// Request validates the form and builds the request body
func (f SocialPostForm) Request() (models.SocialPostRequest, error) {
	if err := required("topic", f.Topic); err != nil {
		return models.SocialPostRequest{}, err
	}
	if err := required("platform", f.Platform); err != nil {
		return models.SocialPostRequest{}, err
	}
	if err := required("writingStyle", f.WritingStyle); err != nil {
		return models.SocialPostRequest{}, err
	}
	req := models.SocialPostRequest{
		Topic:        f.Topic,
		Platform:     f.Platform,
		WritingStyle: f.WritingStyle,
	}
	if !isBlank(f.CustomInstructions) {
		req.CustomInstructions = f.CustomInstructions
	}
	return req, nil
}

// ExportSpec names the exported file after the platform
func (f SocialPostForm) ExportSpec() ExportSpec {
	return ExportSpec{Tool: "social-post", Qualifier: f.Platform, Ext: ExtText}
}

// SocialPostTool generates social media posts
type SocialPostTool struct {
	textTool
}

// NewSocialPostTool creates a social post tool instance
func NewSocialPostTool(d *Dispatcher) *SocialPostTool {
	return &SocialPostTool{textTool: newTextTool(ToolSocialPost, d)}
}

// Generate validates the form and requests a post
func (t *SocialPostTool) Generate(ctx context.Context, form SocialPostForm) (string, error) {
	req, err := form.Request()
	if err != nil {
		return "", err
	}
	return t.generate(ctx, EndpointSocialGenerate, req)
}
