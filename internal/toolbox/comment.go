package toolbox

import (
	"context"
	"strings"
	"time"

	"github.com/tuannvm/ai-toolbox/internal/config"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/models"
)

// DefaultFixtureDelay is the fixed pause of the fixture comment service
const DefaultFixtureDelay = 2 * time.Second

// Choices offered by the comment form
var (
	CommentPlatforms = []string{"linkedin", "twitter", "youtube", "instagram", "facebook"}
	CommentTones     = []string{"friendly", "professional", "humorous", "supportive", "curious"}
)

// CommentGenerationService produces comment suggestions for a post
type CommentGenerationService interface {
	Generate(ctx context.Context, content, platform, tone, postContext string) ([]string, error)
}

var commentFixtures = map[string][]string{
	"friendly": {
		"Love this! Thanks so much for sharing 😊",
		"This made my day, great post!",
		"So glad I came across this, really enjoyed reading it.",
	},
	"professional": {
		"Thank you for sharing these insights. Very relevant to our industry.",
		"Well articulated. I'd be interested in discussing this further.",
		"Valuable perspective. This aligns with what we have been seeing as well.",
	},
	"humorous": {
		"I came for the content, stayed for the existential crisis 😂",
		"Bookmarking this so I can pretend I'll read it again later.",
		"My coffee and I both agree: this is gold ☕",
	},
	"supportive": {
		"You've got this! Rooting for you all the way.",
		"Such an inspiring journey, keep going!",
		"Proud of the progress you're sharing here. Well deserved!",
	},
	"curious": {
		"Interesting! What led you to this conclusion?",
		"How would this work for smaller teams?",
		"Would love to hear more about the challenges you faced along the way.",
	},
}

// FixtureCommentService returns canned comments keyed by tone after a fixed,
// non-cancelable pause. The post content is never used.
type FixtureCommentService struct {
	Delay time.Duration
}

// NewFixtureCommentService creates a fixture service with the given pause
func NewFixtureCommentService(delay time.Duration) *FixtureCommentService {
	return &FixtureCommentService{Delay: delay}
}

// Generate returns the fixture list for tone; unknown tones get the friendly list
func (s *FixtureCommentService) Generate(_ context.Context, _, _, tone, _ string) ([]string, error) {
	time.Sleep(s.Delay)
	comments, ok := commentFixtures[strings.ToLower(tone)]
	if !ok {
		comments = commentFixtures["friendly"]
	}
	out := make([]string, len(comments))
	copy(out, comments)
	return out, nil
}

// HTTPCommentService asks the toolbox API for a comment
type HTTPCommentService struct {
	dispatcher *Dispatcher
}

// NewHTTPCommentService creates a live comment service
func NewHTTPCommentService(d *Dispatcher) *HTTPCommentService {
	return &HTTPCommentService{dispatcher: d}
}

// Generate posts the comment request; the single returned comment becomes a one-item list
func (s *HTTPCommentService) Generate(ctx context.Context, content, platform, tone, postContext string) ([]string, error) {
	req := models.CommentRequest{
		Content:  content,
		Platform: platform,
		Tone:     tone,
	}
	if !isBlank(postContext) {
		req.CustomInstructions = postContext
	}
	var resp models.GenerationResponse
	if err := s.dispatcher.Post(ctx, EndpointCommentsGenerate, req, &resp); err != nil {
		return nil, err
	}
	return []string{resp.Result}, nil
}

// NewCommentService selects the comment service named by the configuration
func NewCommentService(cfg *config.Config, d *Dispatcher) CommentGenerationService {
	if cfg.CommentService == config.CommentServiceLive {
		log.Infof("Using live comment service at %s", d.BaseURL())
		return NewHTTPCommentService(d)
	}
	return NewFixtureCommentService(cfg.CommentFixtureDelay)
}

// CommentForm holds the comment generator inputs
type CommentForm struct {
	PostContent string
	Platform    string
	Tone        string
	Context     string
}

// Validate reports the first missing required field
func (f CommentForm) Validate() error {
	if err := required("postContent", f.PostContent); err != nil {
		return err
	}
	if err := required("platform", f.Platform); err != nil {
		return err
	}
	return required("tone", f.Tone)
}

// ExportSpec names the exported comments after the platform
func (f CommentForm) ExportSpec() ExportSpec {
	return ExportSpec{Tool: "comments", Qualifier: f.Platform, Ext: ExtText}
}

// CommentTool generates comment suggestions through a CommentGenerationService
type CommentTool struct {
	service CommentGenerationService
	state   *Invocation[[]string]
}

// NewCommentTool creates a comment tool instance
func NewCommentTool(service CommentGenerationService) *CommentTool {
	return &CommentTool{service: service, state: NewInvocation[[]string]("comments")}
}

// Generate validates the form and asks the service for comments
func (t *CommentTool) Generate(ctx context.Context, form CommentForm) ([]string, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return run(ctx, t.state, func(ctx context.Context) ([]string, error) {
		return t.service.Generate(ctx, form.PostContent, form.Platform, form.Tone, form.Context)
	})
}

// State returns the current invocation snapshot
func (t *CommentTool) State() Snapshot[[]string] { return t.state.Snapshot() }

// Detach discards any in-flight result
func (t *CommentTool) Detach() { t.state.Detach() }

// TextState is State with the comments joined for copy and export
func (t *CommentTool) TextState() Snapshot[string] {
	snap := t.state.Snapshot()
	return Snapshot[string]{
		Phase:     snap.Phase,
		Result:    JoinComments(snap.Result),
		HasResult: snap.HasResult,
		Spinner:   snap.Spinner,
	}
}

// JoinComments renders a comment list as export text, one comment per paragraph
func JoinComments(comments []string) string {
	return strings.Join(comments, "\n\n")
}
