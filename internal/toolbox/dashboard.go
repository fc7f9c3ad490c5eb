package toolbox

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/tuannvm/ai-toolbox/internal/config"
	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

// Card is one tile of the dashboard overview
type Card struct {
	ID          ToolID
	Title       string
	Description string
}

var cards = []Card{
	{ID: ToolSocialPost, Title: "Social Post Generator", Description: "Create posts for LinkedIn, X, YouTube and Instagram"},
	{ID: ToolYouTube, Title: "YouTube Summarizer", Description: "Summarize a video or analyze a pasted transcript"},
	{ID: ToolCommunication, Title: "Team Communication", Description: "Draft emails, announcements and status updates"},
	{ID: ToolJira, Title: "Jira Ticket Creator", Description: "Turn rough notes into a ticket and file it in Jira"},
}

// Cards returns the dashboard tiles in display order
func Cards() []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// ToolFactory creates a fresh tool instance for an id
type ToolFactory func(id ToolID) (Tool, error)

// View is the dashboard navigation state: the overview or one active tool
type View struct {
	Overview bool
	Active   ToolID
}

// Dashboard switches between the overview and exactly one active tool.
// Every Open creates a fresh tool; Back detaches it.
type Dashboard struct {
	mu      sync.Mutex
	factory ToolFactory
	active  Tool
}

// NewDashboard creates a dashboard showing the overview
func NewDashboard(factory ToolFactory) *Dashboard {
	return &Dashboard{factory: factory}
}

// Open activates the tool with the given id. Only allowed from the overview.
func (d *Dashboard) Open(id ToolID) (Tool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active != nil {
		return nil, fmt.Errorf("cannot open %s while %s is active", id, d.active.ID())
	}
	tool, err := d.factory(id)
	if err != nil {
		return nil, err
	}
	d.active = tool
	log.Debugf("Dashboard opened %s", id)
	return tool, nil
}

// Back returns to the overview, discarding the active tool and its state
func (d *Dashboard) Back() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active == nil {
		return fmt.Errorf("dashboard is already showing the overview")
	}
	d.active.Detach()
	log.Debugf("Dashboard closed %s", d.active.ID())
	d.active = nil
	return nil
}

// View returns the current navigation state
func (d *Dashboard) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == nil {
		return View{Overview: true}
	}
	return View{Active: d.active.ID()}
}

// Active returns the active tool, or nil on the overview
func (d *Dashboard) Active() Tool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Toolbox wires the shared collaborators every tool instance needs
type Toolbox struct {
	Dispatcher    *Dispatcher
	PostProcessor *PostProcessor
	Comments      CommentGenerationService
}

// New creates a toolbox from configuration, exporting to the OS file system
func New(cfg *config.Config) *Toolbox {
	d := NewDispatcher(cfg.APIBaseURL)
	return &Toolbox{
		Dispatcher:    d,
		PostProcessor: NewPostProcessor(afero.NewOsFs(), cfg.ExportDir, SystemClipboard{}),
		Comments:      NewCommentService(cfg, d),
	}
}

// NewTool is a ToolFactory creating fresh tool instances
func (tb *Toolbox) NewTool(id ToolID) (Tool, error) {
	switch id {
	case ToolSocialPost:
		return NewSocialPostTool(tb.Dispatcher), nil
	case ToolYouTube:
		return NewYouTubeTool(tb.Dispatcher), nil
	case ToolCommunication:
		return NewCommunicationTool(tb.Dispatcher), nil
	case ToolJira:
		return NewJiraTool(tb.Dispatcher), nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", id)
	}
}

// NewCommentTool creates a comment tool backed by the configured service
func (tb *Toolbox) NewCommentTool() *CommentTool {
	return NewCommentTool(tb.Comments)
}

// NewDashboard creates a dashboard whose tools share this toolbox
func (tb *Toolbox) NewDashboard() *Dashboard {
	return NewDashboard(tb.NewTool)
}
