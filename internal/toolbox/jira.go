package toolbox

import (
	"context"
	"fmt"
	"sync"

	"github.com/tuannvm/ai-toolbox/internal/models"
)

// DefaultPriority is used when the Jira form leaves priority blank
const DefaultPriority = "Medium"

// Choices offered by the Jira form
var (
	JiraTicketTypes = []string{"Story", "Task", "Bug", "Epic"}
	JiraPriorities  = []string{"Highest", "High", DefaultPriority, "Low", "Lowest"}
)

// JiraTicketForm holds the Jira ticket generator inputs
type JiraTicketForm struct {
	Subject          string
	RoughDescription string
	TicketType       string
	Priority         string
}

// Request validates the form and builds the request body
func (f JiraTicketForm) Request() (models.JiraGenerateRequest, error) {
	if err := required("subject", f.Subject); err != nil {
		return models.JiraGenerateRequest{}, err
	}
	if err := required("roughDescription", f.RoughDescription); err != nil {
		return models.JiraGenerateRequest{}, err
	}
	if err := required("ticketType", f.TicketType); err != nil {
		return models.JiraGenerateRequest{}, err
	}
	priority := f.Priority
	if isBlank(priority) {
		priority = DefaultPriority
	}
	return models.JiraGenerateRequest{
		Subject:          f.Subject,
		RoughDescription: f.RoughDescription,
		TicketType:       f.TicketType,
		Priority:         priority,
	}, nil
}

// JiraCredentials are the caller's Jira connection details. They are passed
// to CreateTicket for the duration of one call and never stored or logged.
type JiraCredentials struct {
	EndpointURL string
	Username    string
	APIToken    string
	ProjectKey  string
}

// String redacts the API token
func (c JiraCredentials) String() string {
	return fmt.Sprintf("JiraCredentials{EndpointURL:%s Username:%s APIToken:[redacted] ProjectKey:%s}", c.EndpointURL, c.Username, c.ProjectKey)
}

// GoString keeps %#v redacted as well
func (c JiraCredentials) GoString() string { return c.String() }

// Validate reports the first missing credential
func (c JiraCredentials) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"endpointUrl", c.EndpointURL},
		{"username", c.Username},
		{"apiToken", c.APIToken},
		{"projectKey", c.ProjectKey},
	} {
		if err := required(field.name, field.value); err != nil {
			return err
		}
	}
	return nil
}

func (c JiraCredentials) settings() models.JiraSettings {
	return models.JiraSettings{
		JiraURL:    c.EndpointURL,
		Username:   c.Username,
		APIToken:   c.APIToken,
		ProjectKey: c.ProjectKey,
	}
}

// JiraTool generates ticket text and creates the ticket in Jira
type JiraTool struct {
	textTool
	create *Invocation[string]

	mu        sync.Mutex
	generated models.JiraGenerateRequest
}

// NewJiraTool creates a Jira tool instance
func NewJiraTool(d *Dispatcher) *JiraTool {
	return &JiraTool{
		textTool: newTextTool(ToolJira, d),
		create:   NewInvocation[string]("jira-create"),
	}
}

// Generate validates the form and requests the ticket text
func (t *JiraTool) Generate(ctx context.Context, form JiraTicketForm) (string, error) {
	req, err := form.Request()
	if err != nil {
		return "", err
	}
	// generated must be stored before the result becomes visible to CreateTicket
	return run(ctx, t.state, func(ctx context.Context) (string, error) {
		var resp models.GenerationResponse
		if err := t.dispatcher.Post(ctx, EndpointJiraGenerate, req, &resp); err != nil {
			return "", err
		}
		t.mu.Lock()
		t.generated = req
		t.mu.Unlock()
		return resp.Result, nil
	})
}

// CanCreate reports why a ticket cannot be created yet, or nil if it can
func (t *JiraTool) CanCreate(creds JiraCredentials) error {
	if content, ok := t.state.Result(); !ok || content == "" {
		return newValidationError("content", "generate the ticket text before creating a ticket")
	}
	return creds.Validate()
}

// CreateTicket creates a Jira ticket from the last generated text and returns its URL
func (t *JiraTool) CreateTicket(ctx context.Context, creds JiraCredentials) (string, error) {
	if err := t.CanCreate(creds); err != nil {
		return "", err
	}
	content, _ := t.state.Result()
	t.mu.Lock()
	generated := t.generated
	t.mu.Unlock()

	body := models.JiraCreateRequest{
		Subject:      generated.Subject,
		Content:      content,
		TicketType:   generated.TicketType,
		Priority:     generated.Priority,
		JiraSettings: creds.settings(),
	}
	return run(ctx, t.create, func(ctx context.Context) (string, error) {
		var resp models.JiraCreateResponse
		if err := t.dispatcher.Post(ctx, EndpointJiraCreate, body, &resp); err != nil {
			return "", err
		}
		return resp.TicketURL, nil
	})
}

// CreateState returns the snapshot of the ticket creation call
func (t *JiraTool) CreateState() Snapshot[string] {
	return t.create.Snapshot()
}

// Detach discards in-flight generation and creation results
func (t *JiraTool) Detach() {
	t.textTool.Detach()
	t.create.Detach()
}

// ExportSpec names the exported ticket text after the ticket type
func (t *JiraTool) ExportSpec() ExportSpec {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ExportSpec{Tool: "jira-ticket", Qualifier: t.generated.TicketType, Ext: ExtText}
}
