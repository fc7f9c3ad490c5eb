package tui

import (
	"context"
	"fmt"

	"github.com/tuannvm/ai-toolbox/internal/toolbox"
)

// task is a request built from the field values at the time of the key press
type task func(ctx context.Context) (string, error)

// screen is the form and result panel of one open tool
type screen struct {
	id     toolbox.ToolID
	title  string
	fields []*field
	focus  int

	generate func() task
	state    func() toolbox.Snapshot[string]
	export   func() toolbox.ExportSpec
	markdown bool

	// jira only
	create      func() task
	createState func() toolbox.Snapshot[string]
}

func (s *screen) get(label string) string {
	for _, f := range s.fields {
		if f.label == label {
			return f.value()
		}
	}
	return ""
}

func newScreen(tool toolbox.Tool, title string) (*screen, error) {
	switch t := tool.(type) {
	case *toolbox.SocialPostTool:
		return socialScreen(t, title), nil
	case *toolbox.YouTubeTool:
		return youtubeScreen(t, title), nil
	case *toolbox.CommunicationTool:
		return communicationScreen(t, title), nil
	case *toolbox.JiraTool:
		return jiraScreen(t, title), nil
	default:
		return nil, fmt.Errorf("no screen for tool %s", tool.ID())
	}
}

func socialScreen(t *toolbox.SocialPostTool, title string) *screen {
	s := &screen{
		id:    t.ID(),
		title: title,
		fields: []*field{
			textField("Topic", "What should the post be about?"),
			choiceField("Platform", toolbox.SocialPlatforms, "linkedin"),
			choiceField("Writing style", toolbox.SocialWritingStyles, "professional"),
			textField("Instructions", "Optional extra instructions"),
		},
		state: t.State,
	}
	form := func() toolbox.SocialPostForm {
		return toolbox.SocialPostForm{
			Topic:              s.get("Topic"),
			Platform:           s.get("Platform"),
			WritingStyle:       s.get("Writing style"),
			CustomInstructions: s.get("Instructions"),
		}
	}
	s.generate = func() task {
		f := form()
		return func(ctx context.Context) (string, error) { return t.Generate(ctx, f) }
	}
	s.export = func() toolbox.ExportSpec { return form().ExportSpec() }
	return s
}

func youtubeScreen(t *toolbox.YouTubeTool, title string) *screen {
	s := &screen{
		id:    t.ID(),
		title: title,
		fields: []*field{
			choiceField("Input", []string{string(toolbox.InputModeVideo), string(toolbox.InputModeTranscript)}, string(toolbox.InputModeVideo)),
			textField("Video URL", "https://www.youtube.com/watch?v=..."),
			textField("Transcript", "Paste a transcript"),
			choiceField("Output type", toolbox.YouTubeOutputTypes, "summary"),
			choiceField("Language", toolbox.YouTubeLanguages, "english"),
			textField("Custom prompt", "Used when output type is custom"),
		},
		state:    t.State,
		markdown: true,
	}
	form := func() toolbox.YouTubeForm {
		return toolbox.YouTubeForm{
			ActiveTab:    toolbox.InputMode(s.get("Input")),
			VideoURL:     s.get("Video URL"),
			Transcript:   s.get("Transcript"),
			OutputType:   s.get("Output type"),
			Language:     s.get("Language"),
			CustomPrompt: s.get("Custom prompt"),
		}
	}
	s.generate = func() task {
		f := form()
		return func(ctx context.Context) (string, error) { return t.Generate(ctx, f) }
	}
	s.export = func() toolbox.ExportSpec { return form().ExportSpec() }
	return s
}

func communicationScreen(t *toolbox.CommunicationTool, title string) *screen {
	s := &screen{
		id:    t.ID(),
		title: title,
		fields: []*field{
			choiceField("Content type", toolbox.CommunicationContentTypes, "email"),
			textField("Subject", "What is it about?"),
			textField("Details", "Optional key points"),
			choiceField("Tone", toolbox.CommunicationTones, "professional"),
			choiceField("Style", toolbox.CommunicationStyles, "concise"),
			textField("Additional info", "Optional"),
		},
		state: t.State,
	}
	form := func() toolbox.CommunicationForm {
		return toolbox.CommunicationForm{
			ContentType:    s.get("Content type"),
			Subject:        s.get("Subject"),
			Details:        s.get("Details"),
			Tone:           s.get("Tone"),
			Style:          s.get("Style"),
			AdditionalInfo: s.get("Additional info"),
		}
	}
	s.generate = func() task {
		f := form()
		return func(ctx context.Context) (string, error) { return t.Generate(ctx, f) }
	}
	s.export = func() toolbox.ExportSpec { return form().ExportSpec() }
	return s
}

func jiraScreen(t *toolbox.JiraTool, title string) *screen {
	s := &screen{
		id:    t.ID(),
		title: title,
		fields: []*field{
			textField("Subject", "Short ticket title"),
			textField("Description", "Rough notes"),
			choiceField("Ticket type", toolbox.JiraTicketTypes, "Task"),
			choiceField("Priority", toolbox.JiraPriorities, toolbox.DefaultPriority),
			textField("Jira URL", "https://your-domain.atlassian.net"),
			textField("Username", "you@example.com"),
			secretField("API token"),
			textField("Project key", "PROJ"),
		},
		state:       t.State,
		createState: t.CreateState,
		export:      t.ExportSpec,
	}
	s.generate = func() task {
		form := toolbox.JiraTicketForm{
			Subject:          s.get("Subject"),
			RoughDescription: s.get("Description"),
			TicketType:       s.get("Ticket type"),
			Priority:         s.get("Priority"),
		}
		return func(ctx context.Context) (string, error) { return t.Generate(ctx, form) }
	}
	s.create = func() task {
		creds := toolbox.JiraCredentials{
			EndpointURL: s.get("Jira URL"),
			Username:    s.get("Username"),
			APIToken:    s.get("API token"),
			ProjectKey:  s.get("Project key"),
		}
		return func(ctx context.Context) (string, error) { return t.CreateTicket(ctx, creds) }
	}
	return s
}
