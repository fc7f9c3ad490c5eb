package toolbox

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialPostScenario(t *testing.T) {
	api := newFakeAPI(t)
	tool := NewSocialPostTool(api.dispatcher())

	out, err := tool.Generate(context.Background(), SocialPostForm{
		Topic:        "remote work tips",
		Platform:     "twitter",
		WritingStyle: "humorous",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated text", out)

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, EndpointSocialGenerate, calls[0].Path)
	assert.Equal(t, `{"topic":"remote work tips","platform":"twitter","writing_style":"humorous"}`, calls[0].Raw)
	assert.NotContains(t, calls[0].Body, "custom_instructions")

	snap := tool.State()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	assert.Equal(t, "generated text", snap.Result)
}

func TestSocialPostSendsCustomInstructions(t *testing.T) {
	api := newFakeAPI(t)
	tool := NewSocialPostTool(api.dispatcher())

	_, err := tool.Generate(context.Background(), SocialPostForm{
		Topic:              "launch",
		Platform:           "linkedin",
		WritingStyle:       "professional",
		CustomInstructions: "mention the beta",
	})
	require.NoError(t, err)
	assert.Equal(t, "mention the beta", api.calls()[0].Body["custom_instructions"])
}

func TestRequiredFieldsNeverReachNetwork(t *testing.T) {
	api := newFakeAPI(t)
	d := api.dispatcher()
	ctx := context.Background()

	validSocial := SocialPostForm{Topic: "t", Platform: "twitter", WritingStyle: "casual"}
	validYouTube := YouTubeForm{ActiveTab: InputModeVideo, VideoURL: "https://youtu.be/abc", OutputType: "summary", Language: "english"}
	validComm := CommunicationForm{ContentType: "email", Subject: "s", Tone: "friendly", Style: "concise"}
	validJira := JiraTicketForm{Subject: "s", RoughDescription: "d", TicketType: "Bug"}

	tests := []struct {
		name string
		call func() error
	}{
		{"social topic", func() error {
			f := validSocial
			f.Topic = "   "
			_, err := NewSocialPostTool(d).Generate(ctx, f)
			return err
		}},
		{"social platform", func() error {
			f := validSocial
			f.Platform = ""
			_, err := NewSocialPostTool(d).Generate(ctx, f)
			return err
		}},
		{"social writing style", func() error {
			f := validSocial
			f.WritingStyle = ""
			_, err := NewSocialPostTool(d).Generate(ctx, f)
			return err
		}},
		{"youtube video url", func() error {
			f := validYouTube
			f.VideoURL = ""
			_, err := NewYouTubeTool(d).Generate(ctx, f)
			return err
		}},
		{"youtube transcript", func() error {
			f := validYouTube
			f.ActiveTab = InputModeTranscript
			_, err := NewYouTubeTool(d).Generate(ctx, f)
			return err
		}},
		{"youtube output type", func() error {
			f := validYouTube
			f.OutputType = ""
			_, err := NewYouTubeTool(d).Generate(ctx, f)
			return err
		}},
		{"youtube language", func() error {
			f := validYouTube
			f.Language = ""
			_, err := NewYouTubeTool(d).Generate(ctx, f)
			return err
		}},
		{"communication content type", func() error {
			f := validComm
			f.ContentType = ""
			_, err := NewCommunicationTool(d).Generate(ctx, f)
			return err
		}},
		{"communication subject", func() error {
			f := validComm
			f.Subject = ""
			_, err := NewCommunicationTool(d).Generate(ctx, f)
			return err
		}},
		{"communication tone", func() error {
			f := validComm
			f.Tone = ""
			_, err := NewCommunicationTool(d).Generate(ctx, f)
			return err
		}},
		{"communication style", func() error {
			f := validComm
			f.Style = ""
			_, err := NewCommunicationTool(d).Generate(ctx, f)
			return err
		}},
		{"jira subject", func() error {
			f := validJira
			f.Subject = ""
			_, err := NewJiraTool(d).Generate(ctx, f)
			return err
		}},
		{"jira description", func() error {
			f := validJira
			f.RoughDescription = ""
			_, err := NewJiraTool(d).Generate(ctx, f)
			return err
		}},
		{"jira ticket type", func() error {
			f := validJira
			f.TicketType = ""
			_, err := NewJiraTool(d).Generate(ctx, f)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, IsValidation(err), "expected ValidationError, got %v", err)
		})
	}
	assert.Empty(t, api.calls())
}

type generateCase struct {
	name     string
	generate func() error
	state    func() Snapshot[string]
}

func TestFailureKeepsPreviousResult(t *testing.T) {
	api := newFakeAPI(t)
	d := api.dispatcher()
	ctx := context.Background()

	social := NewSocialPostTool(d)
	yt := NewYouTubeTool(d)
	comm := NewCommunicationTool(d)
	jira := NewJiraTool(d)

	tools := []generateCase{
		{"social", func() error {
			_, err := social.Generate(ctx, SocialPostForm{Topic: "t", Platform: "twitter", WritingStyle: "casual"})
			return err
		}, social.State},
		{"youtube", func() error {
			_, err := yt.Generate(ctx, YouTubeForm{ActiveTab: InputModeTranscript, Transcript: "hello", OutputType: "notes", Language: "english"})
			return err
		}, yt.State},
		{"communication", func() error {
			_, err := comm.Generate(ctx, CommunicationForm{ContentType: "email", Subject: "s", Tone: "friendly", Style: "concise"})
			return err
		}, comm.State},
		{"jira", func() error {
			_, err := jira.Generate(ctx, JiraTicketForm{Subject: "s", RoughDescription: "d", TicketType: "Task"})
			return err
		}, jira.State},
	}

	for _, tt := range tools {
		t.Run(tt.name, func(t *testing.T) {
			api.respond(http.StatusOK, "good result for "+tt.name)
			require.NoError(t, tt.generate())

			api.respond(http.StatusInternalServerError, "")
			err := tt.generate()
			require.Error(t, err)
			assert.True(t, IsRequestFailed(err))

			snap := tt.state()
			assert.Equal(t, PhaseFailed, snap.Phase)
			assert.False(t, snap.Spinner)
			assert.True(t, snap.HasResult)
			assert.Equal(t, "good result for "+tt.name, snap.Result)
		})
	}
}

func TestYouTubeTranscriptTabRouting(t *testing.T) {
	api := newFakeAPI(t)
	tool := NewYouTubeTool(api.dispatcher())

	_, err := tool.Generate(context.Background(), YouTubeForm{
		ActiveTab:    InputModeTranscript,
		VideoURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Transcript:   "we talked about roadmaps",
		OutputType:   "summary",
		Language:     "english",
		CustomPrompt: "ignored unless custom",
	})
	require.NoError(t, err)

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, EndpointTranscriptAnalyze, calls[0].Path)
	assert.Equal(t, "we talked about roadmaps", calls[0].Body["transcript"])
	assert.NotContains(t, calls[0].Body, "video_url")
	assert.NotContains(t, calls[0].Body, "custom_prompt")
}

func TestYouTubeVideoTabWithCustomPrompt(t *testing.T) {
	api := newFakeAPI(t)
	tool := NewYouTubeTool(api.dispatcher())

	_, err := tool.Generate(context.Background(), YouTubeForm{
		ActiveTab:    InputModeVideo,
		VideoURL:     "https://youtu.be/dQw4w9WgXcQ",
		Transcript:   "stale transcript",
		OutputType:   OutputTypeCustom,
		Language:     "english",
		CustomPrompt: "list every song mentioned",
	})
	require.NoError(t, err)

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, EndpointYouTubeSummarize, calls[0].Path)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", calls[0].Body["video_url"])
	assert.Equal(t, "list every song mentioned", calls[0].Body["custom_prompt"])
	assert.NotContains(t, calls[0].Body, "transcript")
}

func TestCommunicationOmitsBlankOptionalFields(t *testing.T) {
	api := newFakeAPI(t)
	tool := NewCommunicationTool(api.dispatcher())

	_, err := tool.Generate(context.Background(), CommunicationForm{
		ContentType: "announcement",
		Subject:     "Office move",
		Tone:        "friendly",
		Style:       "concise",
		Details:     "",
	})
	require.NoError(t, err)

	body := api.calls()[0].Body
	assert.NotContains(t, body, "details")
	assert.NotContains(t, body, "additional_info")
	assert.Equal(t, "announcement", body["content_type"])
}

func TestJiraGenerateDefaultsPriority(t *testing.T) {
	api := newFakeAPI(t)
	tool := NewJiraTool(api.dispatcher())

	_, err := tool.Generate(context.Background(), JiraTicketForm{Subject: "Login bug", RoughDescription: "500 on submit", TicketType: "Bug"})
	require.NoError(t, err)
	assert.Equal(t, DefaultPriority, api.calls()[0].Body["priority"])
}

func TestJiraCreateGating(t *testing.T) {
	api := newFakeAPI(t)
	tool := NewJiraTool(api.dispatcher())
	ctx := context.Background()
	creds := JiraCredentials{
		EndpointURL: "https://example.atlassian.net",
		Username:    "dev@example.com",
		APIToken:    "secret-token",
		ProjectKey:  "TB",
	}

	_, err := tool.CreateTicket(ctx, creds)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, api.calls())

	api.respond(http.StatusOK, "h2. Description\nLogin fails")
	_, err = tool.Generate(ctx, JiraTicketForm{Subject: "Login bug", RoughDescription: "fails", TicketType: "Bug", Priority: "High"})
	require.NoError(t, err)

	for _, missing := range []string{"endpointUrl", "username", "apiToken", "projectKey"} {
		c := creds
		switch missing {
		case "endpointUrl":
			c.EndpointURL = ""
		case "username":
			c.Username = ""
		case "apiToken":
			c.APIToken = ""
		case "projectKey":
			c.ProjectKey = ""
		}
		_, err := tool.CreateTicket(ctx, c)
		require.Error(t, err, missing)
		assert.True(t, IsValidation(err), missing)
	}
	require.Len(t, api.calls(), 1)

	url, err := tool.CreateTicket(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "https://jira.example.com/browse/TB-1", url)

	calls := api.calls()
	require.Len(t, calls, 2)
	create := calls[1]
	assert.Equal(t, EndpointJiraCreate, create.Path)
	assert.Equal(t, "Login bug", create.Body["subject"])
	assert.Equal(t, "h2. Description\nLogin fails", create.Body["content"])
	assert.Equal(t, "Bug", create.Body["ticket_type"])
	assert.Equal(t, "High", create.Body["priority"])
	settings, ok := create.Body["jira_settings"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "https://example.atlassian.net", settings["jiraUrl"])
	assert.Equal(t, "secret-token", settings["apiToken"])
	assert.Equal(t, "TB", settings["projectKey"])

	assert.Equal(t, PhaseSucceeded, tool.CreateState().Phase)
}

func TestJiraCreatePairsContentWithItsForm(t *testing.T) {
	api := newFakeAPI(t)
	tool := NewJiraTool(api.dispatcher())
	ctx := context.Background()
	creds := JiraCredentials{EndpointURL: "https://example.atlassian.net", Username: "u", APIToken: "t", ProjectKey: "TB"}

	api.respond(http.StatusOK, "old text")
	_, err := tool.Generate(ctx, JiraTicketForm{Subject: "Old", RoughDescription: "d", TicketType: "Task", Priority: "Low"})
	require.NoError(t, err)

	api.respond(http.StatusOK, "new text")
	api.block()
	release := api.release
	go func() {
		_, _ = tool.Generate(ctx, JiraTicketForm{Subject: "New", RoughDescription: "d", TicketType: "Bug", Priority: "High"})
	}()
	<-api.arrived
	api.unblock()
	close(release)

	// create as soon as the new text is visible
	for tool.State().Result != "new text" {
		runtime.Gosched()
	}
	_, err = tool.CreateTicket(ctx, creds)
	require.NoError(t, err)

	calls := api.calls()
	create := calls[len(calls)-1]
	assert.Equal(t, "new text", create.Body["content"])
	assert.Equal(t, "New", create.Body["subject"])
	assert.Equal(t, "Bug", create.Body["ticket_type"])
	assert.Equal(t, "High", create.Body["priority"])
}

func TestJiraCredentialsAreRedacted(t *testing.T) {
	creds := JiraCredentials{EndpointURL: "https://x", Username: "u", APIToken: "super-secret", ProjectKey: "P"}
	assert.NotContains(t, fmt.Sprintf("%v", creds), "super-secret")
	assert.NotContains(t, fmt.Sprintf("%+v", creds), "super-secret")
	assert.NotContains(t, fmt.Sprintf("%#v", creds), "super-secret")
}

func TestGenerateRejectedWhileInFlight(t *testing.T) {
	api := newFakeAPI(t)
	api.block()
	tool := NewSocialPostTool(api.dispatcher())
	form := SocialPostForm{Topic: "t", Platform: "twitter", WritingStyle: "casual"}

	done := make(chan error, 1)
	go func() {
		_, err := tool.Generate(context.Background(), form)
		done <- err
	}()

	<-api.arrived
	assert.True(t, tool.State().Spinner)

	_, err := tool.Generate(context.Background(), form)
	assert.ErrorIs(t, err, ErrInFlight)

	close(api.release)
	require.NoError(t, <-done)
	assert.Len(t, api.calls(), 1)
	assert.Equal(t, PhaseSucceeded, tool.State().Phase)
}

func TestDetachedToolDiscardsLateResult(t *testing.T) {
	api := newFakeAPI(t)
	api.block()
	tool := NewCommunicationTool(api.dispatcher())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = tool.Generate(context.Background(), CommunicationForm{ContentType: "email", Subject: "s", Tone: "friendly", Style: "concise"})
	}()

	<-api.arrived
	tool.Detach()
	close(api.release)
	<-done

	assert.False(t, tool.State().HasResult)
}

func TestFixtureCommentServiceIgnoresContent(t *testing.T) {
	tool := NewCommentTool(NewFixtureCommentService(0))
	ctx := context.Background()

	first, err := tool.Generate(ctx, CommentForm{PostContent: "A post about cats", Platform: "linkedin", Tone: "humorous"})
	require.NoError(t, err)

	tool2 := NewCommentTool(NewFixtureCommentService(0))
	second, err := tool2.Generate(ctx, CommentForm{PostContent: "Quarterly earnings", Platform: "twitter", Tone: "humorous"})
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, commentFixtures["humorous"], first)
	assert.Equal(t, first, second)
	assert.Equal(t, PhaseSucceeded, tool.State().Phase)
}

func TestFixtureCommentServiceDelay(t *testing.T) {
	svc := NewFixtureCommentService(50 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	out, err := svc.Generate(ctx, "content", "linkedin", "professional", "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Len(t, out, 3)
}

func TestCommentRequiresContent(t *testing.T) {
	tool := NewCommentTool(NewFixtureCommentService(0))
	_, err := tool.Generate(context.Background(), CommentForm{Platform: "linkedin", Tone: "humorous"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, PhaseIdle, tool.State().Phase)
}

func TestHTTPCommentService(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.StatusOK, "Great insight!")
	tool := NewCommentTool(NewHTTPCommentService(api.dispatcher()))

	out, err := tool.Generate(context.Background(), CommentForm{PostContent: "post", Platform: "linkedin", Tone: "professional"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Great insight!"}, out)

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, EndpointCommentsGenerate, calls[0].Path)
	assert.Equal(t, "post", calls[0].Body["content"])
	assert.NotContains(t, calls[0].Body, "custom_instructions")
}
