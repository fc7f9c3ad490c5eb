package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannvm/ai-toolbox/internal/models"
	"github.com/tuannvm/ai-toolbox/internal/toolbox"
)

type memClipboard struct{ text string }

func (c *memClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T) (Model, *memClipboard, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"a witty post"}`))
	}))
	t.Cleanup(srv.Close)

	cb := &memClipboard{}
	tb := &toolbox.Toolbox{
		Dispatcher:    toolbox.NewDispatcher(srv.URL),
		PostProcessor: toolbox.NewPostProcessor(afero.NewMemMapFs(), "/exports", cb),
		Comments:      toolbox.NewFixtureCommentService(0),
	}
	return New(tb), cb, &calls
}

// press feeds keys to the model. Only the commands of ctrl+s and ctrl+t are
// run; cursor blink commands would just sleep.
func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = next.(Model)
		if k.Type == tea.KeyCtrlS || k.Type == tea.KeyCtrlT {
			m = drain(t, m, cmd)
		}
	}
	return m
}

// drain runs commands synchronously, feeding back completion messages
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
		return m
	case doneMsg:
		next, _ := m.Update(msg)
		return next.(Model)
	}
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestOverviewListsCards(t *testing.T) {
	m, _, _ := newTestModel(t)
	view := m.View()
	for _, c := range toolbox.Cards() {
		assert.Contains(t, view, c.Title)
	}
}

func TestOpenAndBack(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	require.NotNil(t, m.screen)
	assert.Equal(t, toolbox.ToolYouTube, m.screen.id)
	assert.Equal(t, toolbox.View{Active: toolbox.ToolYouTube}, m.dashboard.View())

	m = press(t, m, key(tea.KeyEsc))
	assert.Nil(t, m.screen)
	assert.True(t, m.dashboard.View().Overview)
}

func TestGenerateBlankTopicShowsNotice(t *testing.T) {
	m, _, calls := newTestModel(t)

	m = press(t, m, key(tea.KeyEnter), key(tea.KeyCtrlS))
	assert.Contains(t, m.View(), "Missing information")
	assert.Zero(t, *calls)
}

func TestGenerateCopyAndStaleResult(t *testing.T) {
	m, cb, calls := newTestModel(t)

	m = press(t, m, key(tea.KeyEnter), runes("remote work tips"), key(tea.KeyCtrlS))
	assert.Equal(t, 1, *calls)
	assert.Contains(t, m.View(), "a witty post")

	m = press(t, m, key(tea.KeyCtrlY))
	assert.Equal(t, "a witty post", cb.text)
	assert.Contains(t, m.View(), "Copied to clipboard")

	m = press(t, m, key(tea.KeyCtrlE))
	assert.Contains(t, m.View(), "Exported to /exports/social-post-linkedin-")

	// a completion from a closed screen is ignored
	seq := m.screenSeq
	m = press(t, m, key(tea.KeyEsc), key(tea.KeyEnter))
	next, _ := m.Update(doneMsg{screenSeq: seq})
	m = next.(Model)
	assert.Empty(t, m.notice)
}

func TestChoiceFieldsCycle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, key(tea.KeyEnter), key(tea.KeyTab), key(tea.KeyRight))
	assert.Equal(t, "twitter", m.screen.get("Platform"))

	m = press(t, m, key(tea.KeyLeft), key(tea.KeyLeft))
	assert.Equal(t, "instagram", m.screen.get("Platform"))
}

// runDone executes a command off the test goroutine, the way the bubbletea
// runtime does, and returns the completion message it produced.
func runDone(cmd tea.Cmd) <-chan doneMsg {
	out := make(chan doneMsg, 1)
	go func() {
		var find func(c tea.Cmd)
		find = func(c tea.Cmd) {
			switch msg := c().(type) {
			case tea.BatchMsg:
				for _, inner := range msg {
					find(inner)
				}
			case doneMsg:
				out <- msg
			}
		}
		find(cmd)
		close(out)
	}()
	return out
}

func TestGenerateSendsFieldsAtKeyPress(t *testing.T) {
	topics := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SocialPostRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		topics <- req.Topic
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	}))
	defer srv.Close()

	m := New(&toolbox.Toolbox{
		Dispatcher:    toolbox.NewDispatcher(srv.URL),
		PostProcessor: toolbox.NewPostProcessor(afero.NewMemMapFs(), "/exports", &memClipboard{}),
		Comments:      toolbox.NewFixtureCommentService(0),
	})
	m = press(t, m, key(tea.KeyEnter), runes("remote work"))

	next, cmd := m.Update(key(tea.KeyCtrlS))
	m = next.(Model)
	require.NotNil(t, cmd)
	done := runDone(cmd)

	// keep typing while the request runs
	for _, r := range " and more" {
		next, _ = m.Update(runes(string(r)))
		m = next.(Model)
	}

	msg, ok := <-done
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Equal(t, "remote work", <-topics)
	assert.Equal(t, "remote work and more", m.screen.get("Topic"))
}

func TestGenerateWhileRunningDoesNotStartAgain(t *testing.T) {
	m, _, calls := newTestModel(t)
	m = press(t, m, key(tea.KeyEnter), runes("remote work tips"))

	next, first := m.Update(key(tea.KeyCtrlS))
	m = next.(Model)
	require.NotNil(t, first)
	assert.True(t, m.running)

	next, second := m.Update(key(tea.KeyCtrlS))
	m = next.(Model)
	assert.Nil(t, second)
	assert.Contains(t, m.View(), "Please wait")

	m = drain(t, m, first)
	assert.False(t, m.running)
	assert.Equal(t, 1, *calls)
}
