// Package tui renders the toolbox dashboard in the terminal
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/toolbox"
)

// doneMsg reports a finished generation or ticket creation.
// screenSeq ties it to the screen that started it.
type doneMsg struct {
	screenSeq int
	err       error
	created   bool
}

// Model is the bubbletea model of the dashboard
type Model struct {
	tb        *toolbox.Toolbox
	dashboard *toolbox.Dashboard
	cards     []toolbox.Card
	cursor    int

	screen    *screen
	screenSeq int
	running   bool
	spinner   spinner.Model

	notice   string
	noticeOK bool
	width    int
}

// New creates the dashboard model on the overview
func New(tb *toolbox.Toolbox) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		tb:        tb,
		dashboard: tb.NewDashboard(),
		cards:     toolbox.Cards(),
		spinner:   sp,
	}
}

// Run starts the dashboard and blocks until the user quits
func Run(tb *toolbox.Toolbox) error {
	_, err := tea.NewProgram(New(tb), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case doneMsg:
		if m.screen == nil || msg.screenSeq != m.screenSeq {
			log.Debugf("Dropping result for a closed tool")
			return m, nil
		}
		if !errors.Is(msg.err, toolbox.ErrInFlight) {
			m.running = false
		}
		m.setNotice(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == nil {
			return m.updateOverview(msg)
		}
		return m.updateScreen(msg)
	}
	return m, nil
}

func (m Model) updateOverview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case "enter":
		card := m.cards[m.cursor]
		tool, err := m.dashboard.Open(card.ID)
		if err != nil {
			m.notice, m.noticeOK = err.Error(), false
			return m, nil
		}
		s, err := newScreen(tool, card.Title)
		if err != nil {
			_ = m.dashboard.Back()
			m.notice, m.noticeOK = err.Error(), false
			return m, nil
		}
		m.screen = s
		m.screenSeq++
		m.notice = ""
		return m, s.fields[0].focus()
	}
	return m, nil
}

func (m Model) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.screen
	current := s.fields[s.focus]

	switch msg.String() {
	case "esc":
		if err := m.dashboard.Back(); err != nil {
			log.Warnf("Back failed: %v", err)
		}
		m.screen = nil
		m.running = false
		m.notice = ""
		return m, nil
	case "tab", "down":
		return m, m.moveFocus(1)
	case "shift+tab", "up":
		return m, m.moveFocus(-1)
	case "ctrl+s":
		if m.running {
			m.setBusyNotice()
			return m, nil
		}
		return m, m.start(s.generate(), false)
	case "ctrl+t":
		if s.create == nil {
			return m, nil
		}
		if m.running {
			m.setBusyNotice()
			return m, nil
		}
		return m, m.start(s.create(), true)
	case "ctrl+y":
		m.postProcess(func(res toolbox.Snapshot[string]) (string, error) {
			return "Copied to clipboard", m.tb.PostProcessor.Copy(res)
		})
		return m, nil
	case "ctrl+e":
		m.postProcess(func(res toolbox.Snapshot[string]) (string, error) {
			path, err := m.tb.PostProcessor.Export(res, s.export())
			return "Exported to " + path, err
		})
		return m, nil
	}

	if current.isChoice() {
		switch msg.String() {
		case "left", "h":
			current.cycle(-1)
		case "right", "l", " ":
			current.cycle(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	current.input, cmd = current.input.Update(msg)
	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	s := m.screen
	s.fields[s.focus].blur()
	n := len(s.fields)
	s.focus = ((s.focus+delta)%n + n) % n
	return s.fields[s.focus].focus()
}

// start runs fn off the UI loop; the tool's invocation state drives the view.
// fn must not touch the screen fields.
func (m *Model) start(fn task, create bool) tea.Cmd {
	seq := m.screenSeq
	m.notice = ""
	m.running = true
	run := func() tea.Msg {
		_, err := fn(context.Background())
		return doneMsg{screenSeq: seq, err: err, created: create}
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *Model) postProcess(fn func(res toolbox.Snapshot[string]) (string, error)) {
	message, err := fn(m.screen.state())
	if err != nil {
		n := toolbox.NoticeFor(err)
		m.notice, m.noticeOK = n.Title+": "+n.Description, false
		return
	}
	m.notice, m.noticeOK = message, true
}

func (m *Model) setBusyNotice() {
	n := toolbox.NoticeFor(toolbox.ErrInFlight)
	m.notice, m.noticeOK = n.Title+": "+n.Description, false
}

func (m *Model) setNotice(msg doneMsg) {
	if msg.err != nil {
		n := toolbox.NoticeFor(msg.err)
		m.notice, m.noticeOK = n.Title+": "+n.Description, false
		return
	}
	if msg.created {
		url := m.screen.createState().Result
		m.notice, m.noticeOK = "Ticket created: "+url, true
		return
	}
	m.notice, m.noticeOK = "Done", true
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	if m.screen == nil {
		b.WriteString(titleStyle.Render("AI Toolbox"))
		b.WriteString("\n")
		for i, c := range m.cards {
			style := cardStyle
			if i == m.cursor {
				style = selectedCardStyle
			}
			b.WriteString(style.Render(lipgloss.JoinVertical(lipgloss.Left, c.Title, dimStyle.Render(c.Description))))
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("↑/↓ select • enter open • q quit"))
	} else {
		b.WriteString(m.screenView())
	}
	if m.notice != "" {
		style := errorStyle
		if m.noticeOK {
			style = noticeStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.notice))
	}
	return b.String()
}

func (m Model) screenView() string {
	s := m.screen
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.title))
	b.WriteString("\n")
	for i, f := range s.fields {
		label := labelStyle
		if i == s.focus {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(f.label))
		b.WriteString(f.view())
		b.WriteString("\n")
	}

	snap := s.state()
	switch {
	case snap.Spinner:
		b.WriteString(fmt.Sprintf("\n%s Generating...", m.spinner.View()))
	case snap.HasResult:
		b.WriteString(resultStyle.Render(snap.Result))
	}

	help := "tab next • ←/→ choose • ctrl+s generate • ctrl+y copy • ctrl+e export • esc back"
	if s.create != nil {
		help += " • ctrl+t create ticket"
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(help))
	return b.String()
}
