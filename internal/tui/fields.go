package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field is one form row: free text or a fixed set of choices
type field struct {
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func textField(label, placeholder string) *field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 4000
	ti.Width = 50
	return &field{label: label, input: ti}
}

func secretField(label string) *field {
	f := textField(label, "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func choiceField(label string, choices []string, def string) *field {
	f := &field{label: label, choices: choices}
	for i, c := range choices {
		if c == def {
			f.choice = i
		}
	}
	return f
}

func (f *field) isChoice() bool { return f.choices != nil }

func (f *field) value() string {
	if f.isChoice() {
		return f.choices[f.choice]
	}
	return f.input.Value()
}

func (f *field) cycle(delta int) {
	n := len(f.choices)
	f.choice = ((f.choice+delta)%n + n) % n
}

func (f *field) focus() tea.Cmd {
	if f.isChoice() {
		return nil
	}
	return f.input.Focus()
}

func (f *field) blur() {
	if !f.isChoice() {
		f.input.Blur()
	}
}

func (f *field) view() string {
	if f.isChoice() {
		return "< " + f.value() + " >"
	}
	return f.input.View()
}
