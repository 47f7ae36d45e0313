// Package testing drives bubbletea models synchronously in unit tests.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

func special(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

// KeyPress is a printable key such as "q" or "r".
func KeyPress(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// Special keys.
func KeyDown() tea.KeyMsg     { return special(tea.KeyDown) }
func KeyRight() tea.KeyMsg    { return special(tea.KeyRight) }
func KeyEnter() tea.KeyMsg    { return special(tea.KeyEnter) }
func KeyEsc() tea.KeyMsg      { return special(tea.KeyEsc) }
func KeyTab() tea.KeyMsg      { return special(tea.KeyTab) }
func KeyShiftTab() tea.KeyMsg { return special(tea.KeyShiftTab) }

// WindowSize is the message bubbletea sends on start and on terminal resize.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}

// InputSequence is an ordered list of messages to feed a model.
type InputSequence struct {
	inputs []tea.Msg
}

// NewInputSequence creates a sequence from msgs.
func NewInputSequence(msgs ...tea.Msg) *InputSequence {
	return &InputSequence{inputs: msgs}
}

// Apply feeds every message to model, running each returned command inline and
// feeding its result back in before the next input. It stops early at tea.Quit and
// reports whether that happened.
func (s *InputSequence) Apply(model tea.Model) (tea.Model, bool) {
	for _, in := range s.inputs {
		var quit bool
		if model, quit = drain(model, in); quit {
			return model, true
		}
	}
	return model, false
}

func drain(model tea.Model, first tea.Msg) (tea.Model, bool) {
	for queue := []tea.Msg{first}; len(queue) > 0; {
		msg := queue[0]
		queue = queue[1:]

		switch msg := msg.(type) {
		case nil:
		case tea.QuitMsg:
			return model, true
		case tea.BatchMsg:
			for _, cmd := range msg {
				if cmd != nil {
					queue = append(queue, cmd())
				}
			}
		default:
			var cmd tea.Cmd
			model, cmd = model.Update(msg)
			if cmd != nil {
				queue = append(queue, cmd())
			}
		}
	}
	return model, false
}
