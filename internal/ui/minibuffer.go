package ui

import (
	"strings"
	"unicode/utf8"
)

// MinibufferKind is the minibuffer's current content variant.
type MinibufferKind int

const (
	MinibufferNone MinibufferKind = iota
	MinibufferMessage
	MinibufferError
	MinibufferStatus
	MinibufferInput
	MinibufferPrompt
	MinibufferPromptWithCompletion
	MinibufferCommand
)

const minibufferHistoryCapacity = 100

// Minibuffer is the single-line modal input surface. History is bounded
// and navigable via up/down with cycling; tab-completion filters
// candidates by case-insensitive prefix and cycles on repeated
// invocation, resetting whenever the input is edited.
type Minibuffer struct {
	Kind    MinibufferKind
	Text    string
	Cursor  int
	Purpose string

	history      []string
	historyIndex int

	candidates    []string
	completionIdx int
}

func NewMinibuffer() *Minibuffer {
	return &Minibuffer{Kind: MinibufferNone}
}

// ShowMessage/ShowError set a transient, non-editable status line.
func (m *Minibuffer) ShowMessage(text string) {
	m.Kind = MinibufferMessage
	m.Text = text
}

func (m *Minibuffer) ShowError(text string) {
	m.Kind = MinibufferError
	m.Text = text
}

// Prompt opens an editable input surface for the given purpose (e.g.
// "add_podcast", "search", "command").
func (m *Minibuffer) Prompt(purpose string) {
	m.Kind = MinibufferPrompt
	if purpose == "command" {
		m.Kind = MinibufferCommand
	}
	m.Purpose = purpose
	m.Text = ""
	m.Cursor = 0
	m.historyIndex = len(m.history)
	m.candidates = nil
	m.completionIdx = -1
}

// Clear resets the minibuffer to its empty state, keeping its history.
func (m *Minibuffer) Clear() {
	history := m.history
	*m = *NewMinibuffer()
	m.history = history
}

// Insert appends s at the cursor and resets any in-progress completion
// cycle, since editing invalidates the candidate filter.
func (m *Minibuffer) Insert(s string) {
	m.Text = m.Text[:m.Cursor] + s + m.Text[m.Cursor:]
	m.Cursor += len(s)
	m.candidates = nil
	m.completionIdx = -1
}

// Backspace removes the rune before the cursor, if any.
func (m *Minibuffer) Backspace() {
	if m.Cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(m.Text[:m.Cursor])
	m.Text = m.Text[:m.Cursor-size] + m.Text[m.Cursor:]
	m.Cursor -= size
	m.candidates = nil
	m.completionIdx = -1
}

// Submit records Text in history (bounded, dropping the oldest entry
// past capacity) and returns it.
func (m *Minibuffer) Submit() string {
	value := m.Text
	if value != "" {
		m.history = append(m.history, value)
		if len(m.history) > minibufferHistoryCapacity {
			m.history = m.history[len(m.history)-minibufferHistoryCapacity:]
		}
	}
	m.Clear()
	return value
}

// HistoryUp/HistoryDown navigate the bounded history, cycling past
// either end rather than stopping.
func (m *Minibuffer) HistoryUp() {
	if len(m.history) == 0 {
		return
	}
	m.historyIndex--
	if m.historyIndex < 0 {
		m.historyIndex = len(m.history) - 1
	}
	m.Text = m.history[m.historyIndex]
	m.Cursor = len(m.Text)
}

func (m *Minibuffer) HistoryDown() {
	if len(m.history) == 0 {
		return
	}
	m.historyIndex++
	if m.historyIndex >= len(m.history) {
		m.historyIndex = 0
	}
	m.Text = m.history[m.historyIndex]
	m.Cursor = len(m.Text)
}

// TabComplete filters candidates by case-insensitive prefix against the
// current Text on first invocation, then cycles through matches on
// repeated invocation without re-filtering.
func (m *Minibuffer) TabComplete(allCandidates []string) {
	if m.candidates == nil {
		prefix := strings.ToLower(m.Text)
		for _, c := range allCandidates {
			if strings.HasPrefix(strings.ToLower(c), prefix) {
				m.candidates = append(m.candidates, c)
			}
		}
		m.completionIdx = -1
		m.Kind = MinibufferPromptWithCompletion
	}
	if len(m.candidates) == 0 {
		return
	}
	m.completionIdx = (m.completionIdx + 1) % len(m.candidates)
	m.Text = m.candidates[m.completionIdx]
	m.Cursor = len(m.Text)
}

// Candidates exposes the current completion set, for rendering.
func (m *Minibuffer) Candidates() []string {
	return m.candidates
}
