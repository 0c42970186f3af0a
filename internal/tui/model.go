// Package tui is the bubbletea adapter: it owns nothing about buffers,
// actions, or playback - it only translates tea.Msg into the ui package's
// vocabulary (keys.KeyChord, events.AppEvent) and renders whatever
// ui.App.Render already produced. Grounded on the teacher's thin-transport
// layering (internal/api translates HTTP into typed requests and leaves
// all the logic to internal/services); here the transport is a terminal
// instead of HTTP, and internal/ui stands in for internal/services.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/killallgit/podcast-tui/internal/events"
	"github.com/killallgit/podcast-tui/internal/ui"
	"github.com/killallgit/podcast-tui/internal/ui/keys"
)

// Model wraps an *ui.App as a tea.Model. It holds only terminal-session
// state (the current viewport size) - everything else lives in App.
type Model struct {
	app    *ui.App
	router *events.Router

	width  int
	height int
}

// New builds a Model around app, draining evts for its lifetime.
func New(app *ui.App, evts *events.Router) Model {
	return Model{app: app, router: evts}
}

// appEventMsg wraps a single AppEvent delivered off the router, so it can
// travel through bubbletea's Msg channel like any other input.
type appEventMsg events.AppEvent

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.router)
}

// waitForEvent blocks on the router's receive side and returns exactly one
// message; Update re-issues this command after handling each event so the
// loop keeps draining without polling.
func waitForEvent(router *events.Router) tea.Cmd {
	return func() tea.Msg {
		return appEventMsg(<-router.Events())
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		return m, nil
	case tea.KeyMsg:
		m.app.HandleKey(translateKey(v))
		if m.app.Quit() {
			return m, tea.Quit
		}
		return m, nil
	case appEventMsg:
		m.app.HandleEvent(events.AppEvent(v))
		if m.app.Quit() {
			return m, tea.Quit
		}
		return m, waitForEvent(m.router)
	default:
		return m, nil
	}
}

// View renders the current buffer into the viewport, reserving the last
// line for the minibuffer - the one piece of layout this package owns,
// since ui.Buffer only knows how to render its own content region.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentHeight := m.height - 1
	if contentHeight < 0 {
		contentHeight = 0
	}

	cur := m.app.Registry.Current()
	var lines []string
	if cur != nil {
		lines = cur.Render(m.width, contentHeight)
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	return joinLines(lines) + "\n" + renderMinibuffer(m.app.Minibuffer, m.width)
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// translateKey maps bubbletea's KeyMsg onto keys.KeyChord. Named keys are
// matched by Type; everything else falls back to the first rune, which
// covers both plain letters and the small set of punctuation chords the
// resolver binds (e.g. "[", "]", "+", "-").
func translateKey(msg tea.KeyMsg) keys.KeyChord {
	switch msg.Type {
	case tea.KeyEnter:
		return keys.KeyChord{Key: "Enter"}
	case tea.KeyTab:
		return keys.KeyChord{Key: "Tab"}
	case tea.KeyShiftTab:
		return keys.KeyChord{Key: "Tab", Shift: true}
	case tea.KeyEsc:
		return keys.KeyChord{Key: "Esc"}
	case tea.KeyBackspace:
		return keys.KeyChord{Key: "Backspace"}
	case tea.KeySpace:
		return keys.KeyChord{Key: "Space"}
	case tea.KeyUp:
		return keys.KeyChord{Key: "Up"}
	case tea.KeyDown:
		return keys.KeyChord{Key: "Down"}
	case tea.KeyLeft:
		return keys.KeyChord{Key: "Left"}
	case tea.KeyRight:
		return keys.KeyChord{Key: "Right"}
	case tea.KeyPgUp:
		return keys.KeyChord{Key: "PageUp"}
	case tea.KeyPgDown:
		return keys.KeyChord{Key: "PageDown"}
	case tea.KeyHome:
		return keys.KeyChord{Key: "Home"}
	case tea.KeyEnd:
		return keys.KeyChord{Key: "End"}
	case tea.KeyDelete:
		return keys.KeyChord{Key: "Delete"}
	case tea.KeyCtrlN:
		return keys.KeyChord{Key: "n", Ctrl: true}
	case tea.KeyCtrlP:
		return keys.KeyChord{Key: "p", Ctrl: true}
	case tea.KeyCtrlQ:
		return keys.KeyChord{Key: "q", Ctrl: true}
	case tea.KeyCtrlSpace:
		return keys.KeyChord{Key: "Space", Ctrl: true}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return keys.KeyChord{Key: string(msg.Runes[0]), Alt: msg.Alt}
		}
	}
	return keys.KeyChord{}
}
