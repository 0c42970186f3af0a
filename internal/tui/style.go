package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/killallgit/podcast-tui/internal/ui"
)

var (
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderMinibuffer renders the minibuffer's current Kind as a single
// styled line, truncated to width. Truncation happens on the plain text
// before styling is applied, so an ANSI escape sequence is never cut
// mid-code. An editable kind shows its Purpose as a prompt prefix
// followed by Text with a caret at the cursor.
func renderMinibuffer(m *ui.Minibuffer, width int) string {
	switch m.Kind {
	case ui.MinibufferMessage:
		return messageStyle.Render(truncate(m.Text, width))
	case ui.MinibufferError:
		return errorStyle.Render(truncate(m.Text, width))
	case ui.MinibufferStatus:
		return statusStyle.Render(truncate(m.Text, width))
	case ui.MinibufferPrompt, ui.MinibufferPromptWithCompletion, ui.MinibufferCommand, ui.MinibufferInput:
		prefix := promptPrefix(m.Purpose)
		plain := prefix + m.Text[:m.Cursor] + "|" + m.Text[m.Cursor:]
		if m.Kind == ui.MinibufferPromptWithCompletion {
			if candidates := m.Candidates(); len(candidates) > 0 {
				plain += "  [" + strings.Join(candidates, " ") + "]"
			}
		}
		return promptStyle.Render(truncate(plain, width))
	default:
		return ""
	}
}

func promptPrefix(purpose string) string {
	switch purpose {
	case "add_podcast":
		return "Feed URL: "
	case "search":
		return "Search: "
	case "command":
		return "M-x "
	default:
		return purpose + ": "
	}
}

// truncate trims s to at most width runes. Callers always pass plain
// text and apply styling afterward, so a lipgloss escape sequence is
// never split mid-code.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
