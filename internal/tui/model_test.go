package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/podcast-tui/internal/ui/keys"
)

func TestTranslateKey_Named(t *testing.T) {
	require.Equal(t, keys.KeyChord{Key: "Enter"}, translateKey(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, keys.KeyChord{Key: "Esc"}, translateKey(tea.KeyMsg{Type: tea.KeyEsc}))
	require.Equal(t, keys.KeyChord{Key: "Tab", Shift: true}, translateKey(tea.KeyMsg{Type: tea.KeyShiftTab}))
	require.Equal(t, keys.KeyChord{Key: "q", Ctrl: true}, translateKey(tea.KeyMsg{Type: tea.KeyCtrlQ}))
}

func TestTranslateKey_Rune(t *testing.T) {
	chord := translateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	require.Equal(t, keys.KeyChord{Key: "j"}, chord)
}

func TestTranslateKey_AltRune(t *testing.T) {
	chord := translateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})
	require.Equal(t, keys.KeyChord{Key: "x", Alt: true}, chord)
}
