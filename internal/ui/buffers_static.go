package ui

import (
	"fmt"

	"github.com/killallgit/podcast-tui/internal/ui/actions"
)

// HelpBuffer renders the static key-binding cheat sheet; it has no
// selectable state and ignores every action but CloseCurrentBuffer.
type HelpBuffer struct {
	bindings []string
}

func NewHelpBuffer(bindings []string) *HelpBuffer {
	return &HelpBuffer{bindings: bindings}
}

func (b *HelpBuffer) ID() string     { return "help" }
func (b *HelpBuffer) Title() string  { return "Help" }
func (b *HelpBuffer) CanClose() bool { return true }

func (b *HelpBuffer) HandleAction(a actions.Action) actions.Action {
	if _, ok := a.(actions.CloseCurrentBuffer); ok {
		return actions.CloseBuffer{BufferID: b.ID()}
	}
	return actions.None{}
}

func (b *HelpBuffer) Render(width, height int) []string {
	if len(b.bindings) == 0 {
		return []string{"No bindings configured."}
	}
	return b.bindings
}

// BufferListBuffer lists every live buffer by ID/title, for switching
// buffers by name (the "ibuffer"-style surface).
type BufferListBuffer struct {
	registry *Registry
	selected int
}

func NewBufferListBuffer(registry *Registry) *BufferListBuffer {
	return &BufferListBuffer{registry: registry}
}

func (b *BufferListBuffer) ID() string     { return "buffer_list" }
func (b *BufferListBuffer) Title() string  { return "Buffers" }
func (b *BufferListBuffer) CanClose() bool { return true }

func (b *BufferListBuffer) HandleAction(a actions.Action) actions.Action {
	ids := b.registry.Order()
	switch a.(type) {
	case actions.MoveUp:
		if b.selected > 0 {
			b.selected--
		}
		return actions.Render{}
	case actions.MoveDown:
		if b.selected < len(ids)-1 {
			b.selected++
		}
		return actions.Render{}
	case actions.SelectItem:
		if b.selected < 0 || b.selected >= len(ids) {
			return actions.None{}
		}
		return actions.SwitchBuffer{BufferID: ids[b.selected]}
	case actions.CloseCurrentBuffer:
		return actions.CloseBuffer{BufferID: b.ID()}
	}
	return actions.None{}
}

func (b *BufferListBuffer) Render(width, height int) []string {
	ids := b.registry.Order()
	lines := make([]string, 0, len(ids))
	for i, id := range ids {
		cursor := "  "
		if i == b.selected {
			cursor = "> "
		}
		title := id
		if buf, ok := b.registry.Get(id); ok {
			title = buf.Title()
		}
		lines = append(lines, fmt.Sprintf("%s%s (%s)", cursor, title, id))
	}
	return lines
}

// SyncBuffer shows the status of the most recent refresh-all / bulk
// operation, a simple status line rather than a list.
type SyncBuffer struct {
	status string
}

func NewSyncBuffer() *SyncBuffer {
	return &SyncBuffer{status: "idle"}
}

func (b *SyncBuffer) ID() string     { return "sync" }
func (b *SyncBuffer) Title() string  { return "Sync" }
func (b *SyncBuffer) CanClose() bool { return true }

func (b *SyncBuffer) SetStatus(status string) { b.status = status }

func (b *SyncBuffer) HandleAction(a actions.Action) actions.Action {
	if _, ok := a.(actions.CloseCurrentBuffer); ok {
		return actions.CloseBuffer{BufferID: b.ID()}
	}
	return actions.None{}
}

func (b *SyncBuffer) Render(width, height int) []string {
	return []string{b.status}
}
