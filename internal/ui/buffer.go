package ui

import (
	"github.com/killallgit/podcast-tui/internal/ui/actions"
)

// Buffer is a named, focusable rectangular content region with its own
// action handler and renderer. HandleAction may return a follow-up
// Action (actions.Render, actions.None, or a bubbled action the app
// shell is expected to interpret - buffers never reach into each other
// directly).
type Buffer interface {
	ID() string
	Title() string
	CanClose() bool
	HandleAction(a actions.Action) actions.Action
	Render(width, height int) []string
}

// Registry owns the ordered set of live buffers and which one is
// current. It has no knowledge of what a buffer does - only its ID and
// CanClose flag.
type Registry struct {
	order   []string
	buffers map[string]Buffer
	current int
}

func NewRegistry() *Registry {
	return &Registry{buffers: make(map[string]Buffer)}
}

// Add appends b to the registry and, if it is the first buffer added,
// makes it current.
func (r *Registry) Add(b Buffer) {
	if _, exists := r.buffers[b.ID()]; exists {
		return
	}
	r.buffers[b.ID()] = b
	r.order = append(r.order, b.ID())
}

// Remove deletes the buffer with id, erroring if it declares
// CanClose() == false. If the removed buffer was current, current moves
// to the previous index (clamped); removing a buffer before the current
// one keeps the same buffer current.
func (r *Registry) Remove(id string) error {
	b, ok := r.buffers[id]
	if !ok {
		return errBufferNotFound(id)
	}
	if !b.CanClose() {
		return errCannotClose(id)
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return errBufferNotFound(id)
	}
	r.order = append(r.order[:idx], r.order[idx+1:]...)
	delete(r.buffers, id)
	if idx < r.current || (idx == r.current && r.current > 0) {
		r.current--
	}
	if r.current >= len(r.order) {
		r.current = len(r.order) - 1
	}
	if r.current < 0 {
		r.current = 0
	}
	return nil
}

func (r *Registry) indexOf(id string) int {
	for i, bid := range r.order {
		if bid == id {
			return i
		}
	}
	return -1
}

// SwitchTo moves current to id, if present.
func (r *Registry) SwitchTo(id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return errBufferNotFound(id)
	}
	r.current = idx
	return nil
}

// Next/Previous cycle current through the ordered list, wrapping around.
func (r *Registry) Next() {
	if len(r.order) == 0 {
		return
	}
	r.current = (r.current + 1) % len(r.order)
}

func (r *Registry) Previous() {
	if len(r.order) == 0 {
		return
	}
	r.current = (r.current - 1 + len(r.order)) % len(r.order)
}

// Current returns the currently focused buffer, or nil if the registry
// is empty.
func (r *Registry) Current() Buffer {
	if len(r.order) == 0 {
		return nil
	}
	return r.buffers[r.order[r.current]]
}

// Get returns the buffer with id, if present.
func (r *Registry) Get(id string) (Buffer, bool) {
	b, ok := r.buffers[id]
	return b, ok
}

// Order returns the ordered list of buffer IDs, for the BufferList buffer.
func (r *Registry) Order() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
