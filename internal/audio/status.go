package audio

import (
	"sync"

	"github.com/killallgit/podcast-tui/internal/models"
)

// StatusWatch is a single-producer, latest-value broadcast of
// PlaybackStatus: new subscribers reading Latest immediately observe the
// most recently published value, with no replay of history.
type StatusWatch struct {
	mu    sync.RWMutex
	value models.PlaybackStatus
}

func newStatusWatch(initial models.PlaybackStatus) *StatusWatch {
	return &StatusWatch{value: initial}
}

func (w *StatusWatch) publish(v models.PlaybackStatus) {
	w.mu.Lock()
	w.value = v
	w.mu.Unlock()
}

// Latest returns the most recently published PlaybackStatus.
func (w *StatusWatch) Latest() models.PlaybackStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.value
}
