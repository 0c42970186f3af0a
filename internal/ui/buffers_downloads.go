package ui

import (
	"fmt"

	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/ui/actions"
)

// DownloadsBuffer lists every episode with a download in flight or
// completed (Downloading, Downloaded, DownloadFailed).
type DownloadsBuffer struct {
	episodes []*models.Episode
	query    string
	selected int
}

func NewDownloadsBuffer() *DownloadsBuffer {
	return &DownloadsBuffer{}
}

func (b *DownloadsBuffer) ID() string     { return "downloads" }
func (b *DownloadsBuffer) Title() string  { return "Downloads" }
func (b *DownloadsBuffer) CanClose() bool { return true }

func (b *DownloadsBuffer) SetEpisodes(episodes []*models.Episode) {
	b.episodes = episodes
	b.clampSelection()
}

// visible returns the episodes matching the active text filter, the list
// every other method indexes and renders against.
func (b *DownloadsBuffer) visible() []*models.Episode {
	if b.query == "" {
		return b.episodes
	}
	out := make([]*models.Episode, 0, len(b.episodes))
	for _, e := range b.episodes {
		if matchesQuery(b.query, e.Title, e.Description, e.Notes) {
			out = append(out, e)
		}
	}
	return out
}

func (b *DownloadsBuffer) clampSelection() {
	n := len(b.visible())
	if b.selected >= n {
		b.selected = n - 1
	}
	if b.selected < 0 {
		b.selected = 0
	}
}

func (b *DownloadsBuffer) Selected() (*models.Episode, bool) {
	visible := b.visible()
	if b.selected < 0 || b.selected >= len(visible) {
		return nil, false
	}
	return visible[b.selected], true
}

func (b *DownloadsBuffer) HandleAction(a actions.Action) actions.Action {
	switch v := a.(type) {
	case actions.MoveUp:
		if b.selected > 0 {
			b.selected--
		}
		return actions.Render{}
	case actions.MoveDown:
		if b.selected < len(b.visible())-1 {
			b.selected++
		}
		return actions.Render{}
	case actions.DeleteDownloadedEpisode:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerDeleteDownload{PodcastID: e.PodcastID, EpisodeID: e.ID}
	case actions.RequestPlay:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.PlayEpisode{PodcastID: e.PodcastID, EpisodeID: e.ID}
	case actions.ToggleMarkPlayed:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerToggleMarkPlayed{PodcastID: e.PodcastID, EpisodeID: e.ID}
	case actions.ToggleFavorite:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerToggleFavorite{PodcastID: e.PodcastID, EpisodeID: e.ID}
	case actions.DeleteAllDownloads:
		return actions.TriggerDeleteAllDownloads{}
	case actions.CloseCurrentBuffer:
		return actions.CloseBuffer{BufferID: b.ID()}
	case actions.Search:
		b.query = v.Query
		b.clampSelection()
		return actions.Render{}
	case actions.ApplySearch:
		return actions.Render{}
	case actions.ClearFilters:
		b.query = ""
		b.clampSelection()
		return actions.Render{}
	}
	return actions.None{}
}

func (b *DownloadsBuffer) Render(width, height int) []string {
	visible := b.visible()
	lines := make([]string, 0, len(visible))
	for i, e := range visible {
		cursor := "  "
		if i == b.selected {
			cursor = "> "
		}
		lines = append(lines, fmt.Sprintf("%s[%s] %s", cursor, e.Status, e.Title))
	}
	if len(lines) == 0 {
		if b.query != "" {
			lines = append(lines, fmt.Sprintf("No downloads match %q.", b.query))
		} else {
			lines = append(lines, "No downloads.")
		}
	}
	return lines
}
