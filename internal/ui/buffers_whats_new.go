package ui

import (
	"fmt"
	"time"

	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/ui/actions"
	"github.com/killallgit/podcast-tui/pkg/timeutil"
)

// WhatsNewBuffer is the cross-podcast aggregation of StatusNew episodes,
// sorted published-desc and capped at a configured limit.
type WhatsNewBuffer struct {
	episodes []*models.Episode
	limit    int
	query    string
	selected int
}

func NewWhatsNewBuffer(limit int) *WhatsNewBuffer {
	if limit <= 0 {
		limit = 50
	}
	return &WhatsNewBuffer{limit: limit}
}

func (b *WhatsNewBuffer) ID() string     { return "whats_new" }
func (b *WhatsNewBuffer) Title() string  { return "What's New" }
func (b *WhatsNewBuffer) CanClose() bool { return true }

func (b *WhatsNewBuffer) SetEpisodes(episodes []*models.Episode) {
	if len(episodes) > b.limit {
		episodes = episodes[:b.limit]
	}
	b.episodes = episodes
	b.clampSelection()
}

// visible returns the episodes matching the active text filter, the list
// every other method indexes and renders against.
func (b *WhatsNewBuffer) visible() []*models.Episode {
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

func (b *WhatsNewBuffer) clampSelection() {
	n := len(b.visible())
	if b.selected >= n {
		b.selected = n - 1
	}
	if b.selected < 0 {
		b.selected = 0
	}
}

func (b *WhatsNewBuffer) Selected() (*models.Episode, bool) {
	visible := b.visible()
	if b.selected < 0 || b.selected >= len(visible) {
		return nil, false
	}
	return visible[b.selected], true
}

func (b *WhatsNewBuffer) HandleAction(a actions.Action) actions.Action {
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
	case actions.SelectItem:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.OpenEpisodeDetail{PodcastID: e.PodcastID, EpisodeID: e.ID}
	case actions.DownloadEpisode:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerDownload{PodcastID: e.PodcastID, EpisodeID: e.ID, Title: e.Title}
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

func (b *WhatsNewBuffer) Render(width, height int) []string {
	visible := b.visible()
	lines := make([]string, 0, len(visible))
	now := time.Now().UTC()
	for i, e := range visible {
		cursor := "  "
		if i == b.selected {
			cursor = "> "
		}
		lines = append(lines, fmt.Sprintf("%s[%s] %s", cursor, timeutil.RelativeTime(e.Published, now), e.Title))
	}
	if len(lines) == 0 {
		if b.query != "" {
			lines = append(lines, fmt.Sprintf("No episodes match %q.", b.query))
		} else {
			lines = append(lines, "Nothing new.")
		}
	}
	return lines
}
