package ui

import (
	"fmt"

	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/ui/actions"
)

// PodcastListBuffer is the root buffer: every subscribed podcast, one per
// row. It declares CanClose() == false since the app always needs a
// buffer to fall back to.
type PodcastListBuffer struct {
	podcasts []*models.Podcast
	query    string
	selected int
}

func NewPodcastListBuffer() *PodcastListBuffer {
	return &PodcastListBuffer{}
}

func (b *PodcastListBuffer) ID() string     { return "podcasts" }
func (b *PodcastListBuffer) Title() string  { return "Podcasts" }
func (b *PodcastListBuffer) CanClose() bool { return false }

// SetPodcasts replaces the displayed list, clamping the selection into
// range - called by the app shell whenever subscription state changes.
func (b *PodcastListBuffer) SetPodcasts(podcasts []*models.Podcast) {
	b.podcasts = podcasts
	b.clampSelection()
}

// visible returns the podcasts matching the active text filter, the list
// every other method indexes and renders against.
func (b *PodcastListBuffer) visible() []*models.Podcast {
	if b.query == "" {
		return b.podcasts
	}
	out := make([]*models.Podcast, 0, len(b.podcasts))
	for _, p := range b.podcasts {
		if matchesQuery(b.query, p.Title, p.Description) {
			out = append(out, p)
		}
	}
	return out
}

func (b *PodcastListBuffer) clampSelection() {
	n := len(b.visible())
	if b.selected >= n {
		b.selected = n - 1
	}
	if b.selected < 0 {
		b.selected = 0
	}
}

func (b *PodcastListBuffer) Selected() (*models.Podcast, bool) {
	visible := b.visible()
	if b.selected < 0 || b.selected >= len(visible) {
		return nil, false
	}
	return visible[b.selected], true
}

func (b *PodcastListBuffer) HandleAction(a actions.Action) actions.Action {
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
	case actions.MoveToTop:
		b.selected = 0
		return actions.Render{}
	case actions.MoveToBottom:
		b.selected = len(b.visible()) - 1
		return actions.Render{}
	case actions.SelectItem:
		p, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.OpenEpisodeList{PodcastID: p.ID}
	case actions.DeletePodcast:
		p, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerUnsubscribe{PodcastID: p.ID}
	case actions.RefreshPodcast:
		p, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerRefresh{PodcastID: p.ID}
	case actions.RefreshAll:
		return actions.TriggerRefreshAll{}
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

func (b *PodcastListBuffer) Render(width, height int) []string {
	visible := b.visible()
	lines := make([]string, 0, len(visible))
	for i, p := range visible {
		cursor := "  "
		if i == b.selected {
			cursor = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s", cursor, p.Title))
	}
	if len(lines) == 0 {
		if b.query != "" {
			lines = append(lines, fmt.Sprintf("No podcasts match %q.", b.query))
		} else {
			lines = append(lines, "No subscriptions yet - press 'a' to add one.")
		}
	}
	return lines
}
