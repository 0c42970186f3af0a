package ui

import (
	"fmt"
	"time"

	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/ui/actions"
	"github.com/killallgit/podcast-tui/pkg/timeutil"
)

// EpisodeListBuffer shows one podcast's episodes, newest-first. One
// instance per subscribed podcast the user has opened; the app shell
// creates it lazily on the first OpenEpisodeList, keyed by BufferID().
type EpisodeListBuffer struct {
	podcastID   models.PodcastID
	podcastName string
	episodes    []*models.Episode
	query       string
	selected    int
}

func EpisodeListBufferID(id models.PodcastID) string {
	return "episodes:" + string(id)
}

func NewEpisodeListBuffer(podcastID models.PodcastID, podcastName string, episodes []*models.Episode) *EpisodeListBuffer {
	return &EpisodeListBuffer{podcastID: podcastID, podcastName: podcastName, episodes: episodes}
}

func (b *EpisodeListBuffer) ID() string     { return EpisodeListBufferID(b.podcastID) }
func (b *EpisodeListBuffer) Title() string  { return b.podcastName }
func (b *EpisodeListBuffer) CanClose() bool { return true }

func (b *EpisodeListBuffer) SetEpisodes(episodes []*models.Episode) {
	b.episodes = episodes
	b.clampSelection()
}

// visible returns the episodes matching the active text filter, the list
// every other method indexes and renders against.
func (b *EpisodeListBuffer) visible() []*models.Episode {
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

func (b *EpisodeListBuffer) clampSelection() {
	n := len(b.visible())
	if b.selected >= n {
		b.selected = n - 1
	}
	if b.selected < 0 {
		b.selected = 0
	}
}

func (b *EpisodeListBuffer) Selected() (*models.Episode, bool) {
	visible := b.visible()
	if b.selected < 0 || b.selected >= len(visible) {
		return nil, false
	}
	return visible[b.selected], true
}

func (b *EpisodeListBuffer) HandleAction(a actions.Action) actions.Action {
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
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.OpenEpisodeDetail{PodcastID: b.podcastID, EpisodeID: e.ID}
	case actions.DownloadEpisode:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerDownload{PodcastID: b.podcastID, EpisodeID: e.ID, Title: e.Title}
	case actions.RequestPlay:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.PlayEpisode{PodcastID: b.podcastID, EpisodeID: e.ID}
	case actions.DeleteDownloadedEpisode:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerDeleteDownload{PodcastID: b.podcastID, EpisodeID: e.ID}
	case actions.ToggleMarkPlayed:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerToggleMarkPlayed{PodcastID: b.podcastID, EpisodeID: e.ID}
	case actions.ToggleFavorite:
		e, ok := b.Selected()
		if !ok {
			return actions.None{}
		}
		return actions.TriggerToggleFavorite{PodcastID: b.podcastID, EpisodeID: e.ID}
	case actions.RefreshPodcast:
		return actions.TriggerRefresh{PodcastID: b.podcastID}
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
	default:
		_ = v
	}
	return actions.None{}
}

func (b *EpisodeListBuffer) Render(width, height int) []string {
	visible := b.visible()
	lines := make([]string, 0, len(visible))
	now := time.Now().UTC()
	for i, e := range visible {
		cursor := "  "
		if i == b.selected {
			cursor = "> "
		}
		status := string(e.Status)
		fav := " "
		if e.Favorited {
			fav = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%s[%s] %-8s %s", cursor, fav, timeutil.RelativeTime(e.Published, now), status, e.Title))
	}
	if len(lines) == 0 {
		if b.query != "" {
			lines = append(lines, fmt.Sprintf("No episodes match %q.", b.query))
		} else {
			lines = append(lines, "No episodes.")
		}
	}
	return lines
}
