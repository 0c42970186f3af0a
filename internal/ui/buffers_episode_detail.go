package ui

import (
	"fmt"

	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/ui/actions"
)

// EpisodeDetailBuffer shows one episode's full metadata and notes, and
// bubbles the same download/delete triggers as EpisodeListBuffer.
type EpisodeDetailBuffer struct {
	podcastID models.PodcastID
	episode   *models.Episode
}

func EpisodeDetailBufferID(id models.EpisodeID) string {
	return "episode:" + string(id)
}

func NewEpisodeDetailBuffer(podcastID models.PodcastID, episode *models.Episode) *EpisodeDetailBuffer {
	return &EpisodeDetailBuffer{podcastID: podcastID, episode: episode}
}

func (b *EpisodeDetailBuffer) ID() string     { return EpisodeDetailBufferID(b.episode.ID) }
func (b *EpisodeDetailBuffer) Title() string  { return b.episode.Title }
func (b *EpisodeDetailBuffer) CanClose() bool { return true }

func (b *EpisodeDetailBuffer) SetEpisode(e *models.Episode) { b.episode = e }

func (b *EpisodeDetailBuffer) HandleAction(a actions.Action) actions.Action {
	switch a.(type) {
	case actions.DownloadEpisode:
		return actions.TriggerDownload{PodcastID: b.podcastID, EpisodeID: b.episode.ID, Title: b.episode.Title}
	case actions.RequestPlay:
		return actions.PlayEpisode{PodcastID: b.podcastID, EpisodeID: b.episode.ID}
	case actions.DeleteDownloadedEpisode:
		return actions.TriggerDeleteDownload{PodcastID: b.podcastID, EpisodeID: b.episode.ID}
	case actions.CloseCurrentBuffer:
		return actions.CloseBuffer{BufferID: b.ID()}
	}
	return actions.None{}
}

func (b *EpisodeDetailBuffer) Render(width, height int) []string {
	e := b.episode
	lines := []string{
		e.Title,
		fmt.Sprintf("Status: %s", e.Status),
		fmt.Sprintf("Published: %s", e.Published.Format("2006-01-02")),
	}
	if e.Description != "" {
		lines = append(lines, "", e.Description)
	}
	if e.Notes != "" {
		lines = append(lines, "", "Notes: "+e.Notes)
	}
	return lines
}
