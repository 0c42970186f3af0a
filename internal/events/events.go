// Package events defines the AppEvent taxonomy: one-shot messages
// background tasks (feed refresh, downloads, the audio coordinator) send
// back to the UI loop over a shared unbounded channel. Grounded on the
// teacher's JobProcessor/Worker completion-signaling shape (internal/
// services/workers/worker.go), generalized from "mark a job failed/done"
// into a typed event taxonomy the UI dispatch loop switches over
// exhaustively.
package events

import (
	"time"

	"github.com/killallgit/podcast-tui/internal/models"
)

// AppEvent is a one-shot message from a background task to the UI loop.
type AppEvent interface{ isAppEvent() }

// Subscription events.
type PodcastSubscribed struct{ Podcast *models.Podcast }
type PodcastSubscriptionFailed struct {
	URL   string
	Error string
}

// Refresh events.
type PodcastRefreshed struct {
	PodcastID      models.PodcastID
	NewEpisodeCount int
}
type PodcastRefreshFailed struct {
	PodcastID models.PodcastID
	Error     string
}
type AllPodcastsRefreshed struct{ TotalNew int }

// Episode-list events.
type EpisodesLoaded struct {
	PodcastID models.PodcastID
	Name      string
	Episodes  []*models.Episode
}
type EpisodesLoadFailed struct {
	PodcastID models.PodcastID
	Error     string
}

// Download events.
type EpisodeDownloaded struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}
type EpisodeDownloadFailed struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
	Error     string
}
type EpisodeDownloadDeleted struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}
type DownloadsRefreshed struct{}
type AllDownloadsDeleted struct{ Count int }

// Playback events (from the audio thread).
type PlaybackStarted struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}

// PlaybackStopped reports an explicit stop (not a natural end-of-track,
// see TrackEnded). Position is the last known playback position, used to
// persist Episode.LastPlayedPosition for mid-episode resume; it is zero
// if the backend could not report one or nothing was playing.
type PlaybackStopped struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
	Position  time.Duration
}
type TrackEnded struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}
type PlaybackError struct{ Error string }

// Episode mutation events, for user-triggered state-machine transitions
// (mark played/unplayed, toggle favorite) that touch storage.
type EpisodeUpdated struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}
type EpisodeUpdateFailed struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
	Error     string
}

// Deletion events.
type PodcastDeleted struct {
	ID    models.PodcastID
	Title string
}
type PodcastDeletionFailed struct {
	ID    models.PodcastID
	Error string
}

func (PodcastSubscribed) isAppEvent()         {}
func (PodcastSubscriptionFailed) isAppEvent() {}
func (PodcastRefreshed) isAppEvent()          {}
func (PodcastRefreshFailed) isAppEvent()      {}
func (AllPodcastsRefreshed) isAppEvent()      {}
func (EpisodesLoaded) isAppEvent()            {}
func (EpisodesLoadFailed) isAppEvent()        {}
func (EpisodeDownloaded) isAppEvent()         {}
func (EpisodeDownloadFailed) isAppEvent()     {}
func (EpisodeDownloadDeleted) isAppEvent()    {}
func (DownloadsRefreshed) isAppEvent()        {}
func (AllDownloadsDeleted) isAppEvent()       {}
func (PlaybackStarted) isAppEvent()           {}
func (PlaybackStopped) isAppEvent()           {}
func (TrackEnded) isAppEvent()                {}
func (PlaybackError) isAppEvent()             {}
func (PodcastDeleted) isAppEvent()            {}
func (PodcastDeletionFailed) isAppEvent()     {}
func (EpisodeUpdated) isAppEvent()            {}
func (EpisodeUpdateFailed) isAppEvent()       {}
