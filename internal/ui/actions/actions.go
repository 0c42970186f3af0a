// Package actions defines the UI Action taxonomy: what a key chord or a
// buffer's handler produces, and what the app shell dispatches either
// synchronously (buffer-local mutation, rendering) or by spawning a task
// that eventually emits an events.AppEvent back into the router.
package actions

import "github.com/killallgit/podcast-tui/internal/models"

// Action is a closed sum type, following the same isX() marker pattern
// as audio.Command and events.AppEvent.
type Action interface{ isAction() }

// Movement.
type MoveUp struct{}
type MoveDown struct{}
type MoveLeft struct{}
type MoveRight struct{}
type PageUp struct{}
type PageDown struct{}
type MoveToTop struct{}
type MoveToBottom struct{}

// Buffer management.
type SwitchBuffer struct{ BufferID string }
type NextBuffer struct{}
type PreviousBuffer struct{}
type CloseBuffer struct{ BufferID string }
type CloseCurrentBuffer struct{}

// Selection.
type SelectItem struct{}

// Navigation to per-entity buffers that must be constructed on demand
// (the app shell loads data via a task and creates the buffer once an
// EpisodesLoaded/etc. AppEvent arrives).
type OpenEpisodeList struct{ PodcastID models.PodcastID }
type OpenEpisodeDetail struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}

// Content verbs.
type AddPodcast struct{ FeedURL string }
type DeletePodcast struct{ PodcastID models.PodcastID }
type RefreshPodcast struct{ PodcastID models.PodcastID }
type RefreshAll struct{}
type HardRefreshPodcast struct{ PodcastID models.PodcastID }
type DownloadEpisode struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}
type DeleteDownloadedEpisode struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}
type DeleteAllDownloads struct{}
type ToggleMarkPlayed struct{}
type ToggleFavorite struct{}

// Playback. PlayEpisode starts or restarts playback of a downloaded
// episode; the rest drive the audio coordinator's transport controls
// directly from the current buffer without a round-trip through a task.
type RequestPlay struct{}
type PlayEpisode struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}
type TogglePlayPause struct{}
type StopPlayback struct{}
type SeekForward struct{}
type SeekBackward struct{}
type VolumeUp struct{}
type VolumeDown struct{}

// Minibuffer.
type PromptInput struct{ Purpose string }
type SubmitInput struct{ Value string }
type ClearMinibuffer struct{}
type ShowMessage struct{ Text string }
type ShowError struct{ Text string }
type TabComplete struct{}

// Cross-component triggers: returned from buffers, executed by the app
// shell as async tasks rather than handled buffer-locally.
type TriggerDownload struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
	Title     string
}
type TriggerRefresh struct{ PodcastID models.PodcastID }
type TriggerRefreshAll struct{}
type TriggerDeleteDownload struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}
type TriggerDeleteAllDownloads struct{}
type TriggerSubscribe struct{ FeedURL string }
type TriggerUnsubscribe struct{ PodcastID models.PodcastID }
type TriggerToggleMarkPlayed struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}
type TriggerToggleFavorite struct {
	PodcastID models.PodcastID
	EpisodeID models.EpisodeID
}

// Filter operations.
type Search struct{ Query string }
type ApplySearch struct{}
type ClearFilters struct{}

// Control.
type Quit struct{}
type Render struct{}
type None struct{}

func (MoveUp) isAction()                    {}
func (MoveDown) isAction()                  {}
func (MoveLeft) isAction()                  {}
func (MoveRight) isAction()                 {}
func (PageUp) isAction()                    {}
func (PageDown) isAction()                  {}
func (MoveToTop) isAction()                 {}
func (MoveToBottom) isAction()              {}
func (SwitchBuffer) isAction()              {}
func (NextBuffer) isAction()                {}
func (PreviousBuffer) isAction()            {}
func (CloseBuffer) isAction()               {}
func (CloseCurrentBuffer) isAction()        {}
func (SelectItem) isAction()                {}
func (OpenEpisodeList) isAction()           {}
func (OpenEpisodeDetail) isAction()         {}
func (AddPodcast) isAction()                {}
func (DeletePodcast) isAction()             {}
func (RefreshPodcast) isAction()            {}
func (RefreshAll) isAction()                {}
func (HardRefreshPodcast) isAction()        {}
func (DownloadEpisode) isAction()           {}
func (DeleteDownloadedEpisode) isAction()   {}
func (DeleteAllDownloads) isAction()        {}
func (ToggleMarkPlayed) isAction()          {}
func (ToggleFavorite) isAction()            {}
func (RequestPlay) isAction()               {}
func (PlayEpisode) isAction()               {}
func (TogglePlayPause) isAction()           {}
func (StopPlayback) isAction()              {}
func (SeekForward) isAction()               {}
func (SeekBackward) isAction()              {}
func (VolumeUp) isAction()                  {}
func (VolumeDown) isAction()                {}
func (PromptInput) isAction()               {}
func (SubmitInput) isAction()               {}
func (ClearMinibuffer) isAction()           {}
func (ShowMessage) isAction()               {}
func (ShowError) isAction()                 {}
func (TabComplete) isAction()               {}
func (TriggerDownload) isAction()           {}
func (TriggerRefresh) isAction()            {}
func (TriggerRefreshAll) isAction()         {}
func (TriggerDeleteDownload) isAction()     {}
func (TriggerDeleteAllDownloads) isAction() {}
func (TriggerSubscribe) isAction()          {}
func (TriggerUnsubscribe) isAction()        {}
func (TriggerToggleMarkPlayed) isAction()   {}
func (TriggerToggleFavorite) isAction()     {}
func (Search) isAction()                    {}
func (ApplySearch) isAction()               {}
func (ClearFilters) isAction()              {}
func (Quit) isAction()                      {}
func (Render) isAction()                    {}
func (None) isAction()                      {}
