// Package storage implements content-addressed JSON persistence of
// podcasts and episodes with atomic per-entity writes, adapted from the
// teacher's filesystem-backed object storage (internal/services/audiocache
// in the teacher repo) generalized from opaque blobs to typed JSON
// documents and given crash-safe atomic rename semantics the original
// lacked.
package storage

import "github.com/killallgit/podcast-tui/internal/models"

// Storage is the full CRUD contract over podcasts and their episodes.
// Every in-memory copy handed out by Storage is a cache: callers must not
// hold onto a *Podcast/*Episode across an async boundary without
// re-reading it after any write that could have changed it.
type Storage interface {
	Initialize() error
	Cleanup() error
	Backup() error

	SavePodcast(p *models.Podcast) error
	LoadPodcast(id models.PodcastID) (*models.Podcast, error)
	DeletePodcast(id models.PodcastID) error
	ListPodcasts() ([]models.PodcastID, error)
	PodcastExists(id models.PodcastID) bool

	SaveEpisode(e *models.Episode) error
	SaveEpisodes(podcastID models.PodcastID, episodes []*models.Episode) error
	LoadEpisode(podcastID models.PodcastID, id models.EpisodeID) (*models.Episode, error)
	DeleteEpisode(podcastID models.PodcastID, id models.EpisodeID) error
	ListEpisodes(podcastID models.PodcastID) ([]models.EpisodeID, error)
	EpisodeExists(podcastID models.PodcastID, id models.EpisodeID) bool
}
