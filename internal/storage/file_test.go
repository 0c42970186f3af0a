package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *FileStorage {
	t.Helper()
	dir := t.TempDir()
	s := NewFileStorage(dir)
	require.NoError(t, s.Initialize())
	return s
}

func TestFileStorage_PodcastRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	p := &models.Podcast{
		ID:          models.NewPodcastID(),
		Title:       "Go Time",
		FeedURL:     "https://example.com/feed.xml",
		LastUpdated: time.Now().UTC().Truncate(time.Second),
		Episodes:    []models.EpisodeID{models.NewEpisodeID()},
	}

	require.NoError(t, s.SavePodcast(p))

	loaded, err := s.LoadPodcast(p.ID)
	require.NoError(t, err)
	require.Equal(t, p, loaded)
}

func TestFileStorage_LoadPodcast_NotFound(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.LoadPodcast(models.NewPodcastID())
	require.Error(t, err)
	require.True(t, IsNotFound(err))
}

func TestFileStorage_EpisodeRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	podcastID := models.NewPodcastID()
	e := &models.Episode{
		ID:        models.NewEpisodeID(),
		PodcastID: podcastID,
		Title:     "Episode One",
		AudioURL:  "https://example.com/ep1.mp3",
		Published: time.Now().UTC().Truncate(time.Second),
		Status:    models.StatusNew,
	}

	require.NoError(t, s.SaveEpisode(e))

	loaded, err := s.LoadEpisode(podcastID, e.ID)
	require.NoError(t, err)
	require.Equal(t, e, loaded)

	ids, err := s.ListEpisodes(podcastID)
	require.NoError(t, err)
	require.Equal(t, []models.EpisodeID{e.ID}, ids)
}

func TestFileStorage_DeletePodcast_CascadesEpisodes(t *testing.T) {
	s := newTestStorage(t)
	podcastID := models.NewPodcastID()
	e := &models.Episode{ID: models.NewEpisodeID(), PodcastID: podcastID, Status: models.StatusNew}
	require.NoError(t, s.SaveEpisode(e))

	require.NoError(t, s.DeletePodcast(podcastID))

	_, err := s.LoadEpisode(podcastID, e.ID)
	require.Error(t, err)
}

func TestFileStorage_Cleanup_ClearsMissingLocalPath(t *testing.T) {
	s := newTestStorage(t)
	podcastID := models.NewPodcastID()
	e := &models.Episode{
		ID:        models.NewEpisodeID(),
		PodcastID: podcastID,
		Status:    models.StatusDownloaded,
		LocalPath: filepath.Join(t.TempDir(), "nonexistent.mp3"),
	}
	require.NoError(t, s.SaveEpisode(e))

	require.NoError(t, s.Cleanup())

	reloaded, err := s.LoadEpisode(podcastID, e.ID)
	require.NoError(t, err)
	require.Empty(t, reloaded.LocalPath)
	require.Equal(t, models.StatusNew, reloaded.Status)
}
