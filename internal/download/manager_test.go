package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/storage"
	"github.com/stretchr/testify/require"
)

type stubDoer struct {
	calls int
	resp  *http.Response
	err   error
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	return s.resp, s.err
}

func newTestManager(t *testing.T, doer HTTPDoer) (*Manager, storage.Storage) {
	t.Helper()
	root := t.TempDir()
	store := storage.NewFileStorage(filepath.Join(root, "data"))
	require.NoError(t, store.Initialize())
	mgr := NewManager(store, filepath.Join(root, "downloads"), doer, "podcast-tui/1.0", 0)
	return mgr, store
}

func TestSanitizedFilename(t *testing.T) {
	name := sanitizedFilename("abc-123", "Ep 01: Hello / World?", "https://example.com/ep.mp3")
	require.Equal(t, "abc-123_Ep_01_Hello__World.mp3", name)
}

func TestSanitizedFilename_DegradesWhenTooLong(t *testing.T) {
	longTitle := make([]byte, 300)
	for i := range longTitle {
		longTitle[i] = 'a'
	}
	name := sanitizedFilename("abc-123", string(longTitle), "https://example.com/ep.wav")
	require.Equal(t, "abc-123.wav", name)
}

func TestManager_DownloadEpisode_Idempotent(t *testing.T) {
	doer := &stubDoer{}
	mgr, store := newTestManager(t, doer)

	podcastID := models.NewPodcastID()
	episode := &models.Episode{
		ID:        models.NewEpisodeID(),
		PodcastID: podcastID,
		Title:     "Ep",
		AudioURL:  "https://example.com/ep.mp3",
		Status:    models.StatusNew,
	}
	require.NoError(t, store.SaveEpisode(episode))

	target := mgr.targetPath(podcastID, sanitizedFilename(episode.ID, episode.Title, episode.AudioURL))
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte("already here"), 0644))

	require.NoError(t, mgr.DownloadEpisode(context.Background(), podcastID, episode.ID))
	require.Equal(t, 0, doer.calls)

	reloaded, err := store.LoadEpisode(podcastID, episode.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusDownloaded, reloaded.Status)
	require.Equal(t, target, reloaded.LocalPath)
}

func TestManager_DownloadEpisode_StreamsAndRenamesAtomically(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("fake mp3 bytes"))
	}))
	defer server.Close()

	root := t.TempDir()
	store := storage.NewFileStorage(filepath.Join(root, "data"))
	require.NoError(t, store.Initialize())
	mgr := NewManager(store, filepath.Join(root, "downloads"), nil, "podcast-tui/1.0", 0)

	podcastID := models.NewPodcastID()
	episode := &models.Episode{
		ID:        models.NewEpisodeID(),
		PodcastID: podcastID,
		Title:     "Ep",
		AudioURL:  server.URL,
		Status:    models.StatusNew,
	}
	require.NoError(t, store.SaveEpisode(episode))

	require.NoError(t, mgr.DownloadEpisode(context.Background(), podcastID, episode.ID))

	reloaded, err := store.LoadEpisode(podcastID, episode.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusDownloaded, reloaded.Status)

	contents, err := os.ReadFile(reloaded.LocalPath)
	require.NoError(t, err)
	require.Equal(t, "fake mp3 bytes", string(contents))

	tempDir := filepath.Join(root, "downloads", ".tmp")
	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	require.Empty(t, entries, "temp file must be renamed away, not left behind")
}

func TestManager_CleanupStuckDownloads(t *testing.T) {
	mgr, store := newTestManager(t, &stubDoer{})

	podcastID := models.NewPodcastID()
	episode := &models.Episode{
		ID:        models.NewEpisodeID(),
		PodcastID: podcastID,
		Status:    models.StatusDownloading,
		LocalPath: "",
	}
	require.NoError(t, store.SaveEpisode(episode))

	require.NoError(t, mgr.CleanupStuckDownloads())

	reloaded, err := store.LoadEpisode(podcastID, episode.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusNew, reloaded.Status)
	require.Empty(t, reloaded.LocalPath)
}

func TestManager_DownloadEpisode_InvalidPath(t *testing.T) {
	mgr, store := newTestManager(t, &stubDoer{})

	podcastID := models.NewPodcastID()
	episode := &models.Episode{
		ID:        models.NewEpisodeID(),
		PodcastID: podcastID,
		Title:     "No URL",
		AudioURL:  "",
		GUID:      "not-a-url",
		Status:    models.StatusNew,
	}
	require.NoError(t, store.SaveEpisode(episode))

	err := mgr.DownloadEpisode(context.Background(), podcastID, episode.ID)
	require.Error(t, err)

	reloaded, loadErr := store.LoadEpisode(podcastID, episode.ID)
	require.NoError(t, loadErr)
	require.Equal(t, models.StatusDownloadFailed, reloaded.Status)
}
