package subscription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/killallgit/podcast-tui/internal/events"
	"github.com/killallgit/podcast-tui/internal/feed"
	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/storage"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Example Cast</title>
<item><title>Ep One</title><guid>guid-1</guid><enclosure url="http://x/1.mp3" type="audio/mpeg" length="100"/></item>
<item><title>Ep Two</title><guid>guid-2</guid><enclosure url="http://x/2.mp3" type="audio/mpeg" length="200"/></item>
</channel></rss>`

const testFeedUpdated = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Example Cast</title>
<item><title>Ep One</title><guid>guid-1</guid><enclosure url="http://x/1.mp3" type="audio/mpeg" length="100"/></item>
<item><title>Ep Two</title><guid>guid-2</guid><enclosure url="http://x/2.mp3" type="audio/mpeg" length="200"/></item>
<item><title>Ep Three</title><guid>guid-3</guid><enclosure url="http://x/3.mp3" type="audio/mpeg" length="300"/></item>
</channel></rss>`

func newTestServer(t *testing.T, body *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(*body))
	}))
}

func newTestManager(t *testing.T) (*Manager, storage.Storage) {
	t.Helper()
	store := storage.NewFileStorage(t.TempDir())
	require.NoError(t, store.Initialize())
	parser := feed.NewParser(600)
	router := events.NewRouter(16)
	return NewManager(store, parser, router), store
}

func TestManager_SubscribeThenList(t *testing.T) {
	body := testFeed
	srv := newTestServer(t, &body)
	defer srv.Close()

	m, _ := newTestManager(t)
	podcast, err := m.Subscribe(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Example Cast", podcast.Title)
	require.Len(t, podcast.Episodes, 2)

	list, err := m.List()
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = m.Subscribe(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestManager_Refresh_AddsOnlyNewGUIDs(t *testing.T) {
	body := testFeed
	srv := newTestServer(t, &body)
	defer srv.Close()

	m, _ := newTestManager(t)
	podcast, err := m.Subscribe(context.Background(), srv.URL)
	require.NoError(t, err)

	body = testFeedUpdated
	n, err := m.Refresh(context.Background(), podcast.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	episodes, err := m.Episodes(podcast.ID)
	require.NoError(t, err)
	require.Len(t, episodes, 3)
}

func TestManager_MarkPlayedAndUnplayed(t *testing.T) {
	body := testFeed
	srv := newTestServer(t, &body)
	defer srv.Close()

	m, _ := newTestManager(t)
	podcast, err := m.Subscribe(context.Background(), srv.URL)
	require.NoError(t, err)
	episodes, err := m.Episodes(podcast.ID)
	require.NoError(t, err)
	episodeID := episodes[0].ID

	played, err := m.MarkPlayed(podcast.ID, episodeID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPlayed, played.Status)
	require.Equal(t, 1, played.PlayCount)
	require.Equal(t, 0, played.LastPlayedPosition)

	unplayed, err := m.MarkUnplayed(podcast.ID, episodeID)
	require.NoError(t, err)
	require.Equal(t, models.StatusNew, unplayed.Status)

	toggled, err := m.ToggleMarkPlayed(podcast.ID, episodeID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPlayed, toggled.Status)
	require.Equal(t, 2, toggled.PlayCount)
}

func TestManager_ToggleFavorite(t *testing.T) {
	body := testFeed
	srv := newTestServer(t, &body)
	defer srv.Close()

	m, _ := newTestManager(t)
	podcast, err := m.Subscribe(context.Background(), srv.URL)
	require.NoError(t, err)
	episodes, err := m.Episodes(podcast.ID)
	require.NoError(t, err)
	episodeID := episodes[0].ID

	e, err := m.ToggleFavorite(podcast.ID, episodeID)
	require.NoError(t, err)
	require.True(t, e.Favorited)

	e, err = m.ToggleFavorite(podcast.ID, episodeID)
	require.NoError(t, err)
	require.False(t, e.Favorited)
}

func TestManager_SetLastPlayedPosition(t *testing.T) {
	body := testFeed
	srv := newTestServer(t, &body)
	defer srv.Close()

	m, _ := newTestManager(t)
	podcast, err := m.Subscribe(context.Background(), srv.URL)
	require.NoError(t, err)
	episodes, err := m.Episodes(podcast.ID)
	require.NoError(t, err)
	episodeID := episodes[0].ID

	require.NoError(t, m.SetLastPlayedPosition(podcast.ID, episodeID, 42))
	episodes, err = m.Episodes(podcast.ID)
	require.NoError(t, err)
	for _, e := range episodes {
		if e.ID == episodeID {
			require.Equal(t, 42, e.LastPlayedPosition)
		}
	}
}

func TestManager_ExportOPML(t *testing.T) {
	body := testFeed
	srv := newTestServer(t, &body)
	defer srv.Close()

	m, _ := newTestManager(t)
	_, err := m.Subscribe(context.Background(), srv.URL)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, m.ExportOPML(&buf))
	out := buf.String()
	require.Contains(t, out, "<opml")
	require.Contains(t, out, srv.URL)
}
