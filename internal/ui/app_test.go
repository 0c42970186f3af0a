package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/killallgit/podcast-tui/internal/audio"
	"github.com/killallgit/podcast-tui/internal/download"
	"github.com/killallgit/podcast-tui/internal/events"
	"github.com/killallgit/podcast-tui/internal/feed"
	"github.com/killallgit/podcast-tui/internal/storage"
	"github.com/killallgit/podcast-tui/internal/subscription"
	"github.com/killallgit/podcast-tui/internal/tasks"
	"github.com/killallgit/podcast-tui/internal/ui/actions"
)

const testRSS = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Go Weekly</title>
<item><title>Ep 1</title><guid>ep-1</guid><pubDate>Mon, 02 Jan 2026 00:00:00 GMT</pubDate></item>
</channel></rss>`

func newTestApp(t *testing.T) (*App, *events.Router) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testRSS))
	}))
	t.Cleanup(server.Close)

	store := storage.NewFileStorage(t.TempDir())
	require.NoError(t, store.Initialize())

	router := events.NewRouter(32)
	pool := tasks.NewPool(2)
	t.Cleanup(pool.Shutdown)

	subs := subscription.NewManager(store, feed.NewParser(600), router)
	dl := download.NewManager(store, t.TempDir(), http.DefaultClient, "podcast-tui-test", 10*time.Second)
	ac := audio.NewCoordinator(audio.NewMockBackend(0), router, time.Hour, 1.0)

	app := NewApp(router, pool, subs, dl, ac, 10, false)

	_, err := subs.Subscribe(context.Background(), server.URL)
	require.NoError(t, err)
	app.refreshPodcastList()

	return app, router
}

func TestApp_SwitchAndCloseBuffer(t *testing.T) {
	app, _ := newTestApp(t)

	app.Dispatch(actions.SwitchBuffer{BufferID: "downloads"})
	require.Equal(t, "downloads", app.Registry.Current().ID())

	app.Dispatch(actions.CloseCurrentBuffer{})
	require.NotEqual(t, "downloads", app.Registry.Current().ID())

	app.Dispatch(actions.CloseBuffer{BufferID: "podcasts"})
	require.Contains(t, app.Registry.Order(), "podcasts", "root buffer must never close")
}

func TestApp_OpenEpisodeListSwitchesToLoadedBuffer(t *testing.T) {
	app, router := newTestApp(t)

	podcasts, err := app.subs.List()
	require.NoError(t, err)
	require.Len(t, podcasts, 1)
	podcastID := podcasts[0].ID

	app.Dispatch(actions.OpenEpisodeList{PodcastID: podcastID})

	deadline := time.After(2 * time.Second)
	found := false
	for !found {
		select {
		case evt := <-router.Events():
			app.HandleEvent(evt)
			if _, ok := evt.(events.EpisodesLoaded); ok {
				found = true
			}
		case <-deadline:
			t.Fatal("timed out waiting for EpisodesLoaded")
		}
	}

	require.Equal(t, EpisodeListBufferID(podcastID), app.Registry.Current().ID())
}

func TestApp_QuitAction(t *testing.T) {
	app, _ := newTestApp(t)
	require.False(t, app.Quit())
	app.Dispatch(actions.Quit{})
	require.True(t, app.Quit())
}

func TestApp_PromptAndSubmitUnknownCommandShowsError(t *testing.T) {
	app, _ := newTestApp(t)
	app.Dispatch(actions.PromptInput{Purpose: "command"})
	require.Equal(t, MinibufferCommand, app.Minibuffer.Kind)

	app.Minibuffer.Insert("bogus-command")
	app.pendingPurpose = app.Minibuffer.Purpose
	app.Dispatch(actions.SubmitInput{Value: app.Minibuffer.Submit()})
	require.Equal(t, MinibufferError, app.Minibuffer.Kind)
}
