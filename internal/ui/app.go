// Package ui is the single-threaded, cooperative render loop: it owns all
// buffer state, the key resolver, and the minibuffer, and never blocks on
// I/O. Every action that could block is turned into a tasks.Task submitted
// to the async executor and returns a trigger the task eventually
// satisfies with an events.AppEvent. Grounded on the teacher's handler
// dispatch shape (internal/api, a flat method table over typed requests),
// generalized from HTTP request/response into terminal action/event.
package ui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/killallgit/podcast-tui/internal/audio"
	"github.com/killallgit/podcast-tui/internal/download"
	"github.com/killallgit/podcast-tui/internal/events"
	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/subscription"
	"github.com/killallgit/podcast-tui/internal/tasks"
	"github.com/killallgit/podcast-tui/internal/ui/actions"
	"github.com/killallgit/podcast-tui/internal/ui/keys"
)

// App is the app shell: it has exclusive authority over the buffer
// registry and the task executor, per the "buffers never hold references
// to each other" design rule - all cross-buffer and cross-component
// effects pass through here as bubbled Actions.
type App struct {
	Registry   *Registry
	Minibuffer *Minibuffer
	Resolver   *keys.Resolver

	router *events.Router
	pool   *tasks.Pool

	subs  *subscription.Manager
	dl    *download.Manager
	audio *audio.Coordinator

	whatsNewLimit int
	autoPlayNext  bool

	quit bool

	// pendingPurpose holds the minibuffer's Purpose at the moment Submit
	// is called - Submit itself clears the minibuffer (Purpose included)
	// before the SubmitInput action reaches Dispatch, so handleSubmit
	// cannot read it off the minibuffer directly.
	pendingPurpose string
}

// NewApp wires the app shell around its collaborators and loads the
// PodcastList buffer from the subscription manager. The caller is expected
// to have already called CleanupStuckDownloads.
func NewApp(router *events.Router, pool *tasks.Pool, subs *subscription.Manager, dl *download.Manager, ac *audio.Coordinator, whatsNewLimit int, autoPlayNext bool) *App {
	registry := NewRegistry()
	app := &App{
		Registry:      registry,
		Minibuffer:    NewMinibuffer(),
		Resolver:      keys.NewResolver(),
		router:        router,
		pool:          pool,
		subs:          subs,
		dl:            dl,
		audio:         ac,
		whatsNewLimit: whatsNewLimit,
		autoPlayNext:  autoPlayNext,
	}

	registry.Add(NewPodcastListBuffer())
	registry.Add(NewWhatsNewBuffer(whatsNewLimit))
	registry.Add(NewDownloadsBuffer())
	registry.Add(NewSyncBuffer())
	registry.Add(NewBufferListBuffer(registry))
	registry.Add(NewHelpBuffer(defaultHelpText()))
	app.refreshPodcastList()
	return app
}

func defaultHelpText() []string {
	return []string{
		"j/k, Up/Down   move",
		"Enter          select",
		"Tab/S-Tab      next/previous buffer",
		"q              close buffer",
		"C-q            quit",
		"a              add podcast",
		"d              download episode",
		"r / R          refresh / refresh all",
		"m              toggle played/unplayed",
		"f              toggle favorite",
		"/              search",
		"C              clear search filter",
	}
}

// Quit reports whether the UI loop should exit.
func (a *App) Quit() bool { return a.quit }

// HandleKey resolves chord via the Resolver and dispatches the resulting
// Action - the event loop's per-keypress entry point. When the
// minibuffer is in an editable state, printable chords are routed to it
// instead of the key resolver, matching an Emacs-style modal input
// surface.
func (a *App) HandleKey(chord keys.KeyChord) {
	if a.minibufferEditing() {
		a.handleMinibufferKey(chord)
		return
	}
	act := a.Resolver.Resolve(chord)
	a.Dispatch(act)
}

func (a *App) minibufferEditing() bool {
	switch a.Minibuffer.Kind {
	case MinibufferPrompt, MinibufferPromptWithCompletion, MinibufferCommand, MinibufferInput:
		return true
	default:
		return false
	}
}

func (a *App) handleMinibufferKey(chord keys.KeyChord) {
	switch {
	case chord.Key == "Enter" && !chord.Ctrl && !chord.Alt:
		a.pendingPurpose = a.Minibuffer.Purpose
		value := a.Minibuffer.Submit()
		a.Dispatch(actions.SubmitInput{Value: value})
	case chord.Key == "Esc":
		a.Minibuffer.Clear()
	case chord.Key == "Tab":
		a.Dispatch(actions.TabComplete{})
	case chord.Key == "Backspace":
		a.Minibuffer.Backspace()
	case chord.Key == "Up":
		a.Minibuffer.HistoryUp()
	case chord.Key == "Down":
		a.Minibuffer.HistoryDown()
	case len([]rune(chord.Key)) == 1:
		a.Minibuffer.Insert(chord.Key)
	}
}

// Dispatch applies a single Action, recursing on any follow-up Action a
// buffer or the app shell itself bubbles up. actions.Render/actions.None
// terminate the chain.
func (a *App) Dispatch(act actions.Action) {
	switch v := act.(type) {
	case actions.None:
		return
	case actions.Render:
		return
	case actions.Quit:
		a.quit = true
	case actions.SwitchBuffer:
		if err := a.Registry.SwitchTo(v.BufferID); err != nil {
			a.Minibuffer.ShowError(err.Error())
		}
	case actions.NextBuffer:
		a.Registry.Next()
	case actions.PreviousBuffer:
		a.Registry.Previous()
	case actions.CloseBuffer:
		if err := a.Registry.Remove(v.BufferID); err != nil {
			a.Minibuffer.ShowError(err.Error())
		}
	case actions.CloseCurrentBuffer:
		if cur := a.Registry.Current(); cur != nil {
			a.Dispatch(cur.HandleAction(v))
		}
	case actions.PromptInput:
		a.Minibuffer.Prompt(v.Purpose)
	case actions.SubmitInput:
		a.handleSubmit(v.Value)
	case actions.ClearMinibuffer:
		a.Minibuffer.Clear()
	case actions.ShowMessage:
		a.Minibuffer.ShowMessage(v.Text)
	case actions.ShowError:
		a.Minibuffer.ShowError(v.Text)
	case actions.TabComplete:
		a.Minibuffer.TabComplete(a.completionCandidates())
	case actions.RefreshAll:
		a.Dispatch(actions.TriggerRefreshAll{})
	case actions.DeleteAllDownloads:
		a.Dispatch(actions.TriggerDeleteAllDownloads{})
	case actions.OpenEpisodeList:
		a.submitLoadEpisodes(v.PodcastID)
	case actions.OpenEpisodeDetail:
		a.openEpisodeDetail(v.PodcastID, v.EpisodeID)
	case actions.TriggerDownload:
		a.submitDownload(v.PodcastID, v.EpisodeID)
	case actions.TriggerRefresh:
		a.submitRefresh(v.PodcastID)
	case actions.TriggerRefreshAll:
		a.submitRefreshAll()
	case actions.TriggerDeleteDownload:
		a.submitDeleteDownload(v.PodcastID, v.EpisodeID)
	case actions.TriggerDeleteAllDownloads:
		a.submitDeleteAllDownloads()
	case actions.TriggerSubscribe:
		a.submitSubscribe(v.FeedURL)
	case actions.TriggerUnsubscribe:
		a.submitUnsubscribe(v.PodcastID)
	case actions.TriggerToggleMarkPlayed:
		a.submitToggleMarkPlayed(v.PodcastID, v.EpisodeID)
	case actions.TriggerToggleFavorite:
		a.submitToggleFavorite(v.PodcastID, v.EpisodeID)
	case actions.PlayEpisode:
		a.playEpisode(v.PodcastID, v.EpisodeID)
	case actions.TogglePlayPause:
		a.audio.Send(audio.TogglePlayPauseCommand{})
	case actions.StopPlayback:
		a.audio.Send(audio.StopCommand{})
	case actions.SeekForward:
		a.audio.Send(audio.SeekForwardCommand{Delta: 30 * time.Second})
	case actions.SeekBackward:
		a.audio.Send(audio.SeekBackwardCommand{Delta: 15 * time.Second})
	case actions.VolumeUp:
		a.audio.Send(audio.VolumeUpCommand{Step: 0.05})
	case actions.VolumeDown:
		a.audio.Send(audio.VolumeDownCommand{Step: 0.05})
	default:
		// Buffer-local actions (movement, selection, content verbs not
		// already handled above) are forwarded to the current buffer and
		// any follow-up it bubbles back is dispatched in turn.
		if cur := a.Registry.Current(); cur != nil {
			follow := cur.HandleAction(act)
			if _, isSame := follow.(actions.None); !isSame {
				a.Dispatch(follow)
			}
		}
	}
}

func (a *App) completionCandidates() []string {
	switch a.Minibuffer.Purpose {
	case "switch_buffer":
		return a.Registry.Order()
	default:
		return nil
	}
}

func (a *App) handleSubmit(value string) {
	purpose := a.pendingPurpose
	a.pendingPurpose = ""
	switch purpose {
	case "add_podcast":
		a.Dispatch(actions.TriggerSubscribe{FeedURL: value})
	case "search":
		a.Dispatch(actions.Search{Query: value})
	case "command":
		a.Dispatch(parseCommand(value))
	}
}

// parseCommand interprets an M-x-style minibuffer command line into an
// Action; unrecognized commands surface as an error message rather than
// being silently dropped.
func parseCommand(cmd string) actions.Action {
	switch cmd {
	case "refresh-all":
		return actions.RefreshAll{}
	case "quit":
		return actions.Quit{}
	case "delete-all-downloads":
		return actions.DeleteAllDownloads{}
	default:
		return actions.ShowError{Text: fmt.Sprintf("unknown command: %s", cmd)}
	}
}

func (a *App) submitLoadEpisodes(podcastID models.PodcastID) {
	a.pool.Submit(func(ctx context.Context) {
		episodes, err := a.subs.Episodes(podcastID)
		if err != nil {
			a.router.Send(events.EpisodesLoadFailed{PodcastID: podcastID, Error: err.Error()})
			return
		}
		name := string(podcastID)
		if podcasts, perr := a.subs.List(); perr == nil {
			for _, p := range podcasts {
				if p.ID == podcastID {
					name = p.Title
					break
				}
			}
		}
		a.router.Send(events.EpisodesLoaded{PodcastID: podcastID, Name: name, Episodes: episodes})
	})
}

func (a *App) openEpisodeDetail(podcastID models.PodcastID, episodeID models.EpisodeID) {
	episodes, err := a.subs.Episodes(podcastID)
	if err != nil {
		a.Minibuffer.ShowError(err.Error())
		return
	}
	for _, e := range episodes {
		if e.ID == episodeID {
			id := EpisodeDetailBufferID(e.ID)
			if existing, ok := a.Registry.Get(id); ok {
				existing.(*EpisodeDetailBuffer).SetEpisode(e)
			} else {
				a.Registry.Add(NewEpisodeDetailBuffer(podcastID, e))
			}
			_ = a.Registry.SwitchTo(id)
			return
		}
	}
}

func (a *App) submitDownload(podcastID models.PodcastID, episodeID models.EpisodeID) {
	a.pool.Submit(func(ctx context.Context) {
		if err := a.dl.DownloadEpisode(ctx, podcastID, episodeID); err != nil {
			a.router.Send(events.EpisodeDownloadFailed{PodcastID: podcastID, EpisodeID: episodeID, Error: err.Error()})
			return
		}
		a.router.Send(events.EpisodeDownloaded{PodcastID: podcastID, EpisodeID: episodeID})
	})
}

func (a *App) submitRefresh(podcastID models.PodcastID) {
	a.pool.Submit(func(ctx context.Context) {
		_, _ = a.subs.Refresh(ctx, podcastID)
	})
}

func (a *App) submitRefreshAll() {
	a.pool.Submit(func(ctx context.Context) {
		_, _ = a.subs.RefreshAll(ctx)
	})
}

func (a *App) submitDeleteDownload(podcastID models.PodcastID, episodeID models.EpisodeID) {
	a.pool.Submit(func(ctx context.Context) {
		if err := a.dl.DeleteEpisode(podcastID, episodeID); err != nil {
			a.router.Send(events.EpisodeDownloadFailed{PodcastID: podcastID, EpisodeID: episodeID, Error: err.Error()})
			return
		}
		a.router.Send(events.EpisodeDownloadDeleted{PodcastID: podcastID, EpisodeID: episodeID})
	})
}

func (a *App) submitDeleteAllDownloads() {
	a.pool.Submit(func(ctx context.Context) {
		result, err := a.dl.DeleteAllDownloads()
		if err != nil {
			a.router.Send(events.PlaybackError{Error: err.Error()})
			return
		}
		a.router.Send(events.AllDownloadsDeleted{Count: result.Succeeded})
	})
}

func (a *App) submitSubscribe(feedURL string) {
	a.pool.Submit(func(ctx context.Context) {
		_, _ = a.subs.Subscribe(ctx, feedURL)
	})
}

func (a *App) submitUnsubscribe(podcastID models.PodcastID) {
	a.pool.Submit(func(ctx context.Context) {
		_ = a.subs.Unsubscribe(podcastID)
	})
}

func (a *App) submitToggleMarkPlayed(podcastID models.PodcastID, episodeID models.EpisodeID) {
	a.pool.Submit(func(ctx context.Context) {
		if _, err := a.subs.ToggleMarkPlayed(podcastID, episodeID); err != nil {
			a.router.Send(events.EpisodeUpdateFailed{PodcastID: podcastID, EpisodeID: episodeID, Error: err.Error()})
			return
		}
		a.router.Send(events.EpisodeUpdated{PodcastID: podcastID, EpisodeID: episodeID})
	})
}

func (a *App) submitToggleFavorite(podcastID models.PodcastID, episodeID models.EpisodeID) {
	a.pool.Submit(func(ctx context.Context) {
		if _, err := a.subs.ToggleFavorite(podcastID, episodeID); err != nil {
			a.router.Send(events.EpisodeUpdateFailed{PodcastID: podcastID, EpisodeID: episodeID, Error: err.Error()})
			return
		}
		a.router.Send(events.EpisodeUpdated{PodcastID: podcastID, EpisodeID: episodeID})
	})
}

// markPlayed records that episodeID finished playing naturally, the
// Downloaded/New──▶Played edge of the episode state machine triggered by
// events.TrackEnded rather than an explicit user action.
func (a *App) markPlayed(podcastID models.PodcastID, episodeID models.EpisodeID) {
	a.pool.Submit(func(ctx context.Context) {
		if _, err := a.subs.MarkPlayed(podcastID, episodeID); err != nil {
			a.router.Send(events.EpisodeUpdateFailed{PodcastID: podcastID, EpisodeID: episodeID, Error: err.Error()})
			return
		}
		a.router.Send(events.EpisodeUpdated{PodcastID: podcastID, EpisodeID: episodeID})
	})
}

// persistLastPosition saves how far into episodeID playback had reached
// when it was explicitly stopped, so a later play resumes from there
// instead of from the top.
func (a *App) persistLastPosition(podcastID models.PodcastID, episodeID models.EpisodeID, position time.Duration) {
	if episodeID == "" {
		return
	}
	a.pool.Submit(func(ctx context.Context) {
		_ = a.subs.SetLastPlayedPosition(podcastID, episodeID, int(position.Seconds()))
	})
}

// playEpisode resolves the episode's local file and hands it to the audio
// coordinator; it runs synchronously since the lookup is local storage,
// not network I/O, and the coordinator's own Send never blocks.
func (a *App) playEpisode(podcastID models.PodcastID, episodeID models.EpisodeID) {
	episodes, err := a.subs.Episodes(podcastID)
	if err != nil {
		a.Minibuffer.ShowError(err.Error())
		return
	}
	for _, e := range episodes {
		if e.ID != episodeID {
			continue
		}
		if !e.IsDownloaded() {
			a.Minibuffer.ShowError("episode is not downloaded")
			return
		}
		startAt := time.Duration(e.LastPlayedPosition) * time.Second
		a.audio.Send(audio.PlayCommand{Path: e.LocalPath, EpisodeID: e.ID, PodcastID: podcastID, StartAt: startAt})
		return
	}
}

// playNextDownloaded implements auto-play-next: among the same podcast's
// Downloaded episodes, ordered by Published descending (the same order
// episode-list buffers display), play the one immediately after
// justEndedID. No-op if justEndedID is last, not found, or nothing else
// is downloaded.
func (a *App) playNextDownloaded(podcastID models.PodcastID, justEndedID models.EpisodeID) {
	episodes, err := a.subs.Episodes(podcastID)
	if err != nil {
		return
	}
	sort.Slice(episodes, func(i, j int) bool {
		return episodes[i].Published.After(episodes[j].Published)
	})

	endedIdx := -1
	for i, e := range episodes {
		if e.ID == justEndedID {
			endedIdx = i
			break
		}
	}
	if endedIdx < 0 {
		return
	}
	for _, e := range episodes[endedIdx+1:] {
		if e.IsDownloaded() {
			startAt := time.Duration(e.LastPlayedPosition) * time.Second
			a.audio.Send(audio.PlayCommand{Path: e.LocalPath, EpisodeID: e.ID, PodcastID: podcastID, StartAt: startAt})
			return
		}
	}
}

// refreshPodcastList reloads the podcast list buffer from storage - called
// after any event that changes the subscription set.
func (a *App) refreshPodcastList() {
	podcasts, err := a.subs.List()
	if err != nil {
		return
	}
	if buf, ok := a.Registry.Get("podcasts"); ok {
		buf.(*PodcastListBuffer).SetPodcasts(podcasts)
	}
}

// refreshWhatsNew reloads the cross-podcast what's-new aggregation.
func (a *App) refreshWhatsNew() {
	episodes, err := a.subs.WhatsNew()
	if err != nil {
		return
	}
	if buf, ok := a.Registry.Get("whats_new"); ok {
		buf.(*WhatsNewBuffer).SetEpisodes(episodes)
	}
}

// refreshEpisodeList reloads a live episode-list buffer for podcastID, if
// one is currently open, so a refresh/download event is reflected without
// requiring the user to reopen the buffer.
func (a *App) refreshEpisodeList(podcastID models.PodcastID) {
	id := EpisodeListBufferID(podcastID)
	buf, ok := a.Registry.Get(id)
	if !ok {
		return
	}
	episodes, err := a.subs.Episodes(podcastID)
	if err != nil {
		return
	}
	buf.(*EpisodeListBuffer).SetEpisodes(episodes)
}

// refreshDownloads reloads the downloads buffer from the current episode
// set across all subscribed podcasts.
func (a *App) refreshDownloads() {
	podcasts, err := a.subs.List()
	if err != nil {
		return
	}
	var downloaded []*models.Episode
	for _, p := range podcasts {
		episodes, err := a.subs.Episodes(p.ID)
		if err != nil {
			continue
		}
		for _, e := range episodes {
			switch e.Status {
			case models.StatusDownloading, models.StatusDownloaded, models.StatusDownloadFailed:
				downloaded = append(downloaded, e)
			}
		}
	}
	if buf, ok := a.Registry.Get("downloads"); ok {
		buf.(*DownloadsBuffer).SetEpisodes(downloaded)
	}
}

// HandleEvent reacts to a single AppEvent delivered by a background task
// or the audio coordinator. Every AppEvent variant is handled explicitly;
// there is no default case, so an event type without a branch here is
// silently ignored.
func (a *App) HandleEvent(evt events.AppEvent) {
	switch v := evt.(type) {
	case events.PodcastSubscribed:
		a.refreshPodcastList()
		a.Minibuffer.ShowMessage(fmt.Sprintf("subscribed: %s", v.Podcast.Title))
	case events.PodcastSubscriptionFailed:
		a.Minibuffer.ShowError(fmt.Sprintf("subscribe failed: %s", v.Error))
	case events.PodcastRefreshed:
		a.refreshEpisodeList(v.PodcastID)
		a.refreshWhatsNew()
		if v.NewEpisodeCount > 0 {
			a.Minibuffer.ShowMessage(fmt.Sprintf("%d new episode(s)", v.NewEpisodeCount))
		}
	case events.PodcastRefreshFailed:
		a.Minibuffer.ShowError(fmt.Sprintf("refresh failed: %s", v.Error))
	case events.AllPodcastsRefreshed:
		a.refreshWhatsNew()
		if buf, ok := a.Registry.Get("sync"); ok {
			buf.(*SyncBuffer).SetStatus(fmt.Sprintf("refreshed all, %d new", v.TotalNew))
		}
		a.Minibuffer.ShowMessage(fmt.Sprintf("refreshed all podcasts, %d new episode(s)", v.TotalNew))
	case events.EpisodesLoaded:
		id := EpisodeListBufferID(v.PodcastID)
		if existing, ok := a.Registry.Get(id); ok {
			existing.(*EpisodeListBuffer).SetEpisodes(v.Episodes)
		} else {
			a.Registry.Add(NewEpisodeListBuffer(v.PodcastID, v.Name, v.Episodes))
		}
		_ = a.Registry.SwitchTo(id)
	case events.EpisodesLoadFailed:
		a.Minibuffer.ShowError(fmt.Sprintf("could not load episodes: %s", v.Error))
	case events.EpisodeDownloaded:
		a.refreshEpisodeList(v.PodcastID)
		a.refreshDownloads()
		a.Minibuffer.ShowMessage("download complete")
	case events.EpisodeDownloadFailed:
		a.Minibuffer.ShowError(fmt.Sprintf("download failed: %s", v.Error))
	case events.EpisodeDownloadDeleted:
		a.refreshEpisodeList(v.PodcastID)
		a.refreshDownloads()
	case events.DownloadsRefreshed:
		a.refreshDownloads()
	case events.AllDownloadsDeleted:
		a.refreshDownloads()
		a.Minibuffer.ShowMessage(fmt.Sprintf("deleted %d download(s)", v.Count))
	case events.PlaybackStarted:
		if buf, ok := a.Registry.Get("sync"); ok {
			buf.(*SyncBuffer).SetStatus(fmt.Sprintf("playing %s", v.EpisodeID))
		}
	case events.PlaybackStopped:
		if buf, ok := a.Registry.Get("sync"); ok {
			buf.(*SyncBuffer).SetStatus("stopped")
		}
		a.persistLastPosition(v.PodcastID, v.EpisodeID, v.Position)
	case events.TrackEnded:
		a.Minibuffer.ShowMessage("track ended")
		a.markPlayed(v.PodcastID, v.EpisodeID)
		if a.autoPlayNext {
			a.playNextDownloaded(v.PodcastID, v.EpisodeID)
		}
	case events.PlaybackError:
		a.Minibuffer.ShowError(fmt.Sprintf("playback error: %s", v.Error))
	case events.EpisodeUpdated:
		a.refreshEpisodeList(v.PodcastID)
		a.refreshWhatsNew()
		a.refreshDownloads()
	case events.EpisodeUpdateFailed:
		a.Minibuffer.ShowError(fmt.Sprintf("update failed: %s", v.Error))
	case events.PodcastDeleted:
		a.refreshPodcastList()
		a.refreshWhatsNew()
		a.refreshDownloads()
		a.Minibuffer.ShowMessage(fmt.Sprintf("unsubscribed: %s", v.Title))
	case events.PodcastDeletionFailed:
		a.Minibuffer.ShowError(fmt.Sprintf("unsubscribe failed: %s", v.Error))
	}
}
