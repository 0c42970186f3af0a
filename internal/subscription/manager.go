// Package subscription is the thin query/mutation layer over Storage and
// feed.Parser that the UI's podcast-list and whats-new buffers drive:
// subscribe, unsubscribe, refresh (single and all), and list/sort. It holds
// no state of its own beyond its Storage, Parser and event Router handles -
// Storage is always the source of truth.
package subscription

import (
	"context"
	"sort"
	"time"

	"github.com/killallgit/podcast-tui/internal/events"
	"github.com/killallgit/podcast-tui/internal/feed"
	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/storage"
)

// Manager mediates between the feed parser, storage, and the event router.
type Manager struct {
	store  storage.Storage
	parser *feed.Parser
	router *events.Router
}

func NewManager(store storage.Storage, parser *feed.Parser, router *events.Router) *Manager {
	return &Manager{store: store, parser: parser, router: router}
}

// Subscribe fetches feedURL, rejects an existing subscription to the same
// feed (its PodcastID is derived deterministically from the URL, so this
// is a plain existence check), and persists the podcast and all its
// episodes.
func (m *Manager) Subscribe(ctx context.Context, feedURL string) (*models.Podcast, error) {
	id := models.NewPodcastIDFromURL(feedURL)
	if m.store.PodcastExists(id) {
		return nil, errAlreadySubscribed(feedURL)
	}

	podcast, episodes, err := m.parser.ParseFeed(ctx, feedURL)
	if err != nil {
		m.router.Send(events.PodcastSubscriptionFailed{URL: feedURL, Error: err.Error()})
		return nil, err
	}

	if err := m.store.SavePodcast(podcast); err != nil {
		return nil, err
	}
	if err := m.store.SaveEpisodes(podcast.ID, episodes); err != nil {
		return nil, err
	}

	m.router.Send(events.PodcastSubscribed{Podcast: podcast})
	return podcast, nil
}

// Unsubscribe deletes a podcast and cascades to its episodes via Storage.
func (m *Manager) Unsubscribe(id models.PodcastID) error {
	podcast, err := m.store.LoadPodcast(id)
	if err != nil {
		return err
	}
	if err := m.store.DeletePodcast(id); err != nil {
		m.router.Send(events.PodcastDeletionFailed{ID: id, Error: err.Error()})
		return err
	}
	m.router.Send(events.PodcastDeleted{ID: id, Title: podcast.Title})
	return nil
}

// Refresh re-fetches one podcast's feed and reconciles episodes by GUID:
// episodes whose GUID already exists are left untouched (no overwrite of
// user-mutated fields like Favorited/Status), new GUIDs are appended.
func (m *Manager) Refresh(ctx context.Context, id models.PodcastID) (int, error) {
	podcast, err := m.store.LoadPodcast(id)
	if err != nil {
		return 0, err
	}

	fetched, err := m.parser.GetEpisodes(ctx, podcast.FeedURL, id)
	if err != nil {
		m.router.Send(events.PodcastRefreshFailed{PodcastID: id, Error: err.Error()})
		return 0, err
	}

	existingGUIDs := make(map[string]bool, len(podcast.Episodes))
	for _, epID := range podcast.Episodes {
		ep, err := m.store.LoadEpisode(id, epID)
		if err != nil {
			continue
		}
		existingGUIDs[ep.GUID] = true
	}

	var fresh []*models.Episode
	for _, ep := range fetched {
		if existingGUIDs[ep.GUID] {
			continue
		}
		fresh = append(fresh, ep)
		podcast.AddEpisode(ep.ID)
	}

	if len(fresh) > 0 {
		if err := m.store.SaveEpisodes(id, fresh); err != nil {
			return 0, err
		}
	}
	podcast.LastUpdated = time.Now().UTC()
	if err := m.store.SavePodcast(podcast); err != nil {
		return 0, err
	}

	m.router.Send(events.PodcastRefreshed{PodcastID: id, NewEpisodeCount: len(fresh)})
	return len(fresh), nil
}

// RefreshAll refreshes every subscribed podcast, tolerating individual
// failures (each emits its own PodcastRefreshFailed) and summarizing at
// the end with a single AllPodcastsRefreshed.
func (m *Manager) RefreshAll(ctx context.Context) (int, error) {
	ids, err := m.store.ListPodcasts()
	if err != nil {
		return 0, err
	}

	total := 0
	var firstErr error
	for _, id := range ids {
		n, err := m.Refresh(ctx, id)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		total += n
	}

	m.router.Send(events.AllPodcastsRefreshed{TotalNew: total})
	return total, firstErr
}

// List returns every subscribed podcast sorted by title, the order the
// podcast-list buffer renders.
func (m *Manager) List() ([]*models.Podcast, error) {
	ids, err := m.store.ListPodcasts()
	if err != nil {
		return nil, err
	}
	out := make([]*models.Podcast, 0, len(ids))
	for _, id := range ids {
		p, err := m.store.LoadPodcast(id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Episodes returns a podcast's episodes sorted newest-first, the order
// every episode-list and whats-new buffer renders.
func (m *Manager) Episodes(podcastID models.PodcastID) ([]*models.Episode, error) {
	ids, err := m.store.ListEpisodes(podcastID)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Episode, 0, len(ids))
	for _, id := range ids {
		e, err := m.store.LoadEpisode(podcastID, id)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	sortEpisodesByPublishedDesc(out)
	return out, nil
}

// WhatsNew returns every StatusNew episode across all subscriptions,
// newest-first, for the what's-new buffer.
func (m *Manager) WhatsNew() ([]*models.Episode, error) {
	podcasts, err := m.List()
	if err != nil {
		return nil, err
	}
	var out []*models.Episode
	for _, p := range podcasts {
		eps, err := m.Episodes(p.ID)
		if err != nil {
			continue
		}
		for _, e := range eps {
			if e.Status == models.StatusNew {
				out = append(out, e)
			}
		}
	}
	sortEpisodesByPublishedDesc(out)
	return out, nil
}

// MarkPlayed transitions an episode to StatusPlayed (the
// Downloaded/New──▶Played edges of the episode state machine),
// incrementing PlayCount and resetting LastPlayedPosition since a fully
// played episode has nothing left to resume from.
func (m *Manager) MarkPlayed(podcastID models.PodcastID, episodeID models.EpisodeID) (*models.Episode, error) {
	e, err := m.store.LoadEpisode(podcastID, episodeID)
	if err != nil {
		return nil, err
	}
	e.Status = models.StatusPlayed
	e.PlayCount++
	e.LastPlayedPosition = 0
	if err := m.store.SaveEpisode(e); err != nil {
		return nil, err
	}
	return e, nil
}

// MarkUnplayed transitions a Played episode back to StatusNew
// (Played──mark_unplayed──▶New).
func (m *Manager) MarkUnplayed(podcastID models.PodcastID, episodeID models.EpisodeID) (*models.Episode, error) {
	e, err := m.store.LoadEpisode(podcastID, episodeID)
	if err != nil {
		return nil, err
	}
	e.Status = models.StatusNew
	if err := m.store.SaveEpisode(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ToggleMarkPlayed flips an episode between Played and Not-played,
// calling MarkPlayed/MarkUnplayed depending on its current status.
func (m *Manager) ToggleMarkPlayed(podcastID models.PodcastID, episodeID models.EpisodeID) (*models.Episode, error) {
	e, err := m.store.LoadEpisode(podcastID, episodeID)
	if err != nil {
		return nil, err
	}
	if e.Status == models.StatusPlayed {
		return m.MarkUnplayed(podcastID, episodeID)
	}
	return m.MarkPlayed(podcastID, episodeID)
}

// ToggleFavorite flips an episode's Favorited flag.
func (m *Manager) ToggleFavorite(podcastID models.PodcastID, episodeID models.EpisodeID) (*models.Episode, error) {
	e, err := m.store.LoadEpisode(podcastID, episodeID)
	if err != nil {
		return nil, err
	}
	e.Favorited = !e.Favorited
	if err := m.store.SaveEpisode(e); err != nil {
		return nil, err
	}
	return e, nil
}

// SetLastPlayedPosition persists the in-progress playback position for
// episode, so a later PlayEpisode can resume from where it left off.
func (m *Manager) SetLastPlayedPosition(podcastID models.PodcastID, episodeID models.EpisodeID, seconds int) error {
	e, err := m.store.LoadEpisode(podcastID, episodeID)
	if err != nil {
		return err
	}
	e.LastPlayedPosition = seconds
	return m.store.SaveEpisode(e)
}

func sortEpisodesByPublishedDesc(eps []*models.Episode) {
	sort.Slice(eps, func(i, j int) bool { return eps[i].Published.After(eps[j].Published) })
}

// opmlTitle is the text written for a podcast's OPML outline: its Title,
// or its FeedURL when the title is empty.
func opmlTitle(p *models.Podcast) string {
	if p.Title == "" {
		return p.FeedURL
	}
	return p.Title
}

// fmtTime formats t the way OPML's dateCreated/dateModified attributes
// expect (RFC1123).
func fmtTime(t time.Time) string {
	return t.Format(time.RFC1123)
}
