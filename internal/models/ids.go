package models

import (
	"strings"

	"github.com/google/uuid"
)

// PodcastID uniquely identifies a Podcast. It is a UUID v4 for podcasts
// created directly, but subscribing always derives it deterministically
// from the feed URL (see NewPodcastIDFromURL) so re-subscribing to the
// same feed reuses the same identity.
type PodcastID string

// EpisodeID uniquely identifies an Episode within a Podcast.
type EpisodeID string

// podcastNamespace is a fixed UUID namespace used to derive deterministic
// podcast IDs from feed URLs via UUID v5, the same technique
// jo-hoe/gofeedx uses to compute a stable podcast GUID from a feed URL.
var podcastNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// NewPodcastID generates a random podcast identity (used for podcasts
// constructed outside of feed subscription, e.g. in tests).
func NewPodcastID() PodcastID {
	return PodcastID(uuid.NewString())
}

// NewPodcastIDFromURL derives a podcast ID deterministically from its feed
// URL: the same URL always yields the same ID, satisfying the feed-ID
// determinism property. The URL is normalized first (scheme and trailing
// slashes stripped) so that http/https/feed variants of the same address
// collapse onto a single identity.
func NewPodcastIDFromURL(feedURL string) PodcastID {
	normalized := normalizeFeedURL(feedURL)
	return PodcastID(uuid.NewSHA1(podcastNamespace, []byte(normalized)).String())
}

func normalizeFeedURL(u string) string {
	s := strings.TrimSpace(u)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "feed://")
	for strings.HasSuffix(s, "/") {
		s = strings.TrimSuffix(s, "/")
	}
	return strings.ToLower(s)
}

// NewEpisodeID generates a random episode identity.
func NewEpisodeID() EpisodeID {
	return EpisodeID(uuid.NewString())
}

func (id PodcastID) String() string { return string(id) }
func (id EpisodeID) String() string { return string(id) }
