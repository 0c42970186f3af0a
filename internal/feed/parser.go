// Package feed fetches and normalizes RSS/Atom podcast feeds into the
// core's Podcast/Episode model, grounded on the teacher's itunes API
// client's HTTP-with-timeout-and-rate-limit shape (internal/services/
// itunes/client.go) generalized from a JSON REST client to a feed fetcher,
// and on jo-hoe/gofeedx's Feed/Item shape (read in reverse, as a consumer
// rather than a builder) for what fields a normalized feed needs.
package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/killallgit/podcast-tui/internal/models"
	"golang.org/x/time/rate"
)

const (
	requestTimeout   = 30 * time.Second
	connectTimeout   = 10 * time.Second
	maxRedirects     = 10
	userAgent        = "podcast-tui/1.0 (+https://github.com/killallgit/podcast-tui)"
)

// Parser fetches and parses podcast feeds. A single Parser is safe for
// concurrent use; its rate limiter throttles refreshes across callers.
type Parser struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewParser builds a Parser. requestsPerMinute governs the shared refresh
// rate limiter, mirroring the teacher's itunes client's
// rate.NewLimiter(rate.Every(time.Minute/N), burst) construction.
func NewParser(requestsPerMinute int) *Parser {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: connectTimeout,
	}
	return &Parser{
		client: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
	}
}

// ParseFeed fetches feedURL and returns a normalized Podcast plus its
// episodes. It is the entry point for SubscriptionManager.Subscribe.
func (p *Parser) ParseFeed(ctx context.Context, feedURL string) (*models.Podcast, []*models.Episode, error) {
	if err := validateURL(feedURL); err != nil {
		return nil, nil, err
	}

	body, err := p.fetch(ctx, feedURL)
	if err != nil {
		return nil, nil, err
	}

	podcast, episodes, err := parseDocument(body, feedURL)
	if err != nil {
		return nil, nil, err
	}
	if len(episodes) == 0 {
		return nil, nil, errNoEpisodes()
	}
	return podcast, episodes, nil
}

// GetEpisodes re-fetches feedURL and returns only the episode list, for
// refresh reconciliation against already-stored episodes.
func (p *Parser) GetEpisodes(ctx context.Context, feedURL string, podcastID models.PodcastID) ([]*models.Episode, error) {
	body, err := p.fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	_, episodes, err := parseDocument(body, feedURL)
	if err != nil {
		return nil, err
	}
	for _, e := range episodes {
		e.PodcastID = podcastID
	}
	return episodes, nil
}

// ValidateFeed fetches feedURL and returns only podcast metadata, used by
// add-podcast prompts to preview a feed before committing to subscribe.
func (p *Parser) ValidateFeed(ctx context.Context, feedURL string) (*models.Podcast, error) {
	if err := validateURL(feedURL); err != nil {
		return nil, err
	}
	body, err := p.fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	podcast, _, err := parseDocument(body, feedURL)
	if err != nil {
		return nil, err
	}
	return podcast, nil
}

func validateURL(feedURL string) error {
	u, err := url.Parse(feedURL)
	if err != nil {
		return errValidation("invalid feed URL: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errValidation("feed URL scheme must be http or https")
	}
	return nil
}

func (p *Parser) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, errNetwork(err, feedURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, errNetwork(err, feedURL)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errNetwork(err, feedURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errNetwork(fmt.Errorf("status %d", resp.StatusCode), feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errNetwork(err, feedURL)
	}
	return body, nil
}

// parseDocument detects the feed dialect (RSS vs Atom) by peeking at the
// root XML element, then delegates to the matching extractor. Parse
// failures never partially populate the returned model.
func parseDocument(body []byte, feedURL string) (*models.Podcast, []*models.Episode, error) {
	root, err := rootElementName(body)
	if err != nil {
		return nil, nil, errParse(err)
	}

	switch root {
	case "rss", "rdf":
		var doc rssDocument
		if err := xml.Unmarshal(body, &doc); err != nil {
			return nil, nil, errParse(err)
		}
		return fromRSS(&doc, feedURL)
	case "feed":
		var doc atomDocument
		if err := xml.Unmarshal(body, &doc); err != nil {
			return nil, nil, errParse(err)
		}
		return fromAtom(&doc, feedURL)
	default:
		return nil, nil, errParse(fmt.Errorf("unrecognized feed root element %q", root))
	}
}

func rootElementName(body []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}

func fromRSS(doc *rssDocument, feedURL string) (*models.Podcast, []*models.Episode, error) {
	podcastID := models.NewPodcastIDFromURL(feedURL)
	title := strings.TrimSpace(doc.Channel.Title)
	if title == "" {
		title = "Untitled Podcast"
	}
	image := doc.Channel.Image.URL
	if image == "" {
		image = doc.Channel.ITunesImage.Href
	}
	author := doc.Channel.Author
	if author == "" {
		author = doc.Channel.ITunesAuthor
	}

	podcast := &models.Podcast{
		ID:          podcastID,
		Title:       title,
		FeedURL:     feedURL,
		Description: doc.Channel.Description,
		Author:      author,
		Image:       image,
		Language:    doc.Channel.Language,
		Categories:  doc.Channel.Categories,
		LastUpdated: time.Now().UTC(),
	}

	episodes := make([]*models.Episode, 0, len(doc.Channel.Items))
	for i, item := range doc.Channel.Items {
		ep := episodeFromRSSItem(item, podcastID, i)
		podcast.AddEpisode(ep.ID)
		episodes = append(episodes, ep)
	}
	return podcast, episodes, nil
}

func episodeFromRSSItem(item rssItem, podcastID models.PodcastID, index int) *models.Episode {
	guid := item.GUID
	if guid == "" {
		guid = fmt.Sprintf("episode-%s-%d", podcastID, index)
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = fmt.Sprintf("Episode %d", index+1)
	}

	audioURL := ""
	mimeType := item.Enclosure.Type
	var size *int64
	if strings.HasPrefix(item.Enclosure.Type, "audio/") {
		audioURL = item.Enclosure.URL
		if n, err := strconv.ParseInt(item.Enclosure.Length, 10, 64); err == nil {
			size = &n
		}
	}

	published := parseTime(item.PubDate)

	return &models.Episode{
		ID:          models.NewEpisodeID(),
		PodcastID:   podcastID,
		Title:       title,
		AudioURL:    audioURL,
		GUID:        guid,
		Link:        item.Link,
		MIMEType:    mimeType,
		Description: firstNonEmpty(item.Description),
		Published:   published,
		Size:        size,
		Status:      models.StatusNew,
	}
}

func fromAtom(doc *atomDocument, feedURL string) (*models.Podcast, []*models.Episode, error) {
	podcastID := models.NewPodcastIDFromURL(feedURL)
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = "Untitled Podcast"
	}

	podcast := &models.Podcast{
		ID:          podcastID,
		Title:       title,
		FeedURL:     feedURL,
		Description: doc.Subtitle,
		Author:      doc.Author.Name,
		LastUpdated: time.Now().UTC(),
	}

	episodes := make([]*models.Episode, 0, len(doc.Entries))
	for i, entry := range doc.Entries {
		ep := episodeFromAtomEntry(entry, podcastID, i)
		podcast.AddEpisode(ep.ID)
		episodes = append(episodes, ep)
	}
	return podcast, episodes, nil
}

func episodeFromAtomEntry(entry atomEntry, podcastID models.PodcastID, index int) *models.Episode {
	guid := entry.ID
	if guid == "" {
		guid = fmt.Sprintf("episode-%s-%d", podcastID, index)
	}
	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = fmt.Sprintf("Episode %d", index+1)
	}

	audioURL := ""
	mimeType := ""
	link := ""
	var size *int64
	audioFound := false
	for _, l := range entry.Links {
		if !audioFound && l.Rel == "enclosure" && strings.HasPrefix(l.Type, "audio/") {
			audioURL = l.Href
			mimeType = l.Type
			if n, err := strconv.ParseInt(l.Length, 10, 64); err == nil {
				size = &n
			}
			audioFound = true
		}
		if l.Rel == "alternate" || l.Rel == "" {
			link = l.Href
		}
	}

	description := entry.Summary
	if description == "" {
		description = entry.Content
	}

	publishedRaw := entry.Published
	if publishedRaw == "" {
		publishedRaw = entry.Updated
	}

	return &models.Episode{
		ID:          models.NewEpisodeID(),
		PodcastID:   podcastID,
		Title:       title,
		AudioURL:    audioURL,
		GUID:        guid,
		Link:        link,
		MIMEType:    mimeType,
		Description: description,
		Published:   parseTime(publishedRaw),
		Size:        size,
		Status:      models.StatusNew,
	}
}

func firstNonEmpty(s string) string {
	return strings.TrimSpace(s)
}

var timeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05Z07:00",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// parseTime tries a handful of common feed timestamp layouts, falling
// back to "now" if none match or the input is empty.
func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC()
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
