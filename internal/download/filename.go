package download

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/killallgit/podcast-tui/internal/models"
)

const maxFilenameLength = 200

var allowedExtensions = map[string]bool{
	"mp3": true,
	"m4a": true,
	"ogg": true,
	"wav": true,
}

// sanitizedFilename generates the on-disk filename for an episode: retain
// alphanumeric characters, spaces, hyphens, and underscores from the
// title, replace spaces with underscores, and append the extension
// derived from the audio URL's path (restricted to mp3/m4a/ogg/wav,
// default mp3). The episode ID is prepended to guarantee uniqueness; if
// the result would exceed 200 characters it degrades to
// "{episode_id}.{extension}".
func sanitizedFilename(episodeID models.EpisodeID, title, audioURL string) string {
	ext := extensionFromURL(audioURL)
	cleanedTitle := cleanTitle(title)

	name := fmt.Sprintf("%s_%s.%s", episodeID, cleanedTitle, ext)
	if len(name) > maxFilenameLength {
		return fmt.Sprintf("%s.%s", episodeID, ext)
	}
	return name
}

func cleanTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), " ", "_")
}

func extensionFromURL(audioURL string) string {
	u, err := url.Parse(audioURL)
	if err != nil {
		return "mp3"
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	if allowedExtensions[ext] {
		return ext
	}
	return "mp3"
}
