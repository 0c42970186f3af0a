// Package download orchestrates episode fetch: state transitions, file
// placement, and crash recovery, built on top of pkg/download's streaming
// HTTP-to-file primitive (the teacher's audio-acquisition downloader,
// generalized from a one-shot temp-file fetch into the full episode
// lifecycle the core requires: download-to-temp then atomic rename onto
// the episode's final path, so a crash mid-download never leaves a
// partial file sitting at the path DownloadEpisode treats as "done").
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/killallgit/podcast-tui/internal/storage"
	pkgdownload "github.com/killallgit/podcast-tui/pkg/download"
)

// HTTPDoer is the seam used to stub the HTTP client in download-idempotence
// tests: DownloadEpisode must not perform a request at all when the target
// file already exists.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Manager implements the DownloadManager contract. It serializes each
// episode's own transitions through a single call chain, but the manager
// itself does not deduplicate concurrent calls for the same episode - the
// caller (the UI layer) is responsible for not issuing a second download
// while one is already in progress, checked via status.
type Manager struct {
	store       storage.Storage
	downloadDir string
	downloader  *pkgdownload.Downloader
}

// NewManager builds a Manager rooted at downloadDir. Temporary files
// land in a .tmp subdirectory of downloadDir so the final os.Rename in
// stream stays on one filesystem.
func NewManager(store storage.Storage, downloadDir string, client HTTPDoer, userAgent string, timeout time.Duration) *Manager {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	tempDir := filepath.Join(downloadDir, ".tmp")
	_ = os.MkdirAll(tempDir, 0755)
	opts := pkgdownload.DownloadOptions{
		TempDir:   tempDir,
		Timeout:   timeout,
		UserAgent: userAgent,
		// Podcast CDNs frequently mislabel or omit Content-Type on audio
		// enclosures; trust the feed's declared enclosure URL over a
		// content-type sniff.
		ValidateAudio: false,
	}
	return &Manager{
		store:       store,
		downloadDir: downloadDir,
		downloader:  pkgdownload.NewDownloaderWithClient(client, opts),
	}
}

func (m *Manager) targetPath(podcastID models.PodcastID, filename string) string {
	return filepath.Join(m.downloadDir, string(podcastID), filename)
}

// DownloadEpisode runs the spec's download_episode algorithm: idempotent
// when the target file already exists, self-healing via status
// transitions, fsync-on-completion.
func (m *Manager) DownloadEpisode(ctx context.Context, podcastID models.PodcastID, episodeID models.EpisodeID) error {
	episode, err := m.store.LoadEpisode(podcastID, episodeID)
	if err != nil {
		return err
	}

	filename := sanitizedFilename(episode.ID, episode.Title, episode.AudioURL)
	target := m.targetPath(podcastID, filename)

	if _, statErr := os.Stat(target); statErr == nil {
		episode.Status = models.StatusDownloaded
		episode.LocalPath = target
		return m.save(episode)
	}

	episode.Status = models.StatusDownloading
	if err := m.save(episode); err != nil {
		return err
	}

	resolvedURL := episode.AudioURL
	if resolvedURL == "" {
		if strings.HasPrefix(episode.GUID, "http") {
			resolvedURL = episode.GUID
		} else {
			episode.Status = models.StatusDownloadFailed
			_ = m.save(episode)
			return errInvalidPath()
		}
	}

	if err := m.stream(ctx, resolvedURL, target, string(episode.ID)); err != nil {
		episode.Status = models.StatusDownloadFailed
		os.Remove(target)
		_ = m.save(episode)
		return err
	}

	episode.Status = models.StatusDownloaded
	episode.LocalPath = target
	return m.save(episode)
}

func (m *Manager) save(e *models.Episode) error {
	return m.store.SaveEpisode(e)
}

// stream fetches sourceURL to a temp file via the shared Downloader (which
// makes up to three attempts in all on a 403, a known CDN
// hotlink-protection failure mode for podcast enclosures) and atomically
// renames it onto target.
func (m *Manager) stream(ctx context.Context, sourceURL, target, episodeID string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errIO(err)
	}

	result, err := m.downloader.DownloadWithRetry(ctx, sourceURL, episodeID)
	if err != nil {
		return errHTTP(err)
	}

	if err := os.Rename(result.FilePath, target); err != nil {
		if copyErr := copyFileContents(result.FilePath, target); copyErr != nil {
			os.Remove(result.FilePath)
			return errIO(copyErr)
		}
		os.Remove(result.FilePath)
	}
	return nil
}

// copyFileContents is the os.Rename fallback for when the temp directory
// and the download directory live on different filesystems (EXDEV).
func copyFileContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// DeleteEpisode removes the downloaded file (if any), reverts status to
// New, and saves.
func (m *Manager) DeleteEpisode(podcastID models.PodcastID, episodeID models.EpisodeID) error {
	episode, err := m.store.LoadEpisode(podcastID, episodeID)
	if err != nil {
		return err
	}
	if episode.LocalPath != "" {
		if _, statErr := os.Stat(episode.LocalPath); statErr == nil {
			if err := os.Remove(episode.LocalPath); err != nil {
				return errIO(err)
			}
		}
	}
	episode.LocalPath = ""
	if episode.Status == models.StatusDownloaded {
		episode.Status = models.StatusNew
	}
	return m.save(episode)
}

// DeleteAllDownloadsResult reports the outcome of a bulk delete; a
// partial failure does not roll back what already succeeded.
type DeleteAllDownloadsResult struct {
	Succeeded int
	Failed    int
}

// DeleteAllDownloads iterates every podcast's downloaded episodes,
// deletes their files, clears status, and removes now-empty per-podcast
// download directories.
func (m *Manager) DeleteAllDownloads() (DeleteAllDownloadsResult, error) {
	var result DeleteAllDownloadsResult

	podcastIDs, err := m.store.ListPodcasts()
	if err != nil {
		return result, err
	}

	touchedDirs := make(map[string]bool)
	for _, pid := range podcastIDs {
		episodeIDs, err := m.store.ListEpisodes(pid)
		if err != nil {
			continue
		}
		for _, eid := range episodeIDs {
			episode, err := m.store.LoadEpisode(pid, eid)
			if err != nil || episode.Status != models.StatusDownloaded {
				continue
			}
			if err := m.DeleteEpisode(pid, eid); err != nil {
				result.Failed++
				continue
			}
			result.Succeeded++
			touchedDirs[filepath.Join(m.downloadDir, string(pid))] = true
		}
	}

	for dir := range touchedDirs {
		entries, err := os.ReadDir(dir)
		if err == nil && len(entries) == 0 {
			os.Remove(dir)
		}
	}

	if result.Failed > 0 {
		return result, fmt.Errorf("delete_all_downloads: %d succeeded, %d failed", result.Succeeded, result.Failed)
	}
	return result, nil
}

// CleanupStuckDownloads runs at startup: for every episode with
// status=Downloading whose local_path does not (yet) exist, revert to
// New. This recovers from a crash mid-download.
func (m *Manager) CleanupStuckDownloads() error {
	podcastIDs, err := m.store.ListPodcasts()
	if err != nil {
		return err
	}
	for _, pid := range podcastIDs {
		episodeIDs, err := m.store.ListEpisodes(pid)
		if err != nil {
			continue
		}
		for _, eid := range episodeIDs {
			episode, err := m.store.LoadEpisode(pid, eid)
			if err != nil || episode.Status != models.StatusDownloading {
				continue
			}
			if episode.LocalPath != "" {
				if _, statErr := os.Stat(episode.LocalPath); statErr == nil {
					continue
				}
			}
			episode.Status = models.StatusNew
			episode.LocalPath = ""
			_ = m.save(episode)
		}
	}
	return nil
}
