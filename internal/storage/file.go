package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/killallgit/podcast-tui/internal/models"
)

// FileStorage is the on-disk Storage implementation. Layout:
//
//	{root}/podcasts/{podcast_uuid}.json
//	{root}/episodes/{podcast_uuid}/{episode_uuid}.json
//
// Writes are atomic per entity: serialize to a sibling temp file in the
// same directory, then os.Rename over the target, so a concurrent reader
// either observes the file's prior committed contents or the new ones -
// never a torn write, because rename is atomic within a filesystem.
type FileStorage struct {
	root string
}

// NewFileStorage returns a FileStorage rooted at root. Initialize must be
// called before first use.
func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) podcastsDir() string { return filepath.Join(s.root, "podcasts") }
func (s *FileStorage) episodesDir(podcastID models.PodcastID) string {
	return filepath.Join(s.root, "episodes", string(podcastID))
}
func (s *FileStorage) podcastPath(id models.PodcastID) string {
	return filepath.Join(s.podcastsDir(), string(id)+".json")
}
func (s *FileStorage) episodePath(podcastID models.PodcastID, id models.EpisodeID) string {
	return filepath.Join(s.episodesDir(podcastID), string(id)+".json")
}

// Initialize ensures all required directories exist before first use.
func (s *FileStorage) Initialize() error {
	if err := os.MkdirAll(s.podcastsDir(), 0755); err != nil {
		return errFileOperation("mkdir", s.podcastsDir(), err)
	}
	if err := os.MkdirAll(filepath.Join(s.root, "episodes"), 0755); err != nil {
		return errFileOperation("mkdir", filepath.Join(s.root, "episodes"), err)
	}
	return nil
}

// writeJSONAtomic serializes v to a temp file in dir and renames it over path.
func writeJSONAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errFileOperation("mkdir", dir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errSerialization(err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errFileOperation("create_temp", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errFileOperation("write", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errFileOperation("fsync", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errFileOperation("close", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errFileOperation("rename", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errSerialization(err)
	}
	return nil
}

func (s *FileStorage) SavePodcast(p *models.Podcast) error {
	return writeJSONAtomic(s.podcastPath(p.ID), p)
}

func (s *FileStorage) LoadPodcast(id models.PodcastID) (*models.Podcast, error) {
	var p models.Podcast
	if err := readJSON(s.podcastPath(id), &p); err != nil {
		if os.IsNotExist(err) {
			return nil, errPodcastNotFound(string(id))
		}
		return nil, err
	}
	return &p, nil
}

func (s *FileStorage) DeletePodcast(id models.PodcastID) error {
	if err := os.Remove(s.podcastPath(id)); err != nil && !os.IsNotExist(err) {
		return errFileOperation("remove", s.podcastPath(id), err)
	}
	if err := os.RemoveAll(s.episodesDir(id)); err != nil {
		return errFileOperation("remove_all", s.episodesDir(id), err)
	}
	return nil
}

func (s *FileStorage) ListPodcasts() ([]models.PodcastID, error) {
	entries, err := os.ReadDir(s.podcastsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errFileOperation("readdir", s.podcastsDir(), err)
	}
	ids := make([]models.PodcastID, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, models.PodcastID(name[:len(name)-len(".json")]))
	}
	return ids, nil
}

func (s *FileStorage) PodcastExists(id models.PodcastID) bool {
	_, err := os.Stat(s.podcastPath(id))
	return err == nil
}

func (s *FileStorage) SaveEpisode(e *models.Episode) error {
	return writeJSONAtomic(s.episodePath(e.PodcastID, e.ID), e)
}

// SaveEpisodes creates the podcast's episode directory first, then writes
// each episode independently - not transactionally. A failed write does
// not stop the remaining ones; episodes written successfully stay on disk,
// and the caller gets the first write error wrapped as a save_episodes
// file-operation error. The error does not name the failed episode IDs or
// count the successful writes.
func (s *FileStorage) SaveEpisodes(podcastID models.PodcastID, episodes []*models.Episode) error {
	if err := os.MkdirAll(s.episodesDir(podcastID), 0755); err != nil {
		return errFileOperation("mkdir", s.episodesDir(podcastID), err)
	}
	var failed []models.EpisodeID
	var firstErr error
	for _, e := range episodes {
		if err := s.SaveEpisode(e); err != nil {
			failed = append(failed, e.ID)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if len(failed) > 0 {
		return errFileOperation("save_episodes", s.episodesDir(podcastID), firstErr)
	}
	return nil
}

func (s *FileStorage) LoadEpisode(podcastID models.PodcastID, id models.EpisodeID) (*models.Episode, error) {
	var e models.Episode
	path := s.episodePath(podcastID, id)
	if err := readJSON(path, &e); err != nil {
		if os.IsNotExist(err) {
			return nil, errEpisodeNotFound(string(podcastID), string(id))
		}
		return nil, err
	}
	return &e, nil
}

func (s *FileStorage) DeleteEpisode(podcastID models.PodcastID, id models.EpisodeID) error {
	path := s.episodePath(podcastID, id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errFileOperation("remove", path, err)
	}
	return nil
}

func (s *FileStorage) ListEpisodes(podcastID models.PodcastID) ([]models.EpisodeID, error) {
	entries, err := os.ReadDir(s.episodesDir(podcastID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errFileOperation("readdir", s.episodesDir(podcastID), err)
	}
	ids := make([]models.EpisodeID, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, models.EpisodeID(name[:len(name)-len(".json")]))
	}
	return ids, nil
}

func (s *FileStorage) EpisodeExists(podcastID models.PodcastID, id models.EpisodeID) bool {
	_, err := os.Stat(s.episodePath(podcastID, id))
	return err == nil
}

// Cleanup is the best-effort startup consistency pass: for every stored
// episode whose local_path is set but the file no longer exists, the
// local_path is cleared and status reverted, matching the rest of the
// on-disk model to what actually exists - independent of the
// DownloadManager's own cleanup_stuck_downloads pass, which handles the
// Downloading-status case specifically.
func (s *FileStorage) Cleanup() error {
	podcastIDs, err := s.ListPodcasts()
	if err != nil {
		return err
	}
	for _, pid := range podcastIDs {
		episodeIDs, err := s.ListEpisodes(pid)
		if err != nil {
			continue
		}
		for _, eid := range episodeIDs {
			e, err := s.LoadEpisode(pid, eid)
			if err != nil {
				continue
			}
			if e.LocalPath == "" {
				continue
			}
			if _, statErr := os.Stat(e.LocalPath); statErr != nil {
				e.LocalPath = ""
				if e.Status == models.StatusDownloaded {
					e.Status = models.StatusNew
				}
				_ = s.SaveEpisode(e)
			}
		}
	}
	return nil
}

// Backup is left as a documented stub: a future revision of the core may
// implement periodic snapshotting, but nothing currently depends on it.
func (s *FileStorage) Backup() error {
	return ErrNotImplemented
}
