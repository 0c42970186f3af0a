package storage

import apperrors "github.com/killallgit/podcast-tui/pkg/errors"

// Error codes for the Storage layer, per the error kinds a caller must be
// able to distinguish: a missing entity is reported distinctly from any
// I/O or serialization failure so callers can translate NotFound into a
// user message instead of a hard failure.
const (
	ErrCodePodcastNotFound    apperrors.Code = "storage.podcast_not_found"
	ErrCodeEpisodeNotFound    apperrors.Code = "storage.episode_not_found"
	ErrCodeFileOperation      apperrors.Code = "storage.file_operation"
	ErrCodeSerialization      apperrors.Code = "storage.serialization"
	ErrCodeIO                 apperrors.Code = "storage.io"
	ErrCodeInitializationFail apperrors.Code = "storage.initialization_failed"
	ErrCodeNotImplemented     apperrors.Code = "storage.not_implemented"
)

// ErrNotImplemented is returned by stubs not yet backed by a real
// implementation.
var ErrNotImplemented = apperrors.New(ErrCodeNotImplemented, "not implemented")

func errPodcastNotFound(id string) error {
	return apperrors.New(ErrCodePodcastNotFound, "podcast not found").WithDetail("podcast_id", id)
}

func errEpisodeNotFound(podcastID, episodeID string) error {
	return apperrors.New(ErrCodeEpisodeNotFound, "episode not found").
		WithDetail("podcast_id", podcastID).
		WithDetail("episode_id", episodeID)
}

func errFileOperation(op, path string, cause error) error {
	return apperrors.Wrap(cause, ErrCodeFileOperation, "file operation failed").
		WithDetail("op", op).
		WithDetail("path", path)
}

func errSerialization(cause error) error {
	return apperrors.Wrap(cause, ErrCodeSerialization, "serialization failed")
}

// IsNotFound reports whether err represents a missing podcast or episode.
func IsNotFound(err error) bool {
	code := apperrors.GetCode(err)
	return code == ErrCodePodcastNotFound || code == ErrCodeEpisodeNotFound
}
