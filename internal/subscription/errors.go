package subscription

import apperrors "github.com/killallgit/podcast-tui/pkg/errors"

const (
	ErrCodeAlreadySubscribed apperrors.Code = "subscription.already_subscribed"
	ErrCodeNotSubscribed     apperrors.Code = "subscription.not_subscribed"
	ErrCodeExportFailed      apperrors.Code = "subscription.export_failed"
)

func errAlreadySubscribed(feedURL string) error {
	return apperrors.New(ErrCodeAlreadySubscribed, "already subscribed to feed").
		WithDetail("feed_url", feedURL)
}

func errNotSubscribed(id string) error {
	return apperrors.New(ErrCodeNotSubscribed, "not subscribed to podcast").
		WithDetail("podcast_id", id)
}

func errExportFailed(cause error) error {
	return apperrors.Wrap(cause, ErrCodeExportFailed, "failed to export OPML")
}
