package feed

import apperrors "github.com/killallgit/podcast-tui/pkg/errors"

const (
	ErrCodeNetwork    apperrors.Code = "feed.network"
	ErrCodeParse      apperrors.Code = "feed.parse_error"
	ErrCodeValidation apperrors.Code = "feed.validation_error"
	ErrCodeNoEpisodes apperrors.Code = "feed.no_episodes"
)

func errNetwork(cause error, url string) error {
	return apperrors.Wrap(cause, ErrCodeNetwork, "feed request failed").WithDetail("url", url)
}

func errParse(cause error) error {
	return apperrors.Wrap(cause, ErrCodeParse, "feed parse failed")
}

func errValidation(message string) error {
	return apperrors.New(ErrCodeValidation, message)
}

func errNoEpisodes() error {
	return apperrors.New(ErrCodeNoEpisodes, "feed contains no episodes")
}
