package download

import apperrors "github.com/killallgit/podcast-tui/pkg/errors"

const (
	ErrCodeHTTP        apperrors.Code = "download.http"
	ErrCodeIO          apperrors.Code = "download.io"
	ErrCodeStorage     apperrors.Code = "download.storage"
	ErrCodeInvalidPath apperrors.Code = "download.invalid_path"
)

func errHTTP(cause error) error {
	return apperrors.Wrap(cause, ErrCodeHTTP, "download request failed")
}

func errIO(cause error) error {
	return apperrors.Wrap(cause, ErrCodeIO, "download I/O failed")
}

func errStorage(cause error, message string) error {
	return apperrors.Wrap(cause, ErrCodeStorage, message)
}

func errInvalidPath() error {
	return apperrors.New(ErrCodeInvalidPath, "episode has no resolvable audio URL")
}
