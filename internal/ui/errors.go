package ui

import apperrors "github.com/killallgit/podcast-tui/pkg/errors"

const (
	ErrCodeBufferNotFound apperrors.Code = "ui.buffer_not_found"
	ErrCodeCannotClose    apperrors.Code = "ui.cannot_close"
)

func errBufferNotFound(id string) error {
	return apperrors.New(ErrCodeBufferNotFound, "buffer not found").WithDetail("buffer_id", id)
}

func errCannotClose(id string) error {
	return apperrors.New(ErrCodeCannotClose, "buffer cannot be closed").WithDetail("buffer_id", id)
}
