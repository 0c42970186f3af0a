package audio

import apperrors "github.com/killallgit/podcast-tui/pkg/errors"

const (
	ErrCodeDeviceNotFound        apperrors.Code = "audio.device_not_found"
	ErrCodeDecodingFailed        apperrors.Code = "audio.decoding_failed"
	ErrCodeSeekFailed            apperrors.Code = "audio.seek_failed"
	ErrCodeExternalPlayerMissing apperrors.Code = "audio.external_player_not_found"
	ErrCodeIO                    apperrors.Code = "audio.io"
)

func errDeviceNotFound(cause error) error {
	return apperrors.Wrap(cause, ErrCodeDeviceNotFound, "audio device not found")
}

func errDecodingFailed(cause error) error {
	return apperrors.Wrap(cause, ErrCodeDecodingFailed, "failed to decode audio source")
}

func errSeekFailed(cause error) error {
	return apperrors.Wrap(cause, ErrCodeSeekFailed, "seek failed")
}

func errExternalPlayerNotFound(name string) error {
	return apperrors.New(ErrCodeExternalPlayerMissing, "external player not found: "+name)
}

func errIO(cause error) error {
	return apperrors.Wrap(cause, ErrCodeIO, "audio I/O failed")
}
