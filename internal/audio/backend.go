package audio

import "time"

// Backend is the narrow capability boundary every playback backend
// implements - native, external-player, or mock-for-testing. New
// backends (e.g. a future streaming backend) can be added without
// touching the coordinator, which only ever calls through this interface.
type Backend interface {
	// Play stops any current playback, loads path, and starts it.
	Play(path string) error
	// Pause is a no-op when not playing.
	Pause()
	// Resume is a no-op when not paused.
	Resume()
	// Stop clears any pending decoder state synchronously; IsStopped
	// must return true immediately after Stop returns.
	Stop()
	// Seek moves to position; returns an error if the backend cannot seek.
	Seek(position time.Duration) error
	// SetVolume sets playback volume. v arrives already clamped to [0,1].
	SetVolume(v float64)

	Position() (time.Duration, bool)
	Duration() (time.Duration, bool)

	IsPlaying() bool
	IsPaused() bool
	IsStopped() bool
}
