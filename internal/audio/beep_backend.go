package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// NativeBackend plays audio directly through the host's output device via
// github.com/gopxl/beep/v2, the direct Go analogue of the original
// rodio-based native backend: nothing in the retrieved example pack
// offers audio playback, so this dependency is named here rather than
// grounded on any teacher file.
type NativeBackend struct {
	mu         sync.Mutex
	file       *os.File
	streamer   beep.StreamSeekCloser
	ctrl       *beep.Ctrl
	volume     *effects.Volume
	format     beep.Format
	speakerSet bool

	stopped int32 // atomic bool, set by the speaker.Play completion callback
}

// NewNativeBackend constructs a backend with no track loaded.
func NewNativeBackend() *NativeBackend {
	b := &NativeBackend{}
	atomic.StoreInt32(&b.stopped, 1)
	return b
}

func (b *NativeBackend) Play(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closeCurrentLocked()

	f, err := os.Open(path)
	if err != nil {
		return errIO(err)
	}

	streamer, format, err := decode(f, path)
	if err != nil {
		f.Close()
		return errDecodingFailed(err)
	}

	if !b.speakerSet {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			f.Close()
			return errDeviceNotFound(err)
		}
		b.speakerSet = true
	}

	ctrl := &beep.Ctrl{Streamer: streamer, Paused: false}
	volume := &effects.Volume{Streamer: ctrl, Base: 2, Volume: 0, Silent: false}

	b.file = f
	b.streamer = streamer
	b.ctrl = ctrl
	b.volume = volume
	b.format = format
	atomic.StoreInt32(&b.stopped, 0)

	speaker.Play(beep.Seq(volume, beep.Callback(func() {
		atomic.StoreInt32(&b.stopped, 1)
	})))
	return nil
}

func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	default:
		return mp3.Decode(f)
	}
}

func (b *NativeBackend) closeCurrentLocked() {
	if b.streamer != nil {
		speaker.Clear()
		b.streamer.Close()
		b.streamer = nil
		b.ctrl = nil
		b.volume = nil
	}
	if b.file != nil {
		b.file.Close()
		b.file = nil
	}
	atomic.StoreInt32(&b.stopped, 1)
}

func (b *NativeBackend) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctrl == nil || atomic.LoadInt32(&b.stopped) == 1 {
		return
	}
	speaker.Lock()
	b.ctrl.Paused = true
	speaker.Unlock()
}

func (b *NativeBackend) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctrl == nil {
		return
	}
	speaker.Lock()
	b.ctrl.Paused = false
	speaker.Unlock()
}

func (b *NativeBackend) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeCurrentLocked()
}

func (b *NativeBackend) Seek(position time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil {
		return errSeekFailed(nil)
	}
	sample := b.format.SampleRate.N(position)
	speaker.Lock()
	err := b.streamer.Seek(sample)
	speaker.Unlock()
	if err != nil {
		return errSeekFailed(err)
	}
	return nil
}

func (b *NativeBackend) SetVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.volume == nil {
		return
	}
	speaker.Lock()
	b.volume.Silent = v <= 0
	if v > 0 {
		b.volume.Volume = volumeToDecibels(v)
	}
	speaker.Unlock()
}

// volumeToDecibels maps linear [0,1] volume onto beep's logarithmic
// Volume field (base^Volume multiplier, base defaults to 2).
func volumeToDecibels(v float64) float64 {
	return math.Log2(v)
}

func (b *NativeBackend) Position() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil {
		return 0, false
	}
	speaker.Lock()
	pos := b.streamer.Position()
	speaker.Unlock()
	return b.format.SampleRate.D(pos), true
}

func (b *NativeBackend) Duration() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil {
		return 0, false
	}
	speaker.Lock()
	length := b.streamer.Len()
	speaker.Unlock()
	return b.format.SampleRate.D(length), true
}

func (b *NativeBackend) IsPlaying() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctrl != nil && !b.ctrl.Paused && atomic.LoadInt32(&b.stopped) == 0
}

func (b *NativeBackend) IsPaused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctrl != nil && b.ctrl.Paused && atomic.LoadInt32(&b.stopped) == 0
}

func (b *NativeBackend) IsStopped() bool {
	return atomic.LoadInt32(&b.stopped) == 1
}
