package audio

import (
	"runtime"
	"sync"
	"time"

	"github.com/killallgit/podcast-tui/internal/events"
	"github.com/killallgit/podcast-tui/internal/models"
)

// Coordinator owns one Backend on a dedicated OS thread - never on the
// async task executor, so audio-driver callbacks can never interact with
// the work-stealing scheduler. The loop body runs every PollInterval
// (default ~250ms): drain pending commands, detect natural track-end,
// republish status, sleep. Grounded on the teacher's Worker ticker +
// stopChan + WaitGroup shape (internal/services/workers/worker.go),
// adapted to run pinned to one OS thread via runtime.LockOSThread instead
// of being scheduled as a goroutine among many.
type Coordinator struct {
	backend      Backend
	router       *events.Router
	pollInterval time.Duration

	cmdCh  chan Command
	status *StatusWatch

	stopCh chan struct{}
	wg     sync.WaitGroup

	volume float64

	trackedEpisode models.EpisodeID
	trackedPodcast models.PodcastID
	wasPlayingLast bool
}

// NewCoordinator builds a Coordinator around backend. It does not start
// the loop; call Start for that.
func NewCoordinator(backend Backend, router *events.Router, pollInterval time.Duration, initialVolume float64) *Coordinator {
	if pollInterval <= 0 {
		pollInterval = 250 * time.Millisecond
	}
	volume := models.ClampVolume(initialVolume)
	c := &Coordinator{
		backend:      backend,
		router:       router,
		pollInterval: pollInterval,
		cmdCh:        make(chan Command, 256),
		status:       newStatusWatch(models.Stopped(volume)),
		stopCh:       make(chan struct{}),
		volume:       volume,
	}
	backend.SetVolume(volume)
	return c
}

// Send enqueues cmd without blocking the caller, consistent with the
// "unbounded command channel, producer never blocks" contract - a full
// buffer spills the send into its own goroutine rather than blocking or
// dropping the command.
func (c *Coordinator) Send(cmd Command) {
	select {
	case c.cmdCh <- cmd:
	default:
		go func() { c.cmdCh <- cmd }()
	}
}

// Status returns the latest published PlaybackStatus.
func (c *Coordinator) Status() models.PlaybackStatus {
	return c.status.Latest()
}

// Start launches the dedicated OS thread and returns immediately. The
// thread exits cleanly when Stop is called - the Go analogue of "exits
// when the command channel's sender is dropped".
func (c *Coordinator) Start() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		c.run()
	}()
}

// Stop signals the audio thread to exit and waits for it to do so.
func (c *Coordinator) Stop() {
	close(c.stopCh)
	c.wg.Wait()
}

func (c *Coordinator) run() {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			c.backend.Stop()
			return
		case <-ticker.C:
			c.drainCommands()
			c.detectTrackEnded()
			c.publishStatus()
		}
	}
}

func (c *Coordinator) drainCommands() {
	for {
		select {
		case cmd := <-c.cmdCh:
			c.apply(cmd)
		default:
			return
		}
	}
}

func (c *Coordinator) apply(cmd Command) {
	switch v := cmd.(type) {
	case PlayCommand:
		c.backend.Stop()
		if err := c.backend.Play(v.Path); err != nil {
			c.trackedEpisode = ""
			c.trackedPodcast = ""
			c.router.Send(events.PlaybackError{Error: err.Error()})
			return
		}
		if v.StartAt > 0 {
			_ = c.backend.Seek(v.StartAt)
		}
		c.trackedEpisode = v.EpisodeID
		c.trackedPodcast = v.PodcastID
		c.wasPlayingLast = true
		c.router.Send(events.PlaybackStarted{PodcastID: v.PodcastID, EpisodeID: v.EpisodeID})
	case PauseCommand:
		c.backend.Pause()
	case ResumeCommand:
		c.backend.Resume()
	case TogglePlayPauseCommand:
		if c.backend.IsPlaying() {
			c.backend.Pause()
		} else if c.backend.IsPaused() {
			c.backend.Resume()
		}
	case StopCommand:
		pos, hasPos := c.backend.Position()
		episodeID, podcastID := c.trackedEpisode, c.trackedPodcast
		c.backend.Stop()
		c.trackedEpisode = ""
		c.trackedPodcast = ""
		stopped := events.PlaybackStopped{PodcastID: podcastID, EpisodeID: episodeID}
		if hasPos {
			stopped.Position = pos
		}
		c.router.Send(stopped)
	case SeekForwardCommand:
		c.seekRelative(v.Delta)
	case SeekBackwardCommand:
		c.seekRelative(-v.Delta)
	case SetVolumeCommand:
		c.volume = models.ClampVolume(v.Volume)
		c.backend.SetVolume(c.volume)
	case VolumeUpCommand:
		c.volume = models.ClampVolume(c.volume + v.Step)
		c.backend.SetVolume(c.volume)
	case VolumeDownCommand:
		c.volume = models.ClampVolume(c.volume - v.Step)
		c.backend.SetVolume(c.volume)
	}
}

func (c *Coordinator) seekRelative(delta time.Duration) {
	pos, ok := c.backend.Position()
	if !ok {
		return
	}
	target := pos + delta
	if target < 0 {
		target = 0
	}
	_ = c.backend.Seek(target)
}

// detectTrackEnded implements the "track just ended" rule from the
// coordinator's tick: was playing last tick, and is now neither playing
// nor paused.
func (c *Coordinator) detectTrackEnded() {
	playingNow := c.backend.IsPlaying()
	pausedNow := c.backend.IsPaused()

	if c.wasPlayingLast && !playingNow && !pausedNow && c.trackedEpisode != "" {
		c.router.Send(events.TrackEnded{PodcastID: c.trackedPodcast, EpisodeID: c.trackedEpisode})
		c.trackedEpisode = ""
		c.trackedPodcast = ""
	}
	c.wasPlayingLast = playingNow
}

func (c *Coordinator) publishStatus() {
	status := models.PlaybackStatus{Volume: c.volume}

	switch {
	case c.backend.IsPlaying():
		status.State = models.PlaybackPlaying
	case c.backend.IsPaused():
		status.State = models.PlaybackPaused
	default:
		status.State = models.PlaybackStopped
	}

	if status.State != models.PlaybackStopped {
		status.EpisodeID = c.trackedEpisode
		status.PodcastID = c.trackedPodcast
		if pos, ok := c.backend.Position(); ok {
			status.Position = pos
		}
		if dur, ok := c.backend.Duration(); ok {
			status.Duration = dur
		}
	}

	c.status.publish(status)
}
