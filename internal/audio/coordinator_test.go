package audio

import (
	"testing"
	"time"

	"github.com/killallgit/podcast-tui/internal/events"
	"github.com/killallgit/podcast-tui/internal/models"
	"github.com/stretchr/testify/require"
)

// This test drives the coordinator's tick logic directly (rather than
// through the real ticker) by calling the unexported step methods in
// sequence, matching the teacher's style of testing worker loop bodies
// without sleeping on real timers.
func TestCoordinator_PlayThenTrackEnded(t *testing.T) {
	backend := NewMockBackend(5 * time.Second)
	router := events.NewRouter(16)
	c := NewCoordinator(backend, router, time.Hour, 1.0)

	podcastID := models.NewPodcastID()
	episodeID := models.NewEpisodeID()

	c.Send(PlayCommand{Path: "/tmp/ep.mp3", PodcastID: podcastID, EpisodeID: episodeID})
	c.drainCommands()
	c.detectTrackEnded()
	c.publishStatus()

	require.Equal(t, models.PlaybackPlaying, c.Status().State)

	started := <-router.Events()
	_, ok := started.(events.PlaybackStarted)
	require.True(t, ok)

	backend.Advance(5 * time.Second) // runs past the mock duration, backend stops itself

	c.detectTrackEnded()
	c.publishStatus()

	ended := <-router.Events()
	endedEvt, ok := ended.(events.TrackEnded)
	require.True(t, ok)
	require.Equal(t, episodeID, endedEvt.EpisodeID)
	require.Equal(t, models.PlaybackStopped, c.Status().State)
	require.Empty(t, c.Status().EpisodeID)
}

func TestCoordinator_PauseFreezesPosition_ResumeAdvances(t *testing.T) {
	backend := NewMockBackend(30 * time.Second)
	router := events.NewRouter(16)
	c := NewCoordinator(backend, router, time.Hour, 1.0)

	c.Send(PlayCommand{Path: "/tmp/ep.mp3"})
	c.drainCommands()
	<-router.Events()

	backend.Advance(2 * time.Second)
	pos1, _ := backend.Position()

	c.Send(PauseCommand{})
	c.drainCommands()

	backend.Advance(2 * time.Second) // paused: no-op
	pos2, _ := backend.Position()
	backend.Advance(2 * time.Second)
	pos3, _ := backend.Position()
	require.Equal(t, pos1, pos2)
	require.Equal(t, pos2, pos3)

	c.Send(ResumeCommand{})
	c.drainCommands()
	backend.Advance(1 * time.Second)
	pos4, _ := backend.Position()
	require.Greater(t, pos4, pos3)
}

func TestCoordinator_SetVolume_Clamped(t *testing.T) {
	backend := NewMockBackend(5 * time.Second)
	router := events.NewRouter(16)
	c := NewCoordinator(backend, router, time.Hour, 0.5)

	c.Send(SetVolumeCommand{Volume: 5.0})
	c.drainCommands()
	c.publishStatus()
	require.Equal(t, 1.0, c.Status().Volume)

	c.Send(SetVolumeCommand{Volume: -5.0})
	c.drainCommands()
	c.publishStatus()
	require.Equal(t, 0.0, c.Status().Volume)
}
