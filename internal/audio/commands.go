package audio

import (
	"time"

	"github.com/killallgit/podcast-tui/internal/models"
)

// Command is a fire-and-forget instruction sent to the coordinator's
// unbounded command channel. Producers never block on send.
type Command interface{ isCommand() }

type PlayCommand struct {
	Path      string
	EpisodeID models.EpisodeID
	PodcastID models.PodcastID
	// StartAt seeks to this position right after playback starts, so a
	// previously paused/stopped episode resumes where it left off
	// instead of restarting from zero. Zero means start from the top.
	StartAt time.Duration
}

type PauseCommand struct{}
type ResumeCommand struct{}
type TogglePlayPauseCommand struct{}
type StopCommand struct{}

type SeekForwardCommand struct{ Delta time.Duration }
type SeekBackwardCommand struct{ Delta time.Duration }

type SetVolumeCommand struct{ Volume float64 }
type VolumeUpCommand struct{ Step float64 }
type VolumeDownCommand struct{ Step float64 }

func (PlayCommand) isCommand()            {}
func (PauseCommand) isCommand()           {}
func (ResumeCommand) isCommand()          {}
func (TogglePlayPauseCommand) isCommand() {}
func (StopCommand) isCommand()            {}
func (SeekForwardCommand) isCommand()     {}
func (SeekBackwardCommand) isCommand()    {}
func (SetVolumeCommand) isCommand()       {}
func (VolumeUpCommand) isCommand()        {}
func (VolumeDownCommand) isCommand()      {}
