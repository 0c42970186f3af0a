package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/killallgit/podcast-tui/internal/audio"
	"github.com/killallgit/podcast-tui/internal/download"
	"github.com/killallgit/podcast-tui/internal/events"
	"github.com/killallgit/podcast-tui/internal/feed"
	"github.com/killallgit/podcast-tui/internal/storage"
	"github.com/killallgit/podcast-tui/internal/subscription"
	"github.com/killallgit/podcast-tui/internal/tasks"
	"github.com/killallgit/podcast-tui/internal/tui"
	"github.com/killallgit/podcast-tui/internal/ui"
	"github.com/killallgit/podcast-tui/pkg/config"
)

// runCmd starts the interactive terminal client.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive podcast client",
	Long: `Start podcast-tui's buffer-oriented terminal interface.

Loads the configured storage directory, starts the audio coordinator on
its own OS thread, and recovers any episode downloads interrupted by a
previous crash before handing control to the terminal.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("error initializing configuration: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	store := storage.NewFileStorage(cfg.Storage.DataDir)
	if err := store.Initialize(); err != nil {
		return fmt.Errorf("error initializing storage at %s: %w", cfg.Storage.DataDir, err)
	}
	if cfg.Storage.CleanupOnStartup {
		if err := store.Cleanup(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: storage cleanup failed: %v\n", err)
		}
	}

	// SelectBackend treats a non-empty external player as an override that
	// wins regardless of preferNative, so only forward it when the config
	// actually asks for the external backend.
	externalPlayer := ""
	if cfg.Audio.Backend == "external" {
		externalPlayer = cfg.Audio.ExternalPlayer
	}
	backend, err := audio.SelectBackend(cfg.Audio.Backend == "native", externalPlayer)
	if err != nil {
		return fmt.Errorf("error selecting audio backend: %w", err)
	}

	router := events.NewRouter(256)
	pool := tasks.NewPool(cfg.Downloads.MaxConcurrent + 2)
	defer pool.Shutdown()

	coordinator := audio.NewCoordinator(backend, router, cfg.Audio.PollInterval, cfg.Audio.DefaultVolume)
	coordinator.Start()
	defer coordinator.Stop()

	parser := feed.NewParser(cfg.Downloads.RateLimitPerMin)
	subs := subscription.NewManager(store, parser, router)
	dl := download.NewManager(store, cfg.Downloads.Dir, nil, cfg.Downloads.UserAgent, cfg.Downloads.Timeout)

	// Recover from a crash mid-download: any episode left in StatusDownloading
	// with no file on disk reverts to StatusNew so it can be retried.
	if err := dl.CleanupStuckDownloads(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not clean up stuck downloads: %v\n", err)
	}

	app := ui.NewApp(router, pool, subs, dl, coordinator, 50, cfg.Audio.AutoPlayNext)

	program := tea.NewProgram(tui.New(app, router), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
