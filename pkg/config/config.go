package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system. This should be called once
// at application startup; later calls are no-ops (see sync.Once).
func Init() error {
	once.Do(func() {
		setDefaults()

		viper.SetEnvPrefix("PODCASTTUI")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		if p := os.Getenv("PODCASTTUI_CONFIG_PATH"); p != "" {
			configPath = filepath.Clean(p)
		}
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
			// Config file doesn't exist, which is fine - defaults and env vars apply.
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// Load reads configuration from disk and returns the resolved struct.
func Load() (*Config, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return GetConfig()
}

// GetConfig returns the current configuration as a struct. Because
// setDefaults runs before any file is read, fields absent from an older
// on-disk config.json/settings.yaml still resolve to their defaults here -
// this is what makes config loading forward-compatible across releases.
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

func Get(key string) any              { return viper.Get(key) }
func GetString(key string) string     { return viper.GetString(key) }
func GetInt(key string) int           { return viper.GetInt(key) }
func GetBool(key string) bool         { return viper.GetBool(key) }
func GetDuration(key string) time.Duration { return viper.GetDuration(key) }

// validate checks and auto-corrects viper-resolved values before the
// struct is unmarshaled.
func validate() error {
	if v := viper.GetFloat64("audio.default_volume"); v < 0 || v > 1 {
		viper.Set("audio.default_volume", clampVolume(v))
	}

	if viper.GetInt("downloads.max_concurrent") <= 0 {
		viper.Set("downloads.max_concurrent", 1)
	}

	if viper.GetInt("ui.minibuffer_history") <= 0 {
		viper.Set("ui.minibuffer_history", 100)
	}

	dataDir := viper.GetString("storage.data_dir")
	if dataDir == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}

	return nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Validate validates a Config struct directly (for testing, bypassing viper).
func (c *Config) Validate() error {
	if c.Audio.DefaultVolume < 0 || c.Audio.DefaultVolume > 1 {
		c.Audio.DefaultVolume = clampVolume(c.Audio.DefaultVolume)
	}
	if c.Downloads.MaxConcurrent <= 0 {
		c.Downloads.MaxConcurrent = 1
	}
	if c.UI.MinibufferHistory <= 0 {
		c.UI.MinibufferHistory = 100
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}
	return nil
}

// setDefaults populates every known config key so an absent or partial
// config.json/settings.yaml still produces a fully-usable Config. Over-
// provisioned the way the teacher's config defaults are: keys here exist
// for options a future revision of the core may add, not just the ones
// wired today.
func setDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	defaultDataDir := filepath.Join(home, ".local", "share", "podcast-tui")
	defaultDownloadDir := filepath.Join(defaultDataDir, "downloads")

	// Audio defaults
	viper.SetDefault("audio.backend", "native")
	viper.SetDefault("audio.external_player", "mpv")
	viper.SetDefault("audio.poll_interval", 250*time.Millisecond)
	viper.SetDefault("audio.default_volume", 1.0)
	viper.SetDefault("audio.seek_step_secs", 15)
	viper.SetDefault("audio.auto_play_next", false)

	// Downloads defaults
	viper.SetDefault("downloads.dir", defaultDownloadDir)
	viper.SetDefault("downloads.max_concurrent", 1)
	viper.SetDefault("downloads.timeout", 5*time.Minute)
	viper.SetDefault("downloads.max_bytes", int64(500*1024*1024))
	viper.SetDefault("downloads.user_agent", "podcast-tui/1.0")
	viper.SetDefault("downloads.rate_limit_per_min", 60)
	viper.SetDefault("downloads.cleanup_stuck_after", 30*time.Minute)

	// Storage defaults
	viper.SetDefault("storage.data_dir", defaultDataDir)
	viper.SetDefault("storage.backup_dir", filepath.Join(defaultDataDir, "backups"))
	viper.SetDefault("storage.cleanup_on_startup", true)
	viper.SetDefault("storage.feed_refresh_every", 30*time.Minute)

	// UI defaults
	viper.SetDefault("ui.theme", "default")
	viper.SetDefault("ui.minibuffer_history", 100)
	viper.SetDefault("ui.default_buffer", "podcast-list")
	viper.SetDefault("ui.show_key_hints", true)
	viper.SetDefault("ui.confirm_destructive", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output", "stderr")
	viper.SetDefault("logging.file_path", filepath.Join(defaultDataDir, "podcast-tui.log"))
}
