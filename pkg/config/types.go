package config

import "time"

// Config represents the complete application configuration.
type Config struct {
	Audio     AudioConfig     `mapstructure:"audio"`
	Downloads DownloadsConfig `mapstructure:"downloads"`
	Storage   StorageConfig   `mapstructure:"storage"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AudioConfig contains playback backend and coordinator settings.
type AudioConfig struct {
	Backend        string        `mapstructure:"backend"`         // "native" or "external"
	ExternalPlayer string        `mapstructure:"external_player"`  // binary name, e.g. "mpv"
	PollInterval   time.Duration `mapstructure:"poll_interval"`    // audio coordinator tick
	DefaultVolume  float64       `mapstructure:"default_volume"`   // 0.0-1.0
	SeekStepSecs   int           `mapstructure:"seek_step_secs"`
	AutoPlayNext   bool          `mapstructure:"auto_play_next"`
}

// DownloadsConfig contains download manager settings.
type DownloadsConfig struct {
	Dir               string        `mapstructure:"dir"`
	MaxConcurrent     int           `mapstructure:"max_concurrent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxBytes          int64         `mapstructure:"max_bytes"`
	UserAgent         string        `mapstructure:"user_agent"`
	RateLimitPerMin   int           `mapstructure:"rate_limit_per_min"`
	CleanupStuckAfter time.Duration `mapstructure:"cleanup_stuck_after"`
}

// StorageConfig contains on-disk data layout settings.
type StorageConfig struct {
	DataDir          string        `mapstructure:"data_dir"`
	BackupDir        string        `mapstructure:"backup_dir"`
	CleanupOnStartup bool          `mapstructure:"cleanup_on_startup"`
	FeedRefreshEvery time.Duration `mapstructure:"feed_refresh_every"`
}

// UIConfig contains buffer/minibuffer/key settings.
type UIConfig struct {
	Theme               string `mapstructure:"theme"`
	MinibufferHistory   int    `mapstructure:"minibuffer_history"`
	DefaultBuffer       string `mapstructure:"default_buffer"`
	ShowKeyHints        bool   `mapstructure:"show_key_hints"`
	ConfirmDestructive   bool  `mapstructure:"confirm_destructive"`
}

// LoggingConfig contains ambient logging settings, carried from the teacher.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}
