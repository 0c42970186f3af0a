package config

import (
	"os"
	"sync"
	"testing"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		cleanup func()
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings.yaml",
			setup: func() {
				once = sync.Once{}
				initErr = nil
				_ = os.Mkdir("config", 0755)
				content := `
storage:
  data_dir: "./testdata"
audio:
  backend: "external"
`
				_ = os.WriteFile("./config/settings.yaml", []byte(content), 0644)
			},
			cleanup: func() {
				_ = os.RemoveAll("config")
			},
			wantErr: false,
			check: func(t *testing.T) {
				if GetString("storage.data_dir") != "./testdata" {
					t.Errorf("Expected storage.data_dir to be ./testdata, got %s", GetString("storage.data_dir"))
				}
				if GetString("audio.backend") != "external" {
					t.Errorf("Expected audio.backend to be external, got %s", GetString("audio.backend"))
				}
			},
		},
		{
			name: "environment variable override",
			setup: func() {
				once = sync.Once{}
				initErr = nil
				_ = os.Mkdir("config", 0755)
				content := `
audio:
  default_volume: 0.5
`
				_ = os.WriteFile("./config/settings.yaml", []byte(content), 0644)
				os.Setenv("PODCASTTUI_AUDIO_DEFAULT_VOLUME", "0.2")
			},
			cleanup: func() {
				_ = os.RemoveAll("config")
				os.Unsetenv("PODCASTTUI_AUDIO_DEFAULT_VOLUME")
			},
			wantErr: false,
			check: func(t *testing.T) {
				if GetString("audio.default_volume") != "0.2" {
					t.Errorf("Expected audio.default_volume to be overridden to 0.2, got %s", GetString("audio.default_volume"))
				}
			},
		},
		{
			name: "missing config file falls back to defaults",
			setup: func() {
				once = sync.Once{}
				initErr = nil
			},
			cleanup: func() {},
			wantErr: false,
			check: func(t *testing.T) {
				if GetString("audio.backend") != "native" {
					t.Errorf("Expected default audio.backend to be native, got %s", GetString("audio.backend"))
				}
				if GetInt("ui.minibuffer_history") != 100 {
					t.Errorf("Expected default ui.minibuffer_history to be 100, got %d", GetInt("ui.minibuffer_history"))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.cleanup()

			err := Init()
			if (err != nil) != tt.wantErr {
				t.Errorf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.check != nil && err == nil {
				tt.check(t)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "valid config",
			config: &Config{
				Storage: StorageConfig{DataDir: "./data"},
				Audio:   AudioConfig{DefaultVolume: 0.8},
			},
			wantErr: false,
		},
		{
			name: "empty data dir is rejected",
			config: &Config{
				Storage: StorageConfig{DataDir: ""},
			},
			wantErr: true,
		},
		{
			name: "out-of-range volume is clamped, not rejected",
			config: &Config{
				Storage: StorageConfig{DataDir: "./data"},
				Audio:   AudioConfig{DefaultVolume: 5.0},
			},
			wantErr: false,
			check: func(t *testing.T, c *Config) {
				if c.Audio.DefaultVolume != 1.0 {
					t.Errorf("expected volume clamped to 1.0, got %v", c.Audio.DefaultVolume)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, tt.config)
			}
		})
	}
}
