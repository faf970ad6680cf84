package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/studiowebux/lifeweeks/internal/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	TransportHTTP      = "http"
	TransportWebSocket = "websocket"
)

// Settings configures the client itself. Wallpaper preferences live in the
// backend and are not stored here.
type Settings struct {
	Transport           string              `json:"transport" yaml:"transport" env:"LIW_TRANSPORT"`                          // http or websocket
	BackendURL          string              `json:"backendUrl" yaml:"backendUrl" env:"LIW_BACKEND_URL"`                      // base URL of the backend bridge
	TimeoutSeconds      int                 `json:"timeoutSeconds" yaml:"timeoutSeconds" env:"LIW_TIMEOUT_SECONDS"`          // 0 waits indefinitely
	NotificationSeconds int                 `json:"notificationSeconds" yaml:"notificationSeconds" env:"LIW_NOTIFY_SECONDS"` // notification auto-dismiss
	LogFile             string              `json:"logFile,omitempty" yaml:"logFile,omitempty" env:"LIW_LOG_FILE"`
	LogLevel            string              `json:"logLevel,omitempty" yaml:"logLevel,omitempty" env:"LIW_LOG_LEVEL"` // debug, info, warn, error
	HistoryEnabled      bool                `json:"historyEnabled" yaml:"historyEnabled" env:"LIW_HISTORY"`
	TLS                 types.TLSConfig     `json:"tls,omitempty" yaml:"tls,omitempty"`
	Keybinds            map[string][]string `json:"keybinds,omitempty" yaml:"keybinds,omitempty"` // action -> keys
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	return Settings{
		Transport:           TransportHTTP,
		BackendURL:          "http://127.0.0.1:7878",
		TimeoutSeconds:      0,
		NotificationSeconds: 3,
		LogLevel:            "info",
		HistoryEnabled:      true,
	}
}

// Timeout returns the per-call deadline, zero meaning none
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// NotificationTimeout returns the notification auto-dismiss interval
func (s Settings) NotificationTimeout() time.Duration {
	return time.Duration(s.NotificationSeconds) * time.Second
}

// ResolvedLogFile returns the configured log file or the default path
func (s Settings) ResolvedLogFile() string {
	if s.LogFile != "" {
		return s.LogFile
	}
	return LogFile
}

// Validate checks option values
func (s Settings) Validate() error {
	switch s.Transport {
	case TransportHTTP, TransportWebSocket:
	default:
		return fmt.Errorf("transport must be 'http' or 'websocket', got %q", s.Transport)
	}
	if s.BackendURL == "" {
		return fmt.Errorf("backendUrl is required")
	}
	if s.TimeoutSeconds < 0 {
		return fmt.Errorf("timeoutSeconds must not be negative")
	}
	return nil
}

// LoadSettings reads settings from path, then applies LIW_* environment overrides.
// A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeSettings(path, data, &settings); err != nil {
			return Settings{}, err
		}
	case os.IsNotExist(err):
	default:
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := ParseEnv(&settings); err != nil {
		return Settings{}, err
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

func decodeSettings(path string, data []byte, settings *Settings) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, settings); err != nil {
			return fmt.Errorf("failed to parse YAML settings: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), settings); err != nil {
			return fmt.Errorf("failed to parse JSON settings: %w", err)
		}
	default:
		return fmt.Errorf("unsupported settings file format: %s (use .yaml, .yml, .json or .jsonc)", ext)
	}
	return nil
}

// SaveSettings writes settings to path in the format given by its extension
func SaveSettings(settings Settings, path string) error {
	var data []byte
	var err error

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
	case ".json", ".jsonc":
		data, err = json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported settings file format: %s (use .yaml, .yml, .json or .jsonc)", ext)
	}

	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
