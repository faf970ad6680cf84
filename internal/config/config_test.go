package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitializeAt_SeedsSettings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	if err := InitializeAt(dir); err != nil {
		t.Fatalf("InitializeAt: %v", err)
	}

	if _, err := os.Stat(SettingsFile); err != nil {
		t.Fatalf("settings file not created: %v", err)
	}
	if filepath.Dir(DatabasePath) != dir || filepath.Dir(LogFile) != dir {
		t.Errorf("paths not under %s: %s %s", dir, DatabasePath, LogFile)
	}

	s, err := LoadSettings(SettingsFile)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Transport != TransportHTTP || s.NotificationSeconds != 3 || !s.HistoryEnabled {
		t.Errorf("seeded settings = %+v", s)
	}
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.BackendURL != DefaultSettings().BackendURL {
		t.Errorf("backendUrl = %q", s.BackendURL)
	}
	if s.Timeout() != 0 {
		t.Errorf("default timeout = %v, want none", s.Timeout())
	}
}

func TestLoadSettings_JSONCWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.jsonc")
	content := `{
  // talk to the desktop bridge over websocket
  "transport": "websocket",
  "backendUrl": "ws://localhost:9000/ws",
  "timeoutSeconds": 10, /* seconds */
  "keybinds": {"generate": ["g", "enter",],},
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Transport != TransportWebSocket || s.BackendURL != "ws://localhost:9000/ws" {
		t.Errorf("settings = %+v", s)
	}
	if s.Timeout() != 10*time.Second {
		t.Errorf("timeout = %v", s.Timeout())
	}
	if len(s.Keybinds["generate"]) != 2 {
		t.Errorf("keybinds = %v", s.Keybinds)
	}
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := SaveSettings(DefaultSettings(), path); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LIW_BACKEND_URL", "http://example.test:1234")
	t.Setenv("LIW_NOTIFY_SECONDS", "5")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.BackendURL != "http://example.test:1234" {
		t.Errorf("backendUrl = %q", s.BackendURL)
	}
	if s.NotificationTimeout() != 5*time.Second {
		t.Errorf("notification timeout = %v", s.NotificationTimeout())
	}
}

func TestLoadSettings_InvalidTransport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("transport: carrier-pigeon\nbackendUrl: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestSaveSettings_UnsupportedExtension(t *testing.T) {
	if err := SaveSettings(DefaultSettings(), filepath.Join(t.TempDir(), "settings.toml")); err == nil {
		t.Error("expected error for .toml")
	}
}
