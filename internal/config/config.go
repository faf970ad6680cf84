package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.lifeweeks)
	ConfigDir string

	// SettingsFile is the client settings file
	SettingsFile string

	// DatabasePath is the SQLite database file for the activity log
	DatabasePath string

	// LogFile is where structured logs are written while the TUI owns the terminal
	LogFile string

	// PreviewFile is where the latest preview image is written
	PreviewFile string
)

// localSettingsFiles are checked in the working directory before the global file
var localSettingsFiles = []string{".lifeweeks.yaml", ".lifeweeks.yml", ".lifeweeks.jsonc", ".lifeweeks.json"}

// Initialize sets up the configuration directory and files
// It creates ~/.lifeweeks/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".lifeweeks"))
}

// InitializeAt sets the global paths under dir and seeds the settings file
func InitializeAt(dir string) error {
	ConfigDir = dir
	SettingsFile = filepath.Join(ConfigDir, "settings.yaml")
	DatabasePath = filepath.Join(ConfigDir, "lifeweeks.db")
	LogFile = filepath.Join(ConfigDir, "lifeweeks.log")
	PreviewFile = filepath.Join(ConfigDir, "preview.png")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := SaveSettings(DefaultSettings(), SettingsFile); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// LocalSettingsExists checks if there's a settings file in the working directory
func LocalSettingsExists() bool {
	for _, name := range localSettingsFiles {
		if _, err := os.Stat(name); err == nil {
			return true
		}
	}
	return false
}

// GetSettingsFilePath returns the settings file path (local or global)
func GetSettingsFilePath() string {
	for _, name := range localSettingsFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return SettingsFile
}
