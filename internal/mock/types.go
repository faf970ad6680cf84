package mock

import (
	"time"

	"github.com/studiowebux/lifeweeks/internal/types"
)

// Config represents the mock backend configuration
type Config struct {
	Port     int                `json:"port" yaml:"port"`                             // Server port (default: 7878)
	Host     string             `json:"host" yaml:"host"`                             // Server host (default: 127.0.0.1)
	Logging  bool               `json:"logging" yaml:"logging"`                       // Record invoked commands
	State    *types.ConfigState `json:"state,omitempty" yaml:"state,omitempty"`       // Initial backend config (default: built-in defaults)
	Preview  *PreviewScript     `json:"preview,omitempty" yaml:"preview,omitempty"`   // Stats returned by generate_preview
	Commands map[string]Command `json:"commands,omitempty" yaml:"commands,omitempty"` // Per-command behaviour keyed by command name
}

// PreviewScript fixes the numbers generate_preview reports
type PreviewScript struct {
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle       string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	ElapsedWeeks   int    `json:"elapsedWeeks" yaml:"elapsedWeeks"`
	RemainingWeeks int    `json:"remainingWeeks" yaml:"remainingWeeks"`
}

// Command overrides how a single command behaves
type Command struct {
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`             // Fail with this message
	Delay       int    `json:"delay,omitempty" yaml:"delay,omitempty"`             // Response delay in milliseconds
	Description string `json:"description,omitempty" yaml:"description,omitempty"` // Documentation only
}

// CallLog represents one invoked command
type CallLog struct {
	Timestamp time.Time     `json:"timestamp"`
	Transport string        `json:"transport"`
	Command   string        `json:"command"`
	Args      string        `json:"args"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}
