package types

import (
	"encoding/base64"
	"fmt"
	"time"
)

// GenerationRequest is sent to generate_preview and set_wallpaper_cmd.
// Absent optional fields tell the backend to use its persisted defaults.
type GenerationRequest struct {
	Mode     Mode             `json:"mode"`
	DOB      Optional[string] `json:"dob"`      // YYYY-MM-DD
	Lifespan Optional[int]    `json:"lifespan"` // years
	Months   Optional[int]    `json:"months"`
	Theme    Theme            `json:"theme"`
	Width    Optional[int]    `json:"width"`
	Height   Optional[int]    `json:"height"`
}

// PreviewResponse is returned by generate_preview
type PreviewResponse struct {
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	TotalWeeks     int    `json:"total_weeks"`
	ElapsedWeeks   int    `json:"elapsed_weeks"`
	RemainingWeeks int    `json:"remaining_weeks"`
	Columns        int    `json:"columns,omitempty"`
	Rows           int    `json:"rows,omitempty"`
	ImageBase64    string `json:"image_base64"` // PNG
}

// ImageData decodes the base64 image payload
func (r *PreviewResponse) ImageData() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode preview image: %w", err)
	}
	return data, nil
}

// ConfigState is the backend-owned configuration returned by get_config
type ConfigState struct {
	DOB               *string `json:"dob,omitempty" yaml:"dob,omitempty"`
	LifespanYears     int     `json:"lifespan_years" yaml:"lifespan_years"`
	Theme             Theme   `json:"theme" yaml:"theme"`
	ScreenWidth       int     `json:"screen_width" yaml:"screen_width"`
	ScreenHeight      int     `json:"screen_height" yaml:"screen_height"`
	DefaultMode       Mode    `json:"default_mode" yaml:"default_mode"`
	NextMonths        int     `json:"next_months" yaml:"next_months"`
	ScheduleInstalled bool    `json:"schedule_installed" yaml:"schedule_installed"`
}

const (
	DefaultLifespanYears = 80
	DefaultScreenWidth   = 1920
	DefaultScreenHeight  = 1080
	DefaultNextMonths    = 6
)

// DefaultConfigState returns the built-in defaults used when get_config fails
func DefaultConfigState() ConfigState {
	return ConfigState{
		LifespanYears: DefaultLifespanYears,
		Theme:         ThemeDark,
		ScreenWidth:   DefaultScreenWidth,
		ScreenHeight:  DefaultScreenHeight,
		DefaultMode:   ModeYearEnd,
		NextMonths:    DefaultNextMonths,
	}
}

// SaveConfigArgs are the flat arguments of save_config.
// Every field is nullable; null leaves the stored value unchanged.
type SaveConfigArgs struct {
	DOB         Optional[string] `json:"dob"` // empty string clears the stored date
	Lifespan    Optional[int]    `json:"lifespan"`
	Theme       Optional[Theme]  `json:"theme"`
	Width       Optional[int]    `json:"width"`
	Height      Optional[int]    `json:"height"`
	DefaultMode Optional[Mode]   `json:"defaultMode"`
	Months      Optional[int]    `json:"months"`
}

// Action names a user-triggered backend operation
type Action string

const (
	ActionPreview  Action = "preview"
	ActionApply    Action = "apply"
	ActionSchedule Action = "schedule"
	ActionPersist  Action = "persist"
)

var AllActions = []Action{ActionPreview, ActionApply, ActionSchedule, ActionPersist}

// ActivityEntry is one recorded action outcome
type ActivityEntry struct {
	ID        int64         `json:"id" yaml:"id"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
	Action    Action        `json:"action" yaml:"action"`
	Mode      Mode          `json:"mode,omitempty" yaml:"mode,omitempty"`
	Theme     Theme         `json:"theme,omitempty" yaml:"theme,omitempty"`
	Success   bool          `json:"success" yaml:"success"`
	Message   string        `json:"message,omitempty" yaml:"message,omitempty"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// TLSConfig holds optional TLS settings for the HTTP and WebSocket gateways
type TLSConfig struct {
	CertFile           string `json:"certFile,omitempty" yaml:"certFile,omitempty"`
	KeyFile            string `json:"keyFile,omitempty" yaml:"keyFile,omitempty"`
	CAFile             string `json:"caFile,omitempty" yaml:"caFile,omitempty"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty" yaml:"insecureSkipVerify,omitempty"`
}
