package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studiowebux/lifeweeks/internal/types"
)

// Backend command names. These must match the native backend exactly.
const (
	CmdGetConfig         = "get_config"
	CmdGeneratePreview   = "generate_preview"
	CmdSetWallpaper      = "set_wallpaper_cmd"
	CmdToggleSchedule    = "toggle_schedule"
	CmdSaveConfig        = "save_config"
	CmdGetScheduleStatus = "get_schedule_status"
)

// ErrClosed is returned for calls on a closed connection
var ErrClosed = errors.New("gateway connection closed")

// Backend is the set of remote operations the client relies on
type Backend interface {
	GetConfig(ctx context.Context) (types.ConfigState, error)
	GeneratePreview(ctx context.Context, req types.GenerationRequest) (*types.PreviewResponse, error)
	SetWallpaper(ctx context.Context, req types.GenerationRequest) (string, error)
	ToggleSchedule(ctx context.Context, enabled bool) (string, error)
	SaveConfig(ctx context.Context, args types.SaveConfigArgs) error
	GetScheduleStatus(ctx context.Context) (bool, error)
}

// Invoker performs one named command with JSON-encodable args and decodes
// the result into out (which may be nil to discard it).
type Invoker interface {
	Invoke(ctx context.Context, command string, args any, out any) error
}

// CommandError is a failure reported by the backend itself, as opposed to
// a transport failure. Message is the backend's description.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

// Client implements Backend over an Invoker
type Client struct {
	invoker Invoker
	timeout time.Duration
}

// NewClient creates a client. A zero timeout lets calls wait indefinitely.
func NewClient(invoker Invoker, timeout time.Duration) *Client {
	return &Client{invoker: invoker, timeout: timeout}
}

type requestArgs struct {
	Request types.GenerationRequest `json:"request"`
}

type toggleArgs struct {
	Enabled bool `json:"enabled"`
}

// GetConfig fetches the backend configuration
func (c *Client) GetConfig(ctx context.Context) (types.ConfigState, error) {
	var cfg types.ConfigState
	if err := c.invoke(ctx, CmdGetConfig, nil, &cfg); err != nil {
		return types.ConfigState{}, err
	}
	return cfg, nil
}

// GeneratePreview renders a preview without touching the desktop
func (c *Client) GeneratePreview(ctx context.Context, req types.GenerationRequest) (*types.PreviewResponse, error) {
	var resp types.PreviewResponse
	if err := c.invoke(ctx, CmdGeneratePreview, requestArgs{Request: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetWallpaper renders and applies the wallpaper, returning the backend's confirmation
func (c *Client) SetWallpaper(ctx context.Context, req types.GenerationRequest) (string, error) {
	var msg string
	if err := c.invoke(ctx, CmdSetWallpaper, requestArgs{Request: req}, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

// ToggleSchedule installs or removes the weekly job
func (c *Client) ToggleSchedule(ctx context.Context, enabled bool) (string, error) {
	var msg string
	if err := c.invoke(ctx, CmdToggleSchedule, toggleArgs{Enabled: enabled}, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

// SaveConfig persists configuration fields; the return value is not used
func (c *Client) SaveConfig(ctx context.Context, args types.SaveConfigArgs) error {
	return c.invoke(ctx, CmdSaveConfig, args, nil)
}

// GetScheduleStatus reports whether the weekly job is installed
func (c *Client) GetScheduleStatus(ctx context.Context) (bool, error) {
	var installed bool
	if err := c.invoke(ctx, CmdGetScheduleStatus, nil, &installed); err != nil {
		return false, err
	}
	return installed, nil
}

func (c *Client) invoke(ctx context.Context, command string, args any, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	err := c.invoker.Invoke(ctx, command, args, out)
	if err == nil {
		return nil
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return err
	}
	return fmt.Errorf("failed to invoke %s: %w", command, err)
}
