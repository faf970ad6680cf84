package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/studiowebux/lifeweeks/internal/gateway"
	"github.com/studiowebux/lifeweeks/internal/types"
)

// Schedule installs, removes or reports the weekly wallpaper job
func Schedule(ctx context.Context, backend gateway.Backend, action string, recorder ActivityRecorder, out io.Writer) error {
	switch action {
	case "status":
		installed, err := backend.GetScheduleStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to get schedule status: %w", err)
		}
		if installed {
			fmt.Fprintln(out, "Weekly schedule: installed")
		} else {
			fmt.Fprintln(out, "Weekly schedule: not installed")
		}
		return nil

	case "install", "uninstall":
		enabled := action == "install"
		start := time.Now()
		message, err := backend.ToggleSchedule(ctx, enabled)
		if recorder != nil {
			entry := types.ActivityEntry{
				Action:   types.ActionSchedule,
				Success:  err == nil,
				Message:  message,
				Duration: time.Since(start),
			}
			if err != nil {
				entry.Message = err.Error()
			}
			_ = recorder.Record(entry)
		}
		if err != nil {
			return fmt.Errorf("failed to %s schedule: %w", action, err)
		}
		fmt.Fprintln(out, message)
		return nil

	default:
		return fmt.Errorf("unknown schedule action %q (use install, uninstall or status)", action)
	}
}
