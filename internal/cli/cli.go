package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/studiowebux/lifeweeks/internal/config"
	"github.com/studiowebux/lifeweeks/internal/form"
	"github.com/studiowebux/lifeweeks/internal/gateway"
	"github.com/studiowebux/lifeweeks/internal/presenter"
	"github.com/studiowebux/lifeweeks/internal/types"
	"gopkg.in/yaml.v3"
)

// ActivityRecorder stores action outcomes; *history.Manager implements it
type ActivityRecorder interface {
	Record(entry types.ActivityEntry) error
}

// GenerateOptions contains options for the generate command.
// Field values are raw flag text and go through the same permissive
// parsing as the TUI form.
type GenerateOptions struct {
	Mode     string
	Theme    string
	DOB      string
	Lifespan string
	Months   string
	Width    string
	Height   string

	PreviewOnly bool   // only write the PNG, do not set the wallpaper
	OutputPath  string // where the preview PNG is written
	Recorder    ActivityRecorder
}

// Generate renders a preview, writes it to disk, and unless PreviewOnly is
// set applies it as the wallpaper
func Generate(ctx context.Context, backend gateway.Backend, opts GenerateOptions, out io.Writer) error {
	mode, theme, err := resolveSelection(ctx, backend, opts.Mode, opts.Theme)
	if err != nil {
		return err
	}

	req := form.BuildRequest(mode, theme, form.Values{
		DOB:      opts.DOB,
		Lifespan: opts.Lifespan,
		Months:   opts.Months,
		Width:    opts.Width,
		Height:   opts.Height,
	})

	start := time.Now()
	resp, err := backend.GeneratePreview(ctx, req)
	record(opts.Recorder, types.ActionPreview, req, start, err, "")
	if err != nil {
		return fmt.Errorf("failed to generate preview: %w", err)
	}

	view, err := presenter.Present(resp)
	if err != nil {
		return err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = config.PreviewFile
	}
	if err := writePreview(outputPath, view.Image); err != nil {
		return err
	}

	fmt.Fprintln(out, view.Summary())
	if view.Subtitle != "" {
		fmt.Fprintln(out, view.Subtitle)
	}
	fmt.Fprintf(out, "Preview saved to %s\n", outputPath)

	if opts.PreviewOnly {
		return nil
	}

	start = time.Now()
	message, err := backend.SetWallpaper(ctx, req)
	record(opts.Recorder, types.ActionApply, req, start, err, message)
	if err != nil {
		return fmt.Errorf("failed to set wallpaper: %w", err)
	}
	fmt.Fprintln(out, message)
	return nil
}

// resolveSelection parses the mode and theme flags, falling back to the
// backend defaults for the ones left empty
func resolveSelection(ctx context.Context, backend gateway.Backend, modeFlag, themeFlag string) (types.Mode, types.Theme, error) {
	var mode types.Mode
	var theme types.Theme
	var err error

	if modeFlag != "" {
		if mode, err = types.ParseMode(modeFlag); err != nil {
			return "", "", err
		}
	}
	if themeFlag != "" {
		if theme, err = types.ParseTheme(themeFlag); err != nil {
			return "", "", withSuggestion(err, themeFlag, types.ThemeNames())
		}
	}
	if mode != "" && theme != "" {
		return mode, theme, nil
	}

	cfg, err := backend.GetConfig(ctx)
	if err != nil {
		cfg = types.DefaultConfigState()
	}
	if mode == "" {
		mode = cfg.DefaultMode
	}
	if theme == "" {
		theme = cfg.Theme
	}
	return mode, theme, nil
}

func writePreview(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}
	if err := os.WriteFile(path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

// record stores the outcome of a backend call. Storage errors are reported
// on stderr and do not fail the command.
func record(r ActivityRecorder, action types.Action, req types.GenerationRequest, start time.Time, err error, message string) {
	if r == nil {
		return
	}
	entry := types.ActivityEntry{
		Action:   action,
		Mode:     req.Mode,
		Theme:    req.Theme,
		Success:  err == nil,
		Message:  message,
		Duration: time.Since(start),
	}
	if err != nil {
		entry.Message = err.Error()
	}
	if recErr := r.Record(entry); recErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record activity: %v\n", recErr)
	}
}

// formatOutput renders v in the requested format; text falls back to YAML
// unless the value is a plain string
func formatOutput(v any, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text", "":
		if s, ok := v.(string); ok {
			return s + "\n", nil
		}
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s (use json, yaml or text)", format)
	}
}

// isInteractive checks if stdin is a terminal (not piped)
func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
