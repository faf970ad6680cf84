package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/lifeweeks/internal/config"
	"github.com/studiowebux/lifeweeks/internal/form"
	"github.com/studiowebux/lifeweeks/internal/gateway"
	"github.com/studiowebux/lifeweeks/internal/types"
)

// ConfigKeys are the backend settings accepted by config set
var ConfigKeys = []string{"dob", "lifespan", "theme", "width", "height", "mode", "months"}

// ConfigShowOptions contains options for config show
type ConfigShowOptions struct {
	Query  string // JMESPath expression applied to the JSON form
	Format string // json, yaml or text
}

// ConfigShow prints the backend configuration
func ConfigShow(ctx context.Context, backend gateway.Backend, opts ConfigShowOptions, out io.Writer) error {
	cfg, err := backend.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch config: %w", err)
	}

	var result any = cfg
	if opts.Query != "" {
		result, err = queryJSON(cfg, opts.Query)
		if err != nil {
			return err
		}
	}

	output, err := formatOutput(result, opts.Format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, output)
	return err
}

// queryJSON applies a JMESPath expression to the JSON encoding of v
func queryJSON(v any, expression string) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}
	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// ConfigSet saves a single backend setting. An empty dob clears the stored date.
func ConfigSet(ctx context.Context, backend gateway.Backend, key, value string, out io.Writer) error {
	args, err := buildSetArgs(key, value)
	if err != nil {
		return err
	}
	if err := backend.SaveConfig(ctx, args); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if value == "" {
		fmt.Fprintf(out, "Cleared %s\n", key)
	} else {
		fmt.Fprintf(out, "Set %s = %s\n", key, value)
	}
	return nil
}

// buildSetArgs maps one key/value pair to save_config arguments leaving
// every other field null
func buildSetArgs(key, value string) (types.SaveConfigArgs, error) {
	var args types.SaveConfigArgs

	switch strings.ToLower(key) {
	case "dob":
		args.DOB = types.Some(strings.TrimSpace(value))

	case "theme":
		theme, err := types.ParseTheme(value)
		if err != nil {
			return args, withSuggestion(err, value, types.ThemeNames())
		}
		args.Theme = types.Some(theme)

	case "mode", "defaultmode", "default_mode":
		mode, err := types.ParseMode(value)
		if err != nil {
			return args, err
		}
		args.DefaultMode = types.Some(mode)

	case "lifespan", "width", "height", "months":
		n := form.ParseField(value)
		if !n.IsSome() {
			return args, fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		switch strings.ToLower(key) {
		case "lifespan":
			args.Lifespan = n
		case "width":
			args.Width = n
		case "height":
			args.Height = n
		case "months":
			args.Months = n
		}

	default:
		return args, withSuggestion(fmt.Errorf("unknown config key %q", key), key, ConfigKeys)
	}

	return args, nil
}

// ConfigReset restores every backend setting to the built-in defaults
func ConfigReset(ctx context.Context, backend gateway.Backend, out io.Writer) error {
	d := types.DefaultConfigState()
	args := types.SaveConfigArgs{
		DOB:         types.Some(""),
		Lifespan:    types.Some(d.LifespanYears),
		Theme:       types.Some(d.Theme),
		Width:       types.Some(d.ScreenWidth),
		Height:      types.Some(d.ScreenHeight),
		DefaultMode: types.Some(d.DefaultMode),
		Months:      types.Some(d.NextMonths),
	}
	if err := backend.SaveConfig(ctx, args); err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	fmt.Fprintln(out, "Configuration reset to defaults")
	return nil
}

// ConfigPath prints where the client settings file lives. A local file in
// the working directory is flagged since it shadows the global one.
func ConfigPath(out io.Writer) {
	path := config.GetSettingsFilePath()
	if config.LocalSettingsExists() {
		fmt.Fprintf(out, "%s (local, overrides %s)\n", path, config.SettingsFile)
		return
	}
	fmt.Fprintln(out, path)
}

// withSuggestion appends the closest candidates to err
func withSuggestion(err error, input string, candidates []string) error {
	matches := fuzzy.Find(strings.ToLower(input), candidates)
	if len(matches) == 0 {
		return err
	}

	suggestions := make([]string, 0, 3)
	for _, m := range matches {
		if len(suggestions) == 3 {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
}
