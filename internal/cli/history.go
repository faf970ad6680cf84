package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/studiowebux/lifeweeks/internal/types"
)

// HistoryReader lists recorded activity; *history.Manager implements it
type HistoryReader interface {
	Recent(limit int) ([]types.ActivityEntry, error)
	ForAction(action types.Action, limit int) ([]types.ActivityEntry, error)
	Count() (int, error)
}

// History prints the most recent activity entries, newest first. A non-empty
// action keeps only entries of that action.
func History(reader HistoryReader, limit int, action, format string, out io.Writer) error {
	entries, err := loadHistory(reader, limit, action)
	if err != nil {
		return err
	}

	if format == "json" || format == "yaml" {
		output, err := formatOutput(entries, format)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, output)
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No activity recorded yet.")
		return nil
	}

	var sb strings.Builder
	for _, e := range entries {
		status := colorGreen + "ok  " + colorReset
		if !e.Success {
			status = colorRed + "fail" + colorReset
		}
		scope := string(e.Action)
		if e.Mode != "" {
			scope += " " + string(e.Mode)
		}
		if e.Theme != "" {
			scope += "/" + string(e.Theme)
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %s %6dms  %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			status,
			pad(scope, 28),
			e.Duration.Milliseconds(),
			e.Message))
	}

	total, err := reader.Count()
	if err != nil {
		return fmt.Errorf("failed to count history: %w", err)
	}
	sb.WriteString(fmt.Sprintf("\nShowing %d of %d recorded entries\n", len(entries), total))

	_, err = io.WriteString(out, sb.String())
	return err
}

func loadHistory(reader HistoryReader, limit int, action string) ([]types.ActivityEntry, error) {
	var (
		entries []types.ActivityEntry
		err     error
	)
	if action == "" {
		entries, err = reader.Recent(limit)
	} else {
		a := types.Action(strings.ToLower(strings.TrimSpace(action)))
		if !slices.Contains(types.AllActions, a) {
			names := make([]string, len(types.AllActions))
			for i, known := range types.AllActions {
				names[i] = string(known)
			}
			return nil, withSuggestion(fmt.Errorf("unknown action: %s", action), action, names)
		}
		entries, err = reader.ForAction(a, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

// ANSI color codes
const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
)
