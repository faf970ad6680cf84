package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromContext_AddsAction(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug")

	ctx := WithAction(context.Background(), "persist")
	FromContext(ctx, logger).Info("saved")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["action"] != "persist" || entry["msg"] != "saved" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %s", out)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, closer, err := OpenFile(path, "info")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
