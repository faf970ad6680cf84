package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/studiowebux/lifeweeks/internal/mock"
)

// MockOptions contains options for the development backend
type MockOptions struct {
	ConfigPath string // optional YAML/JSON file with state, preview script and failure injection
	Host       string
	Port       int
	Verbose    bool // print each call as it arrives
}

// RunMock serves the mock backend until ctx is cancelled
func RunMock(ctx context.Context, opts MockOptions, logger *slog.Logger, out io.Writer) error {
	cfg := &mock.Config{}
	if opts.ConfigPath != "" {
		loaded, err := mock.LoadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.Host != "" {
		cfg.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if opts.Verbose {
		cfg.Logging = true
	}

	server := mock.NewServer(cfg, logger)
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	fmt.Fprintf(out, "Mock backend listening on %s (WebSocket %s)\n", server.GetAddress(), server.GetWebSocketAddress())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "Stopping mock backend")
			return nil
		case <-server.NotifyChannel():
			logs := server.DrainLogs()
			if !opts.Verbose {
				continue
			}
			for _, l := range logs {
				status := "ok"
				if l.Error != "" {
					status = "error: " + l.Error
				}
				fmt.Fprintf(out, "%s %-9s %-20s %6dms %s\n",
					l.Timestamp.Format("15:04:05"), l.Transport, l.Command, l.Duration.Milliseconds(), status)
			}
		}
	}
}
