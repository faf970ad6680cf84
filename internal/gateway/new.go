package gateway

import (
	"context"
	"fmt"
	"io"

	"github.com/studiowebux/lifeweeks/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a Backend for the configured transport. The closer releases
// the underlying connection.
func New(ctx context.Context, settings config.Settings) (*Client, io.Closer, error) {
	switch settings.Transport {
	case config.TransportWebSocket:
		ws, err := DialWebSocket(ctx, settings.BackendURL, &settings.TLS)
		if err != nil {
			return nil, nil, err
		}
		return NewClient(ws, settings.Timeout()), ws, nil
	case config.TransportHTTP, "":
		h, err := NewHTTPInvoker(settings.BackendURL, &settings.TLS)
		if err != nil {
			return nil, nil, err
		}
		return NewClient(h, settings.Timeout()), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported transport: %s", settings.Transport)
	}
}
