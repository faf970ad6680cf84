package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/studiowebux/lifeweeks/internal/types"
)

// HTTPInvoker calls commands as POST {base}/invoke/{command}.
// A 2xx response carries the JSON result; any other status carries the
// backend's error message.
type HTTPInvoker struct {
	baseURL string
	client  *http.Client
}

// NewHTTPInvoker creates an invoker for the given base URL
func NewHTTPInvoker(baseURL string, tlsConfig *types.TLSConfig) (*HTTPInvoker, error) {
	client, err := buildHTTPClient(tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}
	return &HTTPInvoker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}, nil
}

// Invoke performs one command
func (h *HTTPInvoker) Invoke(ctx context.Context, command string, args any, out any) error {
	body := []byte("{}")
	if args != nil {
		var err error
		body, err = json.Marshal(args)
		if err != nil {
			return fmt.Errorf("failed to encode arguments: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/invoke/"+command, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &CommandError{Command: command, Message: errorMessage(respBody, resp.Status)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", command, err)
	}
	return nil
}

// errorMessage extracts the backend's error string. The backend sends a
// JSON string; plain text bodies are accepted too.
func errorMessage(body []byte, status string) string {
	var msg string
	if err := json.Unmarshal(body, &msg); err == nil && msg != "" {
		return msg
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return status
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration.
// No client timeout is set; deadlines come from the call context.
func buildHTTPClient(tlsConfig *types.TLSConfig) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}

	tlsCfg, err := buildTLSConfig(tlsConfig)
	if err != nil {
		return nil, err
	}
	transport.TLSClientConfig = tlsCfg

	return &http.Client{Transport: transport}, nil
}
