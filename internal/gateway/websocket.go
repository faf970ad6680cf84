package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/studiowebux/lifeweeks/internal/types"
)

// wsRequest is one command frame sent to the backend
type wsRequest struct {
	ID   string `json:"id"`
	Cmd  string `json:"cmd"`
	Args any    `json:"args"`
}

// wsReply is the backend's answer to the frame with the same ID
type wsReply struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *string         `json:"error,omitempty"`
}

// WSInvoker multiplexes commands over a single WebSocket connection.
// Replies may arrive in any order; they are matched to calls by ID.
type WSInvoker struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan wsReply
	err     error
	done    chan struct{}
}

// DialWebSocket connects to the backend's WebSocket endpoint
func DialWebSocket(ctx context.Context, url string, tlsConfig *types.TLSConfig) (*WSInvoker, error) {
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
	}

	tlsClientConfig, err := buildTLSConfig(tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("TLS configuration error: %w", err)
	}
	dialer.TLSClientConfig = tlsClientConfig

	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	w := &WSInvoker{
		conn:    conn,
		pending: make(map[string]chan wsReply),
		done:    make(chan struct{}),
	}
	go w.readLoop()
	return w, nil
}

// Invoke sends one command and waits for its reply or for ctx to end
func (w *WSInvoker) Invoke(ctx context.Context, command string, args any, out any) error {
	if args == nil {
		args = struct{}{}
	}
	id := uuid.NewString()
	replyCh := make(chan wsReply, 1)

	w.mu.Lock()
	if w.err != nil {
		err := w.err
		w.mu.Unlock()
		return err
	}
	w.pending[id] = replyCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.pending, id)
		w.mu.Unlock()
	}()

	w.writeMu.Lock()
	err := w.conn.WriteJSON(wsRequest{ID: id, Cmd: command, Args: args})
	w.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}

	select {
	case reply := <-replyCh:
		if reply.Error != nil {
			return &CommandError{Command: command, Message: *reply.Error}
		}
		if out == nil || len(reply.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(reply.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", command, err)
		}
		return nil
	case <-w.done:
		w.mu.Lock()
		err := w.err
		w.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the connection down; pending calls fail with ErrClosed
func (w *WSInvoker) Close() error {
	w.writeMu.Lock()
	_ = w.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	w.writeMu.Unlock()
	return w.conn.Close()
}

func (w *WSInvoker) readLoop() {
	var loopErr error
	for {
		var reply wsReply
		if err := w.conn.ReadJSON(&reply); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				loopErr = fmt.Errorf("receive error: %w", err)
			} else {
				loopErr = ErrClosed
			}
			break
		}

		w.mu.Lock()
		ch, ok := w.pending[reply.ID]
		w.mu.Unlock()
		if ok {
			select {
			case ch <- reply:
			default:
			}
		}
	}

	w.mu.Lock()
	w.err = loopErr
	w.mu.Unlock()
	close(w.done)
}
