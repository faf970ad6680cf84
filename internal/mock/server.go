package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/studiowebux/lifeweeks/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPort = 7878
	defaultHost = "127.0.0.1"
	maxLogs     = 1000

	// maxConnCalls bounds the commands running at once on one WebSocket
	maxConnCalls = 16
)

// Server exposes a Backend over the HTTP and WebSocket gateway protocols
type Server struct {
	config     *Config
	backend    *Backend
	httpServer *http.Server
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	logs       []CallLog
	logsMutex  sync.Mutex
	notifyCh   chan struct{} // Channel to notify when new log arrives
}

// NewServer creates a new mock server
func NewServer(config *Config, logger *slog.Logger) *Server {
	if config.Port == 0 {
		config.Port = defaultPort
	}
	if config.Host == "" {
		config.Host = defaultHost
	}
	if logger == nil {
		logger = logging.Discard
	}

	return &Server{
		config:   config,
		backend:  NewBackend(config),
		logger:   logger,
		logs:     make([]CallLog, 0),
		notifyCh: make(chan struct{}, 100),
	}
}

// Backend returns the state behind the server
func (s *Server) Backend() *Backend {
	return s.backend
}

// Handler returns the routes served by the mock backend
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/invoke/", s.handleInvoke)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start starts the mock server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("mock server error", "error", err)
		}
	}()

	s.logger.Info("mock backend listening", "addr", addr)
	return nil
}

// Stop stops the mock server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	command := strings.TrimPrefix(r.URL.Path, "/invoke/")
	args, _ := io.ReadAll(r.Body)
	r.Body.Close()

	result, err := s.call(r.Context(), "http", command, args)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type wsRequest struct {
	ID   string          `json:"id"`
	Cmd  string          `json:"cmd"`
	Args json.RawMessage `json:"args"`
}

type wsReply struct {
	ID     string  `json:"id"`
	Result any     `json:"result,omitempty"`
	Error  *string `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	var g errgroup.Group
	g.SetLimit(maxConnCalls)
	defer g.Wait()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		// Commands run concurrently so a delayed one does not hold up the rest.
		g.Go(func() error {
			reply := wsReply{ID: req.ID}
			result, err := s.call(ctx, "websocket", req.Cmd, req.Args)
			if err != nil {
				msg := err.Error()
				reply.Error = &msg
			} else {
				reply.Result = result
			}

			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.WriteJSON(reply); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
			}
			return nil
		})
	}
}

func (s *Server) call(ctx context.Context, transport, command string, args []byte) (any, error) {
	start := time.Now()
	result, err := s.backend.Dispatch(ctx, command, args)

	if s.config.Logging {
		entry := CallLog{
			Timestamp: start,
			Transport: transport,
			Command:   command,
			Args:      string(args),
			Duration:  time.Since(start),
		}
		if err != nil {
			entry.Error = err.Error()
		}
		s.logCall(entry)
	}

	s.logger.Debug("mock command", "transport", transport, "command", command, "error", err)
	return result, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logCall(log CallLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, log)

	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}

	// Notify listeners (non-blocking)
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// NotifyChannel signals each newly logged call
func (s *Server) NotifyChannel() <-chan struct{} {
	return s.notifyCh
}

// DrainLogs returns the calls logged since the previous drain and forgets them
func (s *Server) DrainLogs() []CallLog {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	logs := s.logs
	s.logs = make([]CallLog, 0, len(logs))
	return logs
}

// GetAddress returns the HTTP base URL
func (s *Server) GetAddress() string {
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}

// GetWebSocketAddress returns the WebSocket endpoint URL
func (s *Server) GetWebSocketAddress() string {
	return fmt.Sprintf("ws://%s:%d/ws", s.config.Host, s.config.Port)
}
