package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/notify/pkg/notify"
)

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("host: failed to start server")

	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("host: failed to shut down gracefully")
)

// Server accepts WebSocket clients and runs a Session per connection.
type Server struct {
	addr            string
	logger          *slog.Logger
	clock           notify.Clock
	metrics         *notify.Metrics
	readTimeout     time.Duration
	shutdownTimeout time.Duration
	onConnect       func(*Session)
	upgrader        websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddr sets the listen address. Default ":8080".
func WithAddr(addr string) ServerOption {
	return func(s *Server) { s.addr = addr }
}

// WithServerLogger sets the logger. Default slog.Default.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// WithServerClock sets the clock injected into every session's
// notifications. Tests use this to drive countdowns deterministically.
func WithServerClock(clock notify.Clock) ServerOption {
	return func(s *Server) { s.clock = clock }
}

// WithOnConnect sets a callback invoked on the session loop as each client
// connects. This is where server code shows its initial notifications.
func WithOnConnect(fn func(*Session)) ServerOption {
	return func(s *Server) { s.onConnect = fn }
}

// WithCheckOrigin sets the WebSocket origin check. The default accepts any
// origin, which is only suitable behind a same-origin proxy.
func WithCheckOrigin(fn func(*http.Request) bool) ServerOption {
	return func(s *Server) { s.upgrader.CheckOrigin = fn }
}

// WithReadTimeout sets the per-message read deadline. Default 60s.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.readTimeout = d }
}

// WithShutdownTimeout sets the graceful shutdown deadline. Default 10s.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.shutdownTimeout = d }
}

// NewServer creates a server. Nothing listens until Run.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		addr:            ":8080",
		logger:          slog.Default().With("component", "host"),
		clock:           notify.SystemClock(),
		metrics:         notify.DefaultMetrics(),
		readTimeout:     60 * time.Second,
		shutdownTimeout: 10 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes: /ws for clients, /healthz for probes,
// and /metrics for Prometheus.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ws", s.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully and closes
// every session. Listen errors are wrapped with ErrStart, shutdown errors
// with ErrShutdown.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%w: %v", ErrStart, err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)

	s.mu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()
	for _, sess := range open {
		sess.Close()
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrShutdown, err)
	}
	return nil
}

// handleWS upgrades the connection and runs the session until the client
// disconnects.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade error", "error", err)
		return
	}

	sess := newSession(conn, s.logger, s.clock, s.metrics)
	s.register(sess)
	defer s.unregister(sess)

	go sess.Run()
	if s.onConnect != nil {
		sess.Dispatch(func() { s.onConnect(sess) })
	}

	s.readLoop(conn, sess)
}

// readLoop reads client frames until the connection drops, then closes the
// session.
func (s *Server) readLoop(conn *websocket.Conn, sess *Session) {
	defer sess.Close()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "session", sess.ID(), "error", err)
			}
			return
		}

		sess.HandleRaw(msg)
	}
}

func (s *Server) register(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
	s.logger.Info("session connected", "session", sess.ID())
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID())
	s.mu.Unlock()
	s.logger.Info("session disconnected", "session", sess.ID())
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
