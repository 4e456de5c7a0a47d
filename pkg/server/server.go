package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/contact/pkg/contact"
	"github.com/vango-dev/contact/pkg/inbox"
	"github.com/vango-dev/contact/pkg/middleware"
	"github.com/vango-dev/contact/pkg/render"
)

// Submitter queues accepted submissions for delivery. *inbox.Dispatcher
// implements it.
type Submitter interface {
	Enqueue(inbox.Submission) error
}

// Options carries the server's collaborators. Every field is optional.
type Options struct {
	Logger *slog.Logger

	// Metrics records Prometheus metrics. Nil records nothing.
	Metrics *middleware.Metrics

	// Gatherer backs GET /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer

	// Tracer starts request and event spans. Default: global provider.
	Tracer *middleware.Tracer

	// Submitter receives accepted submissions. Nil means they are only
	// logged.
	Submitter Submitter
}

// Server is the HTTP/WebSocket server for the contact form.
type Server struct {
	sessions *SessionManager
	config   *ServerConfig
	upgrader websocket.Upgrader
	renderer *render.Renderer
	router   chi.Router

	metrics   *middleware.Metrics
	gatherer  prometheus.Gatherer
	tracer    *middleware.Tracer
	submitter Submitter

	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server with the given configuration. Unset config
// fields take their defaults.
func New(config *ServerConfig, opts Options) *Server {
	config = config.withDefaults()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	tracer := opts.Tracer
	if tracer == nil {
		tracer = middleware.NewTracer()
	}

	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		renderer:  render.NewRenderer(render.RendererConfig{Pretty: config.DevMode}),
		metrics:   opts.Metrics,
		gatherer:  opts.Gatherer,
		tracer:    tracer,
		submitter: opts.Submitter,
		logger:    logger,
	}

	// Fragments go through innerHTML, so they are never pretty-printed.
	env := &sessionEnv{
		renderer: render.NewRenderer(render.RendererConfig{}),
		metrics:  s.metrics,
		tracer:   s.tracer,
		accept:   s.accept,
	}
	s.sessions = newSessionManager(config.SessionConfig, config.MaxSessions, config.CleanupInterval, env, logger)
	s.router = s.routes()
	return s
}

// accept stamps values as a Submission and queues it for delivery.
func (s *Server) accept(ctx context.Context, v contact.Values, channel, remoteAddr string) (inbox.Submission, error) {
	sub := inbox.NewSubmission(v, channel, remoteAddr)
	s.metrics.RecordSubmission(channel)

	if s.submitter != nil {
		if err := s.submitter.Enqueue(sub); err != nil {
			s.logger.ErrorContext(ctx, "submission not queued",
				"id", sub.ID.String(),
				"channel", channel,
				"error", err)
			return sub, fmt.Errorf("%w: %w", ErrInboxUnavailable, err)
		}
	}

	s.logger.InfoContext(ctx, "submission accepted",
		"id", sub.ID.String(),
		"channel", channel)
	return sub, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HandleWebSocket upgrades the connection and starts a session with a
// fresh form.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	session, err := s.sessions.Create(conn, r.RemoteAddr)
	if err != nil {
		s.logger.Warn("session rejected", "error", err, "remote_addr", r.RemoteAddr)
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server busy"),
			time.Now().Add(time.Second),
		)
		conn.Close()
		return
	}
	session.traceParent = trace.SpanContextFromContext(r.Context())
	session.Start()
}

// Run listens on the configured address and serves until ctx ends or the
// process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
	}

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-shutdown:
		s.logger.Info("shutting down...")
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down...")
	}
	return s.Shutdown(context.Background())
}

// Shutdown stops accepting connections, then closes every session.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	var httpErr error
	if s.httpServer != nil {
		if httpErr = s.httpServer.Shutdown(ctx); httpErr != nil {
			s.logger.Error("shutdown error", "error", httpErr)
		}
	}

	sessErr := s.sessions.ShutdownWithContext(ctx)

	s.logger.Info("server shutdown complete")
	return errors.Join(httpErr, sessErr)
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}
