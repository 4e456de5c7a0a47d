package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/contact/pkg/contact"
	"github.com/vango-dev/contact/pkg/inbox"
	"github.com/vango-dev/contact/pkg/middleware"
	"github.com/vango-dev/contact/pkg/protocol"
	"github.com/vango-dev/contact/pkg/render"
)

// acceptFunc hands accepted values to the inbox.
type acceptFunc func(ctx context.Context, v contact.Values, channel, remoteAddr string) (inbox.Submission, error)

// sessionEnv holds what every session of one server shares.
type sessionEnv struct {
	renderer *render.Renderer
	metrics  *middleware.Metrics
	tracer   *middleware.Tracer
	accept   acceptFunc
}

// Session is one WebSocket connection and the form instance it drives.
//
// The controller is owned by the EventLoop goroutine; nothing else touches
// it. Writes to the connection are serialized by mu.
type Session struct {
	ID         string
	RemoteAddr string
	CreatedAt  time.Time

	lastActive atomic.Int64 // unix nanoseconds

	// Connection
	conn   *websocket.Conn
	mu     sync.Mutex // Protects conn writes
	closed atomic.Bool

	controller *contact.Controller

	events chan *protocol.Event
	done   chan struct{}
	loops  sync.WaitGroup

	// Span of the upgrade request; event spans are its children.
	traceParent trace.SpanContext

	config  *SessionConfig
	env     *sessionEnv
	onClose func(*Session)
	logger  *slog.Logger

	// Metrics
	eventCount atomic.Uint64
	bytesSent  atomic.Uint64
	bytesRecv  atomic.Uint64
}

// newSession creates a session with a fresh form in its initial state.
func newSession(conn *websocket.Conn, remoteAddr string, config *SessionConfig, env *sessionEnv, logger *slog.Logger) *Session {
	now := time.Now()
	id := uuid.NewString()

	s := &Session{
		ID:         id,
		RemoteAddr: remoteAddr,
		CreatedAt:  now,
		conn:       conn,
		controller: contact.NewController(),
		events:     make(chan *protocol.Event, config.MaxEventQueue),
		done:       make(chan struct{}),
		config:     config,
		env:        env,
		logger:     logger.With("session_id", id),
	}
	s.lastActive.Store(now.UnixNano())
	return s
}

// Close gracefully closes the session. The form instance is discarded once
// the event loop exits.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	s.mu.Lock()
	if s.conn != nil {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	}
	s.mu.Unlock()

	if s.onClose != nil {
		s.onClose(s)
	}

	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"bytes_sent", s.bytesSent.Load(),
		"bytes_recv", s.bytesRecv.Load())
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session's loops have exited or ctx ends.
func (s *Session) Wait(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		s.loops.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueueEvent queues an event for the event loop without blocking.
func (s *Session) QueueEvent(event *protocol.Event) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.events <- event:
		return nil
	default:
		s.logger.Warn("event queue full, dropping event", "event", event.String())
		return ErrEventQueueFull
	}
}

// UpdateLastActive updates the last activity timestamp.
func (s *Session) UpdateLastActive() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive returns the time of the last non-ping event.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Stats returns per-session counters.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		LastActive: s.LastActive(),
		EventCount: s.eventCount.Load(),
		BytesSent:  s.bytesSent.Load(),
		BytesRecv:  s.bytesRecv.Load(),
	}
}

// SessionStats contains per-session counters.
type SessionStats struct {
	ID         string
	CreatedAt  time.Time
	LastActive time.Time
	EventCount uint64
	BytesSent  uint64
	BytesRecv  uint64
}

// send encodes and writes one message.
func (s *Session) send(msg *protocol.Message) error {
	data, err := protocol.EncodeMessage(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.conn == nil {
		s.mu.Unlock()
		return ErrNoConnection
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	err = s.conn.WriteMessage(websocket.TextMessage, data)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("write error", "error", err)
		s.Close()
		return NewSessionError(s.ID, "write", err)
	}
	s.bytesSent.Add(uint64(len(data)))
	return nil
}

// sendError reports a problem with one event to the client.
func (s *Session) sendError(seq uint64, code protocol.ErrorCode, message string) {
	if err := s.send(protocol.NewError(seq, code, message)); err != nil {
		s.logger.Debug("error message not sent", "code", code, "error", err)
	}
}
