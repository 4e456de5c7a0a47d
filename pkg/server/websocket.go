package server

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/contact/pkg/contact"
	"github.com/vango-dev/contact/pkg/inbox"
	"github.com/vango-dev/contact/pkg/middleware"
	"github.com/vango-dev/contact/pkg/protocol"
)

// ReadLoop continuously reads frames from the WebSocket connection.
// It answers pings, reports undecodable frames and queues events.
// This method blocks until the connection is closed or an error occurs.
func (s *Session) ReadLoop() {
	defer s.Close()

	// Slightly oversized frames still get a protocol error reply; far
	// larger ones make gorilla close the connection.
	if s.config.Limits.FrameSize > 0 {
		s.conn.SetReadLimit(int64(2 * s.config.Limits.FrameSize))
	}

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout))

		msgType, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.bytesRecv.Add(uint64(len(msg)))

		if msgType != websocket.TextMessage {
			s.sendError(0, protocol.ErrCodeInvalidFrame, "expected a text frame")
			continue
		}

		event, err := protocol.DecodeEventWithLimits(msg, s.config.Limits)
		if err != nil {
			s.logger.Warn("event decode error", "error", err)
			s.env.metrics.ObserveEvent("invalid", middleware.StatusError, 0)
			s.sendError(0, protocol.CodeFor(err), err.Error())
			continue
		}

		if event.Type == protocol.EventPing {
			if err := s.send(protocol.NewPong(event.Seq)); err != nil {
				return
			}
			continue
		}

		s.UpdateLastActive()
		if err := s.QueueEvent(event); err != nil {
			s.sendError(event.Seq, protocol.ErrCodeRateLimited, "Event queue full")
		}
	}
}

// EventLoop applies queued events to the form one at a time, in arrival
// order. The form is dropped when the loop exits.
func (s *Session) EventLoop() {
	defer func() { s.controller = nil }()

	for {
		select {
		case event := <-s.events:
			s.handleEvent(event)
		case <-s.done:
			return
		}
	}
}

// Start starts the session loops.
func (s *Session) Start() {
	s.loops.Add(2)
	go func() {
		defer s.loops.Done()
		s.ReadLoop()
	}()
	go func() {
		defer s.loops.Done()
		s.EventLoop()
	}()
}

// handleEvent applies one event inside a trace span and records metrics.
func (s *Session) handleEvent(event *protocol.Event) {
	s.eventCount.Add(1)
	start := time.Now()

	ctx := trace.ContextWithSpanContext(context.Background(), s.traceParent)
	ctx, span := s.env.tracer.StartEvent(ctx, string(event.Type),
		attribute.String("contact.session_id", s.ID),
		attribute.Int64("contact.seq", int64(event.Seq)),
	)
	status, err := s.safeApply(ctx, event)
	middleware.EndEvent(span, status, err)
	s.env.metrics.ObserveEvent(string(event.Type), status, time.Since(start))

	if err != nil && !errors.Is(err, ErrSessionClosed) {
		s.logger.Error("event failed", "event", event.String(), "error", err)
	}
}

// safeApply recovers from panics so one bad event cannot kill the session.
func (s *Session) safeApply(ctx context.Context, event *protocol.Event) (status string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event panic",
				"event", event.String(),
				"panic", r,
				"stack", string(debug.Stack()))
			s.sendError(event.Seq, protocol.ErrCodeServerError, "Internal error")
			status, err = middleware.StatusError, fmt.Errorf("panic: %v", r)
		}
	}()
	return s.apply(ctx, event)
}

// apply runs the event against the form and sends the re-rendered fragment.
func (s *Session) apply(ctx context.Context, event *protocol.Event) (string, error) {
	c := s.controller

	// The submitted view has no fields, so anything but reset is stale.
	if c.Phase() == contact.PhaseSubmitted && event.Type != protocol.EventReset {
		return middleware.StatusIgnored, nil
	}

	status := middleware.StatusOK
	var acceptErr error

	switch event.Type {
	case protocol.EventInput, protocol.EventBlur:
		field, ok := contact.ParseField(event.Field)
		if !ok {
			s.sendError(event.Seq, protocol.ErrCodeUnknownField, fmt.Sprintf("Unknown field %q", event.Field))
			return middleware.StatusRejected, nil
		}
		var err error
		if event.Type == protocol.EventInput {
			err = c.SetField(field, event.Value)
		} else {
			err = c.BlurField(field)
		}
		if err != nil {
			return middleware.StatusError, err
		}

	case protocol.EventSubmit:
		errs, ok := c.Submit()
		if !ok {
			s.env.metrics.RecordValidationFailures(errs.Fields())
			status = middleware.StatusRejected
			break
		}
		_, acceptErr = s.env.accept(ctx, c.Values(), inbox.ChannelSocket, s.RemoteAddr)

	case protocol.EventReset:
		c.Reset()

	default:
		s.sendError(event.Seq, protocol.ErrCodeInvalidEvent, fmt.Sprintf("Unexpected event %q", event.Type))
		return middleware.StatusRejected, nil
	}

	return status, errors.Join(acceptErr, s.render(event.Seq))
}

// render sends the current form fragment tagged with seq.
func (s *Session) render(seq uint64) error {
	html, err := s.env.renderer.RenderToString(contact.View(s.controller.State()))
	if err != nil {
		return err
	}
	return s.send(protocol.NewRender(seq, html))
}
