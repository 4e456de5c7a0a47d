package inbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/contact/pkg/contact"
)

// Channels a submission can arrive through.
const (
	ChannelSocket = "ws"
	ChannelForm   = "form"
	ChannelAPI    = "api"
)

// Submission is an accepted contact message.
type Submission struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	Channel    string    `json:"channel"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// NewSubmission stamps accepted values with a fresh id and the current time.
func NewSubmission(v contact.Values, channel, remoteAddr string) Submission {
	return Submission{
		ID:         uuid.New(),
		Name:       v.Name,
		Email:      v.Email,
		Message:    v.Message,
		Channel:    channel,
		RemoteAddr: remoteAddr,
		ReceivedAt: time.Now().UTC(),
	}
}

// Sink receives accepted submissions.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string

	// Deliver stores or forwards one submission. It must honor ctx.
	Deliver(ctx context.Context, s Submission) error

	// Close releases the sink's resources.
	Close() error
}

// ObserveFunc is called after every per-sink delivery attempt.
type ObserveFunc func(sink string, err error)

// MultiSink delivers to every sink it wraps. A failing sink does not stop
// delivery to the others.
type MultiSink struct {
	sinks   []Sink
	observe ObserveFunc
}

// NewMulti creates a fan-out sink. observe may be nil.
func NewMulti(observe ObserveFunc, sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks, observe: observe}
}

// Name returns the joined names of the wrapped sinks.
func (m *MultiSink) Name() string {
	names := make([]string, len(m.sinks))
	for i, s := range m.sinks {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Deliver delivers to all sinks and joins their errors.
func (m *MultiSink) Deliver(ctx context.Context, s Submission) error {
	var errs []error
	for _, sink := range m.sinks {
		err := sink.Deliver(ctx, s)
		if m.observe != nil {
			m.observe(sink.Name(), err)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Close closes all sinks and joins their errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}
