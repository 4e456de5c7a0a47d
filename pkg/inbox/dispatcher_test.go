package inbox

import (
	"context"
	"errors"
	"testing"
	"time"
)

// blockingSink blocks each delivery until release is closed or ctx ends.
type blockingSink struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingSink() *blockingSink {
	return &blockingSink{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (s *blockingSink) Name() string { return "blocking" }

func (s *blockingSink) Deliver(ctx context.Context, _ Submission) error {
	s.started <- struct{}{}
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *blockingSink) Close() error { return nil }

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := &recordingSink{name: "rec"}
	d := NewDispatcher(sink, DispatcherConfig{QueueSize: 16, Workers: 3, Timeout: time.Second}, nil)

	for i := 0; i < 10; i++ {
		if err := d.Enqueue(NewSubmission(testValues(), ChannelForm, "")); err != nil {
			t.Fatalf("Enqueue #%d failed: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if got := len(sink.delivered()); got != 10 {
		t.Errorf("Expected 10 deliveries, got %d", got)
	}
	if !sink.closed {
		t.Error("Expected the sink to be closed")
	}
	if err := d.Enqueue(NewSubmission(testValues(), ChannelForm, "")); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if err := d.Close(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed on second Close, got %v", err)
	}
}

func TestDispatcherQueueFull(t *testing.T) {
	sink := newBlockingSink()
	d := NewDispatcher(sink, DispatcherConfig{QueueSize: 1, Workers: 1}, nil)

	if err := d.Enqueue(NewSubmission(testValues(), ChannelAPI, "")); err != nil {
		t.Fatalf("First enqueue failed: %v", err)
	}
	<-sink.started

	if err := d.Enqueue(NewSubmission(testValues(), ChannelAPI, "")); err != nil {
		t.Fatalf("Second enqueue failed: %v", err)
	}
	if d.Pending() != 1 {
		t.Errorf("Expected 1 pending, got %d", d.Pending())
	}
	if err := d.Enqueue(NewSubmission(testValues(), ChannelAPI, "")); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Expected ErrQueueFull, got %v", err)
	}

	close(sink.release)
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestDispatcherCloseTimeoutCancelsDeliveries(t *testing.T) {
	sink := newBlockingSink()
	d := NewDispatcher(sink, DispatcherConfig{QueueSize: 4, Workers: 1}, nil)

	if err := d.Enqueue(NewSubmission(testValues(), ChannelAPI, "")); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	<-sink.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}

func TestDispatcherDeliveryTimeout(t *testing.T) {
	sink := newBlockingSink()
	d := NewDispatcher(sink, DispatcherConfig{QueueSize: 4, Workers: 1, Timeout: 10 * time.Millisecond}, nil)

	if err := d.Enqueue(NewSubmission(testValues(), ChannelAPI, "")); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	<-sink.started

	// The per-delivery timeout frees the worker without release being closed.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Errorf("Expected clean close after delivery timeout, got %v", err)
	}
}
