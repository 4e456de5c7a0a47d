package inbox

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrQueueFull is returned by Enqueue when the backlog is at capacity.
	ErrQueueFull = errors.New("inbox: queue full")

	// ErrClosed is returned by Enqueue after Close.
	ErrClosed = errors.New("inbox: dispatcher closed")
)

// DispatcherConfig sizes the delivery pipeline.
type DispatcherConfig struct {
	QueueSize int
	Workers   int

	// Timeout bounds a single delivery. Zero means no limit.
	Timeout time.Duration
}

// Dispatcher decouples accepting a submission from delivering it. A fixed
// pool of workers drains a bounded queue into the sink.
type Dispatcher struct {
	sink    Sink
	timeout time.Duration
	logger  *slog.Logger

	queue chan Submission
	wg    sync.WaitGroup

	// base is cancelled when Close gives up waiting, aborting in-flight
	// deliveries.
	base   context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts the workers.
func NewDispatcher(sink Sink, cfg DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	base, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		sink:    sink,
		timeout: cfg.Timeout,
		logger:  logger.With("component", "dispatcher"),
		queue:   make(chan Submission, cfg.QueueSize),
		base:    base,
		cancel:  cancel,
	}

	d.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go d.worker()
	}
	return d
}

// Enqueue hands a submission to the workers without blocking.
func (d *Dispatcher) Enqueue(sub Submission) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}
	select {
	case d.queue <- sub:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pending returns the number of queued, undelivered submissions.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Close stops accepting submissions and waits for the queue to drain. If ctx
// ends first, in-flight deliveries are cancelled and ctx's error returned.
// The sink is closed once all workers have exited.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
		d.cancel()
		<-done
	}
	d.cancel()

	return errors.Join(err, d.sink.Close())
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for sub := range d.queue {
		d.deliver(sub)
	}
}

func (d *Dispatcher) deliver(sub Submission) {
	ctx := d.base
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := d.sink.Deliver(ctx, sub); err != nil {
		d.logger.Error("delivery failed",
			"id", sub.ID.String(),
			"sink", d.sink.Name(),
			"error", err,
		)
		return
	}
	d.logger.Debug("delivered",
		"id", sub.ID.String(),
		"sink", d.sink.Name(),
		"duration", time.Since(start),
	)
}
