package inbox

import (
	"context"
	"log/slog"
)

// LogSink writes a record per submission. The message body is not logged.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink that logs to logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "inbox")}
}

// Name implements Sink.
func (s *LogSink) Name() string { return "log" }

// Deliver implements Sink.
func (s *LogSink) Deliver(ctx context.Context, sub Submission) error {
	s.logger.InfoContext(ctx, "contact message received",
		"id", sub.ID.String(),
		"channel", sub.Channel,
		"email", sub.Email,
		"message_len", len(sub.Message),
	)
	return nil
}

// Close implements Sink.
func (s *LogSink) Close() error { return nil }
