package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes records to the log instead of a broker. It drains the
// outbox when no brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, rec Record) error {
	p.logger.InfoContext(ctx, "case note event",
		"event_id", rec.ID.String(),
		"event_type", string(rec.EventType),
		"case_note_id", rec.AggregateID,
	)
	return nil
}
