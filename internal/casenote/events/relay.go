package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultRelayInterval = time.Second
	defaultRelayBatch    = 100
)

// Outbox is the read side of an outbox used by the relay.
type Outbox interface {
	Pending(ctx context.Context, limit int) ([]Record, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// Publisher delivers a record to the broker.
type Publisher interface {
	Publish(ctx context.Context, rec Record) error
}

// RelayMetrics is the subset of module metrics the relay reports to.
type RelayMetrics interface {
	AddOutboxPublished(n int)
	IncrementOutboxFailed()
}

// Relay moves committed outbox records to the broker. Delivery is at least
// once: a record is marked only after the broker acknowledged it.
type Relay struct {
	outbox    Outbox
	publisher Publisher
	interval  time.Duration
	batch     int
	logger    *slog.Logger
	metrics   RelayMetrics
}

type RelayOption func(*Relay)

func WithInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func WithLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithMetrics(m RelayMetrics) RelayOption {
	return func(r *Relay) {
		r.metrics = m
	}
}

func NewRelay(outbox Outbox, publisher Publisher, opts ...RelayOption) *Relay {
	r := &Relay{
		outbox:    outbox,
		publisher: publisher,
		interval:  defaultRelayInterval,
		batch:     defaultRelayBatch,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays batches until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes one batch in outbox order and stops at the first
// failure so later records are not delivered ahead of it.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	pending, err := r.outbox.Pending(ctx, r.batch)
	if err != nil {
		return 0, err
	}

	published := make([]uuid.UUID, 0, len(pending))
	var publishErr error
	for _, rec := range pending {
		if publishErr = r.publisher.Publish(ctx, rec); publishErr != nil {
			if r.metrics != nil {
				r.metrics.IncrementOutboxFailed()
			}
			break
		}
		published = append(published, rec.ID)
	}

	if err := r.outbox.MarkPublished(ctx, published); err != nil {
		return 0, err
	}
	if r.metrics != nil && len(published) > 0 {
		r.metrics.AddOutboxPublished(len(published))
	}
	return len(published), publishErr
}
