package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryOutbox is an in-process outbox for development and tests.
type MemoryOutbox struct {
	mu        sync.Mutex
	records   []Record
	published map[uuid.UUID]bool
}

func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{published: make(map[uuid.UUID]bool)}
}

func (o *MemoryOutbox) Publish(_ context.Context, event Event) error {
	rec, err := NewRecord(event, time.Now())
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, rec)
	return nil
}

func (o *MemoryOutbox) Pending(_ context.Context, limit int) ([]Record, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Record
	for _, r := range o.records {
		if len(out) == limit {
			break
		}
		if !o.published[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (o *MemoryOutbox) MarkPublished(_ context.Context, ids []uuid.UUID) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, id := range ids {
		o.published[id] = true
	}
	return nil
}

// Events returns every event written so far, published or not.
func (o *MemoryOutbox) Events() []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Event, 0, len(o.records))
	for _, r := range o.records {
		if e, err := r.Decode(); err == nil {
			out = append(out, e)
		}
	}
	return out
}
