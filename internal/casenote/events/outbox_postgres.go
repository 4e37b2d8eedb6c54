package events

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	txcontext "casenotes/pkg/platform/tx"
)

// PostgresOutbox writes events to the case_note_outbox table. Publish joins
// the transaction carried by the context so events commit with the change.
type PostgresOutbox struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresOutbox(db *sql.DB) *PostgresOutbox {
	return &PostgresOutbox{db: db, now: time.Now}
}

func (o *PostgresOutbox) Publish(ctx context.Context, event Event) error {
	rec, err := NewRecord(event, o.now())
	if err != nil {
		return err
	}
	_, err = txcontext.Exec(ctx, o.db).ExecContext(ctx, `
		INSERT INTO case_note_outbox (id, event_type, aggregate_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, string(rec.EventType), rec.AggregateID, rec.Payload, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// Pending returns up to limit unpublished records, oldest first.
func (o *PostgresOutbox) Pending(ctx context.Context, limit int) ([]Record, error) {
	rows, err := o.db.QueryContext(ctx, `
		SELECT id, event_type, aggregate_id, payload, created_at
		FROM case_note_outbox
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var eventType string
		if err := rows.Scan(&r.ID, &eventType, &r.AggregateID, &r.Payload, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		r.EventType = Type(eventType)
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarkPublished stamps the given records as published.
func (o *PostgresOutbox) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	_, err := o.db.ExecContext(ctx,
		`UPDATE case_note_outbox SET published_at = $2 WHERE id = ANY($1::uuid[])`,
		pq.Array(raw), o.now())
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
