package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"casenotes/internal/casenote/models"
	"casenotes/pkg/platform/sentinel"
	txcontext "casenotes/pkg/platform/tx"
)

// PostgresStore persists local case notes in PostgreSQL. Sensitivity and
// descriptions are read from the sub-type catalog rather than stored per note.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed case note store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectNotes = `
	SELECT n.id, n.seq, n.person_identifier, n.type_code, t.description,
		   n.sub_type_code, st.description, n.source, n.note_text, n.location_id,
		   n.author_username, n.author_name, n.author_user_id,
		   n.occurred_at, n.created_at, n.modified_at,
		   n.system_generated, n.legacy_id, st.sensitive
	FROM case_notes n
	JOIN case_note_types t ON t.code = n.type_code
	JOIN case_note_sub_types st ON st.type_code = n.type_code AND st.code = n.sub_type_code
	WHERE n.deleted_at IS NULL`

func (s *PostgresStore) Save(ctx context.Context, note *models.CaseNote) (*models.CaseNote, error) {
	noteID, ok := note.ID.Local()
	if !ok {
		return nil, fmt.Errorf("save case note: %q is not a local identifier", note.ID)
	}
	query := `
		INSERT INTO case_notes (
			id, person_identifier, type_code, sub_type_code, source, note_text,
			location_id, author_username, author_name, author_user_id,
			occurred_at, created_at, modified_at, system_generated, legacy_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING seq
	`
	var legacyID sql.NullInt64
	if note.LegacyID != nil {
		legacyID = sql.NullInt64{Int64: *note.LegacyID, Valid: true}
	}

	exec := txcontext.Exec(ctx, s.db)
	saved := cloneNote(note)
	err := exec.QueryRowContext(ctx, query,
		noteID,
		note.PersonIdentifier,
		note.Type,
		note.SubType,
		note.Source,
		note.Text,
		note.LocationID,
		note.AuthorUsername,
		note.AuthorName,
		note.AuthorUserID,
		note.OccurredAt,
		note.CreatedAt,
		note.ModifiedAt,
		note.SystemGenerated,
		legacyID,
	).Scan(&saved.Sequence)
	if err != nil {
		return nil, fmt.Errorf("insert case note: %w", err)
	}

	for _, a := range note.Amendments {
		if err := insertAmendment(ctx, exec, noteID, a); err != nil {
			return nil, err
		}
	}
	return saved, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.CaseNote, error) {
	return s.findOne(ctx, selectNotes+` AND n.id = $1`, id)
}

func (s *PostgresStore) FindByLegacyID(ctx context.Context, legacyID int64) (*models.CaseNote, error) {
	return s.findOne(ctx, selectNotes+` AND n.legacy_id = $1`, legacyID)
}

// FindByFilter returns every matching, non-deleted note of the person in
// insertion order.
func (s *PostgresStore) FindByFilter(ctx context.Context, personID string, filter models.Filter) ([]*models.CaseNote, error) {
	query, args := buildFilterQuery(personID, filter)
	exec := txcontext.Exec(ctx, s.db)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query case notes: %w", err)
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadAmendments(ctx, exec, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Refresh re-reads a saved note so generated columns and catalog
// descriptions are populated.
func (s *PostgresStore) Refresh(ctx context.Context, note *models.CaseNote) (*models.CaseNote, error) {
	id, ok := note.ID.Local()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// AddAmendment appends an amendment and bumps the note's modification time.
func (s *PostgresStore) AddAmendment(ctx context.Context, id uuid.UUID, amendment models.Amendment) (*models.CaseNote, error) {
	exec := txcontext.Exec(ctx, s.db)
	res, err := exec.ExecContext(ctx,
		`UPDATE case_notes SET modified_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, amendment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("touch case note: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	if err := insertAmendment(ctx, exec, id, amendment); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// SoftDelete hides a note from every read.
func (s *PostgresStore) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
		`UPDATE case_notes SET deleted_at = $2, modified_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at)
	if err != nil {
		return fmt.Errorf("soft delete case note: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, args ...any) (*models.CaseNote, error) {
	exec := txcontext.Exec(ctx, s.db)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find case note: %w", err)
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, sentinel.ErrNotFound
	}
	if err := s.loadAmendments(ctx, exec, notes[:1]); err != nil {
		return nil, err
	}
	return notes[0], nil
}

func (s *PostgresStore) loadAmendments(ctx context.Context, exec txcontext.Executor, notes []*models.CaseNote) error {
	if len(notes) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*models.CaseNote, len(notes))
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		id, _ := n.ID.Local()
		byID[id] = n
		ids = append(ids, id.String())
	}

	rows, err := exec.QueryContext(ctx, `
		SELECT id, case_note_id, author_username, author_name, author_user_id, note_text, created_at
		FROM case_note_amendments
		WHERE case_note_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query amendments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Amendment
		var noteID uuid.UUID
		if err := rows.Scan(&a.ID, &noteID, &a.AuthorUsername, &a.AuthorName, &a.AuthorUserID, &a.Text, &a.CreatedAt); err != nil {
			return fmt.Errorf("scan amendment: %w", err)
		}
		if n, ok := byID[noteID]; ok {
			n.Amendments = append(n.Amendments, a)
		}
	}
	return rows.Err()
}

func insertAmendment(ctx context.Context, exec txcontext.Executor, noteID uuid.UUID, a models.Amendment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := exec.ExecContext(ctx, `
		INSERT INTO case_note_amendments (id, case_note_id, author_username, author_name, author_user_id, note_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, noteID, a.AuthorUsername, a.AuthorName, a.AuthorUserID, a.Text, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert amendment: %w", err)
	}
	return nil
}

func buildFilterQuery(personID string, filter models.Filter) (string, []any) {
	var b strings.Builder
	b.WriteString(selectNotes)
	args := []any{personID}
	b.WriteString(` AND UPPER(n.person_identifier) = UPPER($1)`)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.IncludeSensitive {
		b.WriteString(` AND NOT st.sensitive`)
	}
	if len(filter.Types) > 0 {
		clauses := make([]string, 0, len(filter.Types))
		for _, tf := range filter.Types {
			if len(tf.SubTypes) == 0 {
				clauses = append(clauses, "n.type_code = "+arg(tf.Type))
				continue
			}
			clauses = append(clauses, fmt.Sprintf("(n.type_code = %s AND n.sub_type_code = ANY(%s::text[]))",
				arg(tf.Type), arg(pq.Array(tf.SubTypes))))
		}
		b.WriteString(" AND (" + strings.Join(clauses, " OR ") + ")")
	}
	if filter.From != nil {
		b.WriteString(" AND n.occurred_at >= " + arg(*filter.From))
	}
	if filter.To != nil {
		b.WriteString(" AND n.occurred_at <= " + arg(*filter.To))
	}
	if filter.LocationID != "" {
		b.WriteString(" AND n.location_id = " + arg(filter.LocationID))
	}
	if filter.AuthorUsername != "" {
		b.WriteString(" AND UPPER(n.author_username) = UPPER(" + arg(filter.AuthorUsername) + ")")
	}
	b.WriteString(" ORDER BY n.seq")
	return b.String(), args
}

func scanNotes(rows *sql.Rows) ([]*models.CaseNote, error) {
	var notes []*models.CaseNote
	for rows.Next() {
		var (
			n        models.CaseNote
			id       uuid.UUID
			legacyID sql.NullInt64
		)
		err := rows.Scan(
			&id, &n.Sequence, &n.PersonIdentifier, &n.Type, &n.TypeDescription,
			&n.SubType, &n.SubTypeDescription, &n.Source, &n.Text, &n.LocationID,
			&n.AuthorUsername, &n.AuthorName, &n.AuthorUserID,
			&n.OccurredAt, &n.CreatedAt, &n.ModifiedAt,
			&n.SystemGenerated, &legacyID, &n.Sensitive,
		)
		if err != nil {
			return nil, fmt.Errorf("scan case note: %w", err)
		}
		n.ID = models.NewLocalID(id)
		if legacyID.Valid {
			v := legacyID.Int64
			n.LegacyID = &v
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case notes: %w", err)
	}
	return notes, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
