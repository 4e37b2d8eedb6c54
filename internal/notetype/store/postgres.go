package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casenotes/internal/notetype/models"
	"casenotes/pkg/platform/sentinel"
)

// PostgresStore reads the local type catalog.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListTypes returns every parent type with its sub-types, in code order.
func (s *PostgresStore) ListTypes(ctx context.Context) ([]models.NoteType, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.code, t.description, t.active, t.sensitive,
			   st.code, st.description, st.active, st.sensitive, st.restricted_use, st.sync_to_legacy
		FROM case_note_types t
		LEFT JOIN case_note_sub_types st ON st.type_code = t.code
		ORDER BY t.code, st.code
	`)
	if err != nil {
		return nil, fmt.Errorf("query case note types: %w", err)
	}
	defer rows.Close()

	var types []models.NoteType
	for rows.Next() {
		var (
			t       models.NoteType
			subCode sql.NullString
			subDesc sql.NullString
			active  sql.NullBool
			sens    sql.NullBool
			restr   sql.NullBool
			sync    sql.NullBool
		)
		if err := rows.Scan(&t.Code, &t.Description, &t.Active, &t.Sensitive,
			&subCode, &subDesc, &active, &sens, &restr, &sync); err != nil {
			return nil, fmt.Errorf("scan case note type: %w", err)
		}
		if len(types) == 0 || types[len(types)-1].Code != t.Code {
			types = append(types, t)
		}
		if subCode.Valid {
			last := &types[len(types)-1]
			last.SubTypes = append(last.SubTypes, models.NoteSubType{
				Code:          subCode.String,
				Description:   subDesc.String,
				Active:        active.Bool,
				Sensitive:     sens.Bool,
				RestrictedUse: restr.Bool,
				SyncToLegacy:  sync.Bool,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case note types: %w", err)
	}
	return types, nil
}

// FindSubType resolves one sub-type with its parent.
func (s *PostgresStore) FindSubType(ctx context.Context, typeCode, subTypeCode string) (models.SubTypeRef, error) {
	var ref models.SubTypeRef
	err := s.db.QueryRowContext(ctx, `
		SELECT t.code, t.description, t.active,
			   st.code, st.description, st.active, st.sensitive, st.restricted_use, st.sync_to_legacy
		FROM case_note_sub_types st
		JOIN case_note_types t ON t.code = st.type_code
		WHERE st.type_code = $1 AND st.code = $2
	`, typeCode, subTypeCode).Scan(
		&ref.TypeCode, &ref.TypeDescription, &ref.TypeActive,
		&ref.Code, &ref.Description, &ref.Active, &ref.Sensitive, &ref.RestrictedUse, &ref.SyncToLegacy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SubTypeRef{}, sentinel.ErrNotFound
		}
		return models.SubTypeRef{}, fmt.Errorf("find case note sub-type: %w", err)
	}
	return ref, nil
}
