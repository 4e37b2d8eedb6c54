package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"casenotes/internal/casenote/models"
)

func TestBuildFilterQuery(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("person only hides sensitive notes", func(t *testing.T) {
		query, args := buildFilterQuery("A1234AA", models.Filter{})
		assert.Contains(t, query, "UPPER(n.person_identifier) = UPPER($1)")
		assert.Contains(t, query, "NOT st.sensitive")
		assert.Contains(t, query, "n.deleted_at IS NULL")
		assert.Equal(t, []any{"A1234AA"}, args)
	})

	t.Run("type and attribute clauses are numbered in order", func(t *testing.T) {
		query, args := buildFilterQuery("A1234AA", models.Filter{
			IncludeSensitive: true,
			Types: []models.TypeFilter{
				{Type: "OBS", SubTypes: []string{"GEN", "SP"}},
				{Type: "POS"},
			},
			From:           &from,
			LocationID:     "MDI",
			AuthorUsername: "jsmith",
		})
		assert.NotContains(t, query, "NOT st.sensitive")
		assert.Contains(t, query, "(n.type_code = $2 AND n.sub_type_code = ANY($3::text[])) OR n.type_code = $4")
		assert.Contains(t, query, "n.occurred_at >= $5")
		assert.Contains(t, query, "n.location_id = $6")
		assert.Contains(t, query, "UPPER(n.author_username) = UPPER($7)")
		assert.Len(t, args, 7)
	})
}
