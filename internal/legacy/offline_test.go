package legacy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casenotes/internal/casenote/models"
	"casenotes/pkg/platform/sentinel"
)

func TestOffline(t *testing.T) {
	ctx := context.Background()
	var gw Offline

	page, err := gw.ListNotes(ctx, "A1234AA", models.Filter{}, models.PageRequest{Page: 2, Size: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 2, page.Number)

	_, err = gw.GetNote(ctx, "A1234AA", 1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = gw.CreateNote(ctx, "A1234AA", models.LegacyCreateRequest{})
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	var legacyErr *Error
	require.True(t, errors.As(err, &legacyErr))
	assert.Equal(t, CategoryTransport, legacyErr.Category)
}
