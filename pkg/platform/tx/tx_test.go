package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTxNilIsNoop(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, WithTx(ctx, nil))

	_, ok := From(ctx)
	assert.False(t, ok)
}

func TestExecFallsBackToDB(t *testing.T) {
	db := &sql.DB{}
	assert.Same(t, db, Exec(context.Background(), db))
}

func TestExecPrefersContextTx(t *testing.T) {
	sqlTx := &sql.Tx{}
	ctx := WithTx(context.Background(), sqlTx)

	got, ok := From(ctx)
	assert.True(t, ok)
	assert.Same(t, sqlTx, got)
	assert.Same(t, sqlTx, Exec(ctx, &sql.DB{}))
}

func TestLocalRunnerRunsUnitOfWork(t *testing.T) {
	var r LocalRunner
	calls := 0
	err := r.RunInTx(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := assert.AnError
	assert.ErrorIs(t, r.RunInTx(context.Background(), func(context.Context) error { return boom }), boom)
}
