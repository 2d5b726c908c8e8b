package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paolobenve/wanderlust/internal/store"
	"github.com/paolobenve/wanderlust/testutil"
)

// newPGStore applies the schema and returns a PGStore over a real database.
// Skipped automatically when TEST_DATABASE_URL is not set.
func newPGStore(t *testing.T) *store.PGStore {
	t.Helper()
	db := testutil.NewSQLDB(t)
	testutil.MigrateUp(t, db)
	return store.NewPGStore(testutil.NewPool(t))
}

func TestPGStore_ReadAbsentKey(t *testing.T) {
	s := newPGStore(t)

	data, err := s.Read(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestPGStore_WriteThenRead(t *testing.T) {
	s := newPGStore(t)

	require.NoError(t, s.Write(context.Background(), store.TripsKey, []byte(`[{"id":"t1"}]`)))

	data, err := s.Read(context.Background(), store.TripsKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"t1"}]`), data)
}

func TestPGStore_UpsertReplacesValue(t *testing.T) {
	s := newPGStore(t)

	require.NoError(t, s.Write(context.Background(), "k", []byte("first")))
	require.NoError(t, s.Write(context.Background(), "k", []byte("second")))

	data, err := s.Read(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestPGStore_KeysAreIndependent(t *testing.T) {
	s := newPGStore(t)

	require.NoError(t, s.Write(context.Background(), store.TripsKey, []byte("[]")))
	require.NoError(t, s.Write(context.Background(), store.ExpensesKey, []byte("{}")))

	trips, err := s.Read(context.Background(), store.TripsKey)
	require.NoError(t, err)
	expenses, err := s.Read(context.Background(), store.ExpensesKey)
	require.NoError(t, err)

	assert.Equal(t, []byte("[]"), trips)
	assert.Equal(t, []byte("{}"), expenses)
}
