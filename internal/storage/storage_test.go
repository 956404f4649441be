package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/candidate-ranker/internal/storage/dataset"
	"github.com/spigell/candidate-ranker/internal/storage/jsonfile"
	"github.com/spigell/candidate-ranker/internal/storage/sqlstore"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	file, err := Open(ctx, Config{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &jsonfile.Store{}, file)

	db, err := Open(ctx, Config{Driver: "SQLite", Path: filepath.Join(dir, "c.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	assert.IsType(t, &sqlstore.Store{}, db)

	_, err = Open(ctx, Config{Driver: "mongo"}, nil)
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestOpenPostgresNeedsDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Open(context.Background(), Config{Driver: DriverPostgres}, nil)
	assert.ErrorContains(t, err, "postgres dsn is not configured")
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "c.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	saved, err := Import(ctx, store, []byte(`[
		{"id": "fixed", "name": "Ann", "skills": ["Go"], "yearsOfExperience": 3},
		{"name": "Bo", "skills": [], "yearsOfExperience": 1, "location": "Remote"}
	]`))
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "fixed", saved[0].ID)
	assert.NotEmpty(t, saved[1].ID)

	listed, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, listed)

	_, err = Import(ctx, store, []byte(`{"not": "a pool"}`))
	var verr *dataset.ValidationError
	assert.ErrorAs(t, err, &verr)
}
