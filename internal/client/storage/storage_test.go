package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_InMemoryCreatesSchema(t *testing.T) {
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='local_storage'`).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "local_storage", name)
}

func TestOpen_FileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dbmelt.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO local_storage(origin, key, value) VALUES ('o', 'k', 'v')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err, "migrations must be idempotent")
	t.Cleanup(func() { _ = db.Close() })

	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM local_storage WHERE origin='o' AND key='k'`).Scan(&v))
	require.Equal(t, "v", v)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "dbmelt.db")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = os.Stat(path)
	require.NoError(t, err)
}
