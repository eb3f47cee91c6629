package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/dbmelt/internal/client/config"
	"github.com/dmitrijs2005/dbmelt/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/dbmelt/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory func(t *testing.T) Store

func backends(t *testing.T) map[string]storeFactory {
	t.Helper()
	f := map[string]storeFactory{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store {
			db, err := storage.Open(context.Background(), ":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			return NewSQLiteStore(localstorage.NewSQLiteRepository(db, "http://localhost:8000"))
		},
	}
	if url := os.Getenv("DBMELT_TEST_REDIS_URL"); url != "" {
		f["redis"] = func(t *testing.T) Store {
			rdb, err := OpenRedis(context.Background(), url)
			require.NoError(t, err)
			t.Cleanup(func() { _ = rdb.Close() })
			s := NewRedisStore(rdb, "test-"+t.Name())
			t.Cleanup(func() { _ = s.Remove(context.Background()) })
			return s
		}
	}
	return f
}

func TestStore_Contract(t *testing.T) {
	for name, newStore := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("fresh store is empty", func(t *testing.T) {
				s := newStore(t)
				_, ok, err := s.Get(ctx)
				require.NoError(t, err)
				assert.False(t, ok)

				present, err := s.IsPresent(ctx)
				require.NoError(t, err)
				assert.False(t, present)
			})

			t.Run("round trip", func(t *testing.T) {
				s := newStore(t)
				for _, tok := range []string{"tok1", "eyJhbGciOiJIUzI1NiJ9.e30.sig", "ünïcødé token"} {
					require.NoError(t, s.Set(ctx, tok))

					got, ok, err := s.Get(ctx)
					require.NoError(t, err)
					assert.True(t, ok)
					assert.Equal(t, tok, got)

					present, err := s.IsPresent(ctx)
					require.NoError(t, err)
					assert.True(t, present)
				}
			})

			t.Run("set overwrites", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Set(ctx, "old"))
				require.NoError(t, s.Set(ctx, "new"))

				got, _, err := s.Get(ctx)
				require.NoError(t, err)
				assert.Equal(t, "new", got)
			})

			t.Run("remove is idempotent", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Set(ctx, "tok1"))

				require.NoError(t, s.Remove(ctx))
				present, err := s.IsPresent(ctx)
				require.NoError(t, err)
				assert.False(t, present)

				require.NoError(t, s.Remove(ctx))
				present, err = s.IsPresent(ctx)
				require.NoError(t, err)
				assert.False(t, present)
			})

			t.Run("empty token is absent", func(t *testing.T) {
				s := newStore(t)
				require.NoError(t, s.Set(ctx, ""))

				present, err := s.IsPresent(ctx)
				require.NoError(t, err)
				assert.False(t, present)
			})
		})
	}
}

func TestOrigin(t *testing.T) {
	tests := map[string]string{
		"http://localhost:8000/api/v1":     "http://localhost:8000",
		"https://API.dbmelt.example/api/":  "https://api.dbmelt.example",
		"http://127.0.0.1:8000":            "http://127.0.0.1:8000",
		"not a url/":                       "not a url",
		"  http://localhost:8000/api/v1  ": "http://localhost:8000",
	}
	for in, want := range tests {
		assert.Equal(t, want, Origin(in), "Origin(%q)", in)
	}
}

func TestOpen_SQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorePath = filepath.Join(t.TempDir(), "session.db")

	s, closer, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "tok1"))
	require.NoError(t, closer.Close())

	s, closer, err = Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })

	got, ok, err := s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok1", got)
}

func TestOpen_SQLiteScopedByOrigin(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	a := &config.Config{APIBaseURL: "http://localhost:8000/api/v1", StoreBackend: config.StoreSQLite, StorePath: path}
	sa, ca, err := Open(ctx, a)
	require.NoError(t, err)
	require.NoError(t, sa.Set(ctx, "tok-a"))
	require.NoError(t, ca.Close())

	b := &config.Config{APIBaseURL: "https://prod.example/api/v1", StoreBackend: config.StoreSQLite, StorePath: path}
	sb, cb, err := Open(ctx, b)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cb.Close() })

	present, err := sb.IsPresent(ctx)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestOpen_MemoryAndUnknown(t *testing.T) {
	ctx := context.Background()

	s, closer, err := Open(ctx, &config.Config{StoreBackend: config.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.NoError(t, closer.Close())

	_, _, err = Open(ctx, &config.Config{StoreBackend: "cookie"})
	require.ErrorContains(t, err, `unknown store backend "cookie"`)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StoreBackend: config.StoreRedis, RedisURL: "not-a-redis-url"})
	require.ErrorContains(t, err, "open redis store")
}
