package credstore

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/dbmelt/internal/client/config"
	"github.com/dmitrijs2005/dbmelt/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/dbmelt/internal/client/storage"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the store selected by cfg.StoreBackend, scoped to the origin
// of cfg.APIBaseURL. The returned Closer releases the backend connection.
func Open(ctx context.Context, cfg *config.Config) (Store, io.Closer, error) {
	origin := Origin(cfg.APIBaseURL)

	switch cfg.StoreBackend {
	case config.StoreMemory:
		return NewMemoryStore(), nopCloser{}, nil

	case config.StoreSQLite, "":
		db, err := storage.Open(ctx, cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return NewSQLiteStore(localstorage.NewSQLiteRepository(db, origin)), db, nil

	case config.StoreRedis:
		rdb, err := OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis store: %w", err)
		}
		return NewRedisStore(rdb, origin), rdb, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
