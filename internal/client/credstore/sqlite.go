package credstore

import (
	"context"

	"github.com/dmitrijs2005/dbmelt/internal/client/repositories/localstorage"
)

// SQLiteStore keeps the token in the origin-scoped local_storage table.
type SQLiteStore struct {
	repo localstorage.Repository
}

func NewSQLiteStore(repo localstorage.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	return s.repo.Set(ctx, TokenKey, token)
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	token, ok, err := s.repo.Get(ctx, TokenKey)
	if err != nil {
		return "", false, err
	}
	return token, ok && token != "", nil
}

func (s *SQLiteStore) Remove(ctx context.Context) error {
	return s.repo.Delete(ctx, TokenKey)
}

func (s *SQLiteStore) IsPresent(ctx context.Context) (bool, error) {
	return isPresent(ctx, s)
}
