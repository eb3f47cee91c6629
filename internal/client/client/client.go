package client

import (
	"context"

	"github.com/dmitrijs2005/dbmelt/internal/client/models"
)

// Client is the API contract the session controller depends on.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error)
	GetCurrentUser(ctx context.Context) (*models.User, error)
}

// TokenSource yields the current session token; ok is false when none is
// stored. credstore.Store satisfies it.
type TokenSource interface {
	Get(ctx context.Context) (token string, ok bool, err error)
}
