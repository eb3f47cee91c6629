// Package credstore holds the single session token of the DBMelt client.
//
// A Store is a durable one-slot cell scoped to an origin (the API's
// scheme://host:port). It survives process restarts for the sqlite and
// redis backends; it applies no encryption and no expiry. The session
// controller is its only writer; the API gateway reads it on every request.
package credstore

import (
	"context"
	"net/url"
	"strings"
)

// TokenKey is the storage key of the session token.
const TokenKey = "access_token"

type Store interface {
	// Set persists token, overwriting any prior value.
	Set(ctx context.Context, token string) error
	// Get returns the stored token; ok is false when none is stored. An
	// empty stored value counts as absent.
	Get(ctx context.Context) (token string, ok bool, err error)
	// Remove deletes the token. Removing an absent token is a no-op.
	Remove(ctx context.Context) error
	// IsPresent reports whether Get would return a token.
	IsPresent(ctx context.Context) (bool, error)
}

// Origin reduces an API base URL to the scope tokens are stored under,
// e.g. "http://localhost:8000/api/v1" -> "http://localhost:8000".
func Origin(baseURL string) string {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}

func isPresent(ctx context.Context, s Store) (bool, error) {
	_, ok, err := s.Get(ctx)
	return ok, err
}
