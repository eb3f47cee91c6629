// Package tokeninfo decodes the claims of a JWT session token for display.
//
// Nothing here verifies a signature or enforces expiry: the client treats
// the token as opaque for every session decision and only shows what the
// token says about itself.
package tokeninfo

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Info is the displayable subset of a token's claims. Zero times mean the
// claim was absent.
type Info struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token claims to be expired at now. Tokens
// without an exp claim never expire.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Inspect parses token without verification. ok is false when the token
// is not a JWT.
func Inspect(token string) (Info, bool) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Info{}, false
	}

	info := Info{Subject: c.Subject, Email: c.Email}
	if c.IssuedAt != nil {
		info.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		info.ExpiresAt = c.ExpiresAt.Time
	}
	return info, true
}
