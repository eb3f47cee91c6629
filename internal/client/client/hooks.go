package client

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)

// RequestHook mutates an outbound request before it is sent. A hook error
// aborts the request.
type RequestHook func(req *http.Request) error

// BearerHook reads tokens on every call and attaches the token as a bearer
// credential. When no token is stored the Authorization header is removed,
// so the server alone decides whether the call is permitted.
func BearerHook(tokens TokenSource) RequestHook {
	return func(req *http.Request) error {
		token, ok, err := tokens.Get(req.Context())
		if err != nil {
			return fmt.Errorf("read credential store: %w", err)
		}
		if !ok || token == "" {
			req.Header.Del(HeaderAuthorization)
			return nil
		}
		req.Header.Set(HeaderAuthorization, "Bearer "+token)
		return nil
	}
}

// RequestIDHook stamps each request with a fresh UUID unless the caller
// already set one.
func RequestIDHook(req *http.Request) error {
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}
	return nil
}
