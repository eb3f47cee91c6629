// Package client is the DBMelt API gateway: the single chokepoint for calls
// to the remote REST API.
//
// # Overview
//
// HTTPClient resolves every path against one configured base URL, sends and
// receives JSON, and runs a chain of RequestHooks on each request before it
// leaves the process. The first hook (BearerHook) reads the credential store
// on every call and attaches "Authorization: Bearer <token>" when a token is
// present; the second stamps an X-Request-ID.
//
// Operations: Register (POST /auth/register), Login (POST /auth/login) and
// GetCurrentUser (GET /auth/me). None of them retries, and none applies a
// client-side timeout; cancel through the context instead.
//
// # Error Handling
//
// Failures are returned as *Error whose kind matches one of the sentinels
// with errors.Is: ErrValidation, ErrAuthentication, ErrNetwork, ErrServer.
// Error() yields the server-supplied detail when there is one, a generic
// per-operation message otherwise.
package client
