package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrValidation: the payload was rejected, either by the client-side
	// registration checks or by the server (duplicate email, weak password).
	ErrValidation = errors.New("validation error")
	// ErrAuthentication: credentials or the attached token were rejected.
	ErrAuthentication = errors.New("authentication error")
	// ErrNetwork: the request never produced an HTTP response.
	ErrNetwork = errors.New("network error")
	// ErrServer: any other unexpected status or an undecodable response.
	ErrServer = errors.New("server error")
)

// Error carries a kind, the HTTP status (0 when no response was received)
// and a message fit for showing to the user.
type Error struct {
	Kind   error
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Kind.Error()
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError builds a client-side validation failure.
func NewValidationError(detail string) *Error {
	return &Error{Kind: ErrValidation, Detail: detail}
}

// kindForStatus maps a non-2xx status onto an error kind.
func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthentication
	default:
		return ErrServer
	}
}

// responseError converts a non-2xx response body into an *Error. The
// server's detail text is used when present, fallback otherwise.
func responseError(status int, body []byte, fallback string) *Error {
	detail := parseDetail(body)
	if detail == "" {
		detail = fallback
	}
	return &Error{Kind: kindForStatus(status), Status: status, Detail: detail}
}

// parseDetail understands {"detail": "text"} and the validation form
// {"detail": [{"msg": "...", "loc": [...]}, ...]}.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if m := strings.TrimSpace(it.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
