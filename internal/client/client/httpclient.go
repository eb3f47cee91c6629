package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/dbmelt/internal/client/models"
	"github.com/dmitrijs2005/dbmelt/internal/logging"
)

const (
	registerPath = "/auth/register"
	loginPath    = "/auth/login"
	mePath       = "/auth/me"

	contentTypeJSON = "application/json"
)

// Fallback messages used when the server gives no detail.
const (
	msgRegisterFailed = "Registration failed. Please try again."
	msgLoginFailed    = "Login failed. Please try again."
	msgMeFailed       = "Could not load your profile."
)

// HTTPClient is the single outbound entry point to the DBMelt REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	hooks   []RequestHook
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithRequestHook appends a hook that runs after the built-in ones.
func WithRequestHook(hook RequestHook) Option {
	return func(h *HTTPClient) { h.hooks = append(h.hooks, hook) }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// New builds an HTTPClient for baseURL that attaches tokens from tokens to
// every request. The default *http.Client has no timeout and never retries.
func New(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		hooks:   []RequestHook{BearerHook(tokens), RequestIDHook},
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalised API base address.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, registerPath, req, &res, msgRegisterFailed); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, loginPath, req, &res, msgLoginFailed); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, mePath, nil, &u, msgMeFailed); err != nil {
		return nil, err
	}
	return &u, nil
}

// do sends one JSON request, runs the hook chain and decodes a 2xx body
// into out. Failures come back as *Error.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	for _, hook := range c.hooks {
		if err := hook(req); err != nil {
			return err
		}
	}

	reqID := req.Header.Get(HeaderRequestID)
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return &Error{Kind: ErrNetwork, Detail: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request completed", "method", method, "path", path, "request_id", reqID, "status", resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: ErrNetwork, Status: resp.StatusCode, Detail: transportMessage(err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, data, fallback)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: ErrServer, Status: resp.StatusCode, Detail: "invalid response from server", Err: err}
	}
	return nil
}

// transportMessage unwraps *url.Error noise so the user sees the cause.
func transportMessage(err error) string {
	var ue interface{ Unwrap() error }
	if errors.As(err, &ue) && ue.Unwrap() != nil {
		return ue.Unwrap().Error()
	}
	return err.Error()
}
