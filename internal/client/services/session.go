// Package services contains application services for the DBMelt client.
// This file defines the session controller: the two-state machine that
// decides whether the dashboard is reachable and the only writer of the
// credential store.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/dbmelt/internal/client/client"
	"github.com/dmitrijs2005/dbmelt/internal/client/credstore"
	"github.com/dmitrijs2005/dbmelt/internal/client/models"
	"github.com/dmitrijs2005/dbmelt/internal/client/tokeninfo"
	"github.com/dmitrijs2005/dbmelt/internal/logging"
	"github.com/dmitrijs2005/dbmelt/internal/shared"
)

type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// Client-side registration messages.
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password must be at least 8 characters long"
)

// ErrNoSessionIssued is returned when register/login succeeded on the
// server but the response carried no token (e.g. e-mail verification is
// pending). The controller stays unauthenticated.
var ErrNoSessionIssued = errors.New("the server did not issue a session; verify your email and log in")

// SessionService defines the session operations for the CLI.
//
// Contract:
//   - Start: derive the initial state from the credential store alone.
//   - Register / Login: authenticate against the server; on success persist
//     the token, then become authenticated. Failures change nothing.
//   - Logout: forget the user and the token; always ends unauthenticated.
//   - RefreshUser: the "who am I" call that rebuilds the profile.
//   - TokenStatus: display-only view of the stored token.
type SessionService interface {
	Start(ctx context.Context) State
	Register(ctx context.Context, form models.RegisterForm) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	RefreshUser(ctx context.Context) (*models.User, error)
	State() State
	IsAuthenticated() bool
	User() *models.User
	TokenStatus(ctx context.Context) (TokenStatus, error)
}

// TokenStatus describes the stored token without exposing it. Claims is
// only meaningful when JWT is true.
type TokenStatus struct {
	Present bool
	Masked  string
	JWT     bool
	Claims  tokeninfo.Info
}

type sessionController struct {
	api   client.Client
	store credstore.Store
	log   logging.Logger

	mu    sync.RWMutex
	state State
	user  *models.User
}

// NewSessionController builds a controller in the unauthenticated state.
func NewSessionController(api client.Client, store credstore.Store, log logging.Logger) SessionService {
	return &sessionController{
		api:   api,
		store: store,
		log:   log.With("component", "session"),
		state: StateUnauthenticated,
	}
}

// Start applies trust-on-presence: a stored token is taken as a valid
// session without asking the server. The profile is not restored; call
// RefreshUser to rebuild it. A revoked or expired token therefore grants
// the dashboard until the first API call fails.
func (s *sessionController) Start(ctx context.Context) State {
	present, err := s.store.IsPresent(ctx)
	if err != nil {
		s.log.Warn(ctx, "credential store unreadable, starting unauthenticated", "error", err)
		present = false
	}

	next := StateUnauthenticated
	if present {
		next = StateAuthenticated
	}

	s.mu.Lock()
	s.state = next
	s.user = nil
	s.mu.Unlock()

	s.log.Info(ctx, "session started", "state", next)
	return next
}

func (s *sessionController) Register(ctx context.Context, form models.RegisterForm) (*models.User, error) {
	if err := validateRegistration(form); err != nil {
		return nil, err
	}

	res, err := s.api.Register(ctx, form.Request())
	if err != nil {
		s.log.Info(ctx, "registration rejected", "email", form.Email, "error", err)
		return nil, err
	}
	return s.establish(ctx, form.Email, res)
}

// Login has no client-side password gate; the server decides.
func (s *sessionController) Login(ctx context.Context, email, password string) (*models.User, error) {
	res, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.log.Info(ctx, "login rejected", "email", email, "error", err)
		return nil, err
	}
	return s.establish(ctx, email, res)
}

// establish writes the token, then commits the authenticated state.
func (s *sessionController) establish(ctx context.Context, email string, res *models.AuthResult) (*models.User, error) {
	if res.Token == "" {
		return nil, ErrNoSessionIssued
	}

	if err := s.store.Set(ctx, res.Token); err != nil {
		return nil, fmt.Errorf("could not save session: %w", err)
	}

	user := res.User
	if user == nil {
		user = &models.User{Email: email}
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()

	s.log.Info(ctx, "session established", "email", user.Email)
	return user, nil
}

// Logout always leaves the controller unauthenticated. The returned error
// only reports a durable store that failed to delete the token.
func (s *sessionController) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Remove(ctx); err != nil {
		s.log.Error(ctx, "could not remove stored token", "error", err)
		return fmt.Errorf("remove stored token: %w", err)
	}

	s.log.Info(ctx, "logged out")
	return nil
}

// RefreshUser asks the server who the stored token belongs to. Success
// replaces the current profile while authenticated; failure leaves the
// state as it was.
func (s *sessionController) RefreshUser(ctx context.Context) (*models.User, error) {
	user, err := s.api.GetCurrentUser(ctx)
	if err != nil {
		if errors.Is(err, client.ErrAuthentication) {
			s.log.Warn(ctx, "stored token rejected by server", "error", err)
		}
		return nil, err
	}

	s.mu.Lock()
	if s.state == StateAuthenticated {
		s.user = user
	}
	s.mu.Unlock()

	return user, nil
}

func (s *sessionController) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *sessionController) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

func (s *sessionController) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *sessionController) TokenStatus(ctx context.Context) (TokenStatus, error) {
	token, ok, err := s.store.Get(ctx)
	if err != nil {
		return TokenStatus{}, fmt.Errorf("read stored token: %w", err)
	}
	if !ok {
		return TokenStatus{}, nil
	}

	st := TokenStatus{Present: true, Masked: shared.MaskToken(token)}
	st.Claims, st.JWT = tokeninfo.Inspect(token)
	return st, nil
}

// validateRegistration runs the pre-submission checks in order: the
// confirmation must match, then the password needs MinPasswordLength runes.
func validateRegistration(form models.RegisterForm) error {
	if form.Password != form.ConfirmPassword {
		return client.NewValidationError(MsgPasswordMismatch)
	}
	if utf8.RuneCountInString(form.Password) < models.MinPasswordLength {
		return client.NewValidationError(MsgPasswordTooShort)
	}
	return nil
}

// Message turns any error from this package into a line for the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled."
	}
	return err.Error()
}
