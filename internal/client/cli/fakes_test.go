package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dbmelt/internal/client/config"
	"github.com/dmitrijs2005/dbmelt/internal/client/models"
	"github.com/dmitrijs2005/dbmelt/internal/client/services"
	"github.com/dmitrijs2005/dbmelt/internal/logging"
)

type fakeSession struct {
	state services.State
	user  *models.User

	startCalled bool
	regForm     models.RegisterForm
	regErr      error
	loginEmail  string
	loginPass   string
	loginErr    error
	logoutErr   error
	refreshUser *models.User
	refreshErr  error
	token       services.TokenStatus
	tokenErr    error
}

func (f *fakeSession) Start(context.Context) services.State {
	f.startCalled = true
	if f.state == "" {
		f.state = services.StateUnauthenticated
	}
	return f.state
}

func (f *fakeSession) Register(_ context.Context, form models.RegisterForm) (*models.User, error) {
	f.regForm = form
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.state = services.StateAuthenticated
	f.user = &models.User{Email: form.Email, FullName: form.FullName}
	return f.user, nil
}

func (f *fakeSession) Login(_ context.Context, email, password string) (*models.User, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.state = services.StateAuthenticated
	f.user = &models.User{Email: email}
	return f.user, nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.state = services.StateUnauthenticated
	f.user = nil
	return f.logoutErr
}

func (f *fakeSession) RefreshUser(context.Context) (*models.User, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	f.user = f.refreshUser
	return f.refreshUser, nil
}

func (f *fakeSession) State() services.State { return f.state }
func (f *fakeSession) IsAuthenticated() bool  { return f.state == services.StateAuthenticated }
func (f *fakeSession) User() *models.User      { return f.user }

func (f *fakeSession) TokenStatus(context.Context) (services.TokenStatus, error) {
	return f.token, f.tokenErr
}

type nopCloser struct{ closed bool }

func (n *nopCloser) Close() error { n.closed = true; return nil }

func newTestApp(f *fakeSession, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		config:  &config.Config{APIBaseURL: "http://localhost:8000/api/v1", StoreBackend: config.StoreMemory},
		session: f,
		log:     logging.Nop(),
		closer:  &nopCloser{},
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     &out,
	}, &out
}

// silence swaps printlnFn for a recorder for the duration of the test.
func silence(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.TrimSuffix(toString(v), "\n"))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
