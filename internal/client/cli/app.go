package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/dbmelt/internal/client/client"
	"github.com/dmitrijs2005/dbmelt/internal/client/config"
	"github.com/dmitrijs2005/dbmelt/internal/client/credstore"
	"github.com/dmitrijs2005/dbmelt/internal/client/services"
	"github.com/dmitrijs2005/dbmelt/internal/logging"
)

type App struct {
	config  *config.Config
	session services.SessionService
	log     logging.Logger
	closer  io.Closer
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the credential store selected by c, the API gateway on top
// of it and the session controller that owns both.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, os.Stderr)

	store, closer, err := credstore.Open(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening credential store", "backend", c.StoreBackend, "error", err)
		return nil, err
	}

	api := client.New(c.APIBaseURL, store, client.WithLogger(log))
	session := services.NewSessionController(api, store, log)

	return &App{
		config:  c,
		session: session,
		log:     log,
		closer:  closer,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the session and blocks in the REPL until the user exits or
// stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.closer.Close(); err != nil {
			a.log.Warn(ctx, "error closing credential store", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to DBMelt CLI (type 'help' for commands)")

	switch a.session.Start(ctx) {
	case services.StateAuthenticated:
		fmt.Fprintln(a.out, "Session restored. Use 'whoami' to load your profile.")
	default:
		fmt.Fprintln(a.out, "Not logged in. Use 'login' or 'register'.")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if !a.session.IsAuthenticated() {
		return "guest"
	}
	if u := a.session.User(); u != nil {
		return u.Email
	}
	return "authenticated"
}
