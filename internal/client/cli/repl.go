package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/dbmelt/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The available commands depend on a.isLoggedIn(); a command meant for the
// other state prints a hint instead of running. Command errors are printed
// and the loop continues. It returns on EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("dbmelt (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, status, exit")
			}

		case "register", "login":
			if a.isLoggedIn() {
				printlnFn("You are already logged in. Use 'logout' first.")
				continue
			}
			if cmd == "register" {
				cmdErr = a.Register(ctx)
			} else {
				cmdErr = a.Login(ctx)
			}

		case "whoami", "logout":
			if !a.isLoggedIn() {
				printlnFn("You are not logged in. Use 'login' or 'register'.")
				continue
			}
			if cmd == "whoami" {
				cmdErr = a.WhoAmI(ctx)
			} else {
				cmdErr = a.Logout(ctx)
			}

		case "status":
			cmdErr = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", services.Message(cmdErr))
		}
	}
}
