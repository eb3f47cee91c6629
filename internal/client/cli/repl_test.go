package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dbmelt/internal/client/client"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return f.err
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	if f.err == nil {
		f.loggedIn = true
	}
	return f.err
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return f.err
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

func runWith(exec execIface, input string) {
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runWith(exec, strings.Join([]string{
		"help",
		"status",
		"login",
		"help",
		"whoami",
		"logout",
		"foobar",
		"exit",
	}, "\n"))

	assert.Equal(t, []string{"status", "login", "whoami", "logout"}, exec.calls)
}

func TestRunREPL_CommandsGatedByState(t *testing.T) {
	out := silence(t)

	guest := &fakeExec{}
	runWith(guest, "whoami\nlogout\nquit\n")
	assert.Empty(t, guest.calls)
	assert.Contains(t, strings.Join(*out, "\n"), "You are not logged in")

	member := &fakeExec{loggedIn: true}
	runWith(member, "register\nlogin\nquit\n")
	assert.Empty(t, member.calls)
	assert.Contains(t, strings.Join(*out, "\n"), "already logged in")
}

func TestRunREPL_ErrorsAreShownAndLoopContinues(t *testing.T) {
	out := silence(t)

	exec := &fakeExec{err: &client.Error{Kind: client.ErrAuthentication, Detail: "Invalid email or password"}}
	runWith(exec, "login\nlogin\nexit\n")

	assert.Equal(t, []string{"login", "login"}, exec.calls)
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Error: Invalid email or password")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_EOFEnds(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runWith(exec, "status")

	assert.Equal(t, []string{"status"}, exec.calls, "last line without newline still runs")
}

func TestRunREPL_GenericError(t *testing.T) {
	out := silence(t)

	exec := &fakeExec{loggedIn: true, err: errors.New("boom")}
	runWith(exec, "whoami\n")

	assert.Contains(t, strings.Join(*out, "\n"), "Error: boom")
}
