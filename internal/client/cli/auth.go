package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dbmelt/internal/client/models"
	"github.com/dmitrijs2005/dbmelt/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the registration form and creates an account. Empty
// answers to the optional questions are left out of the request. Both
// password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Full name (optional)", a.out)
	if err != nil {
		return err
	}
	referral, err := getSimpleText(a.reader, "Referral code (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirm)

	u, err := a.session.Register(ctx, models.RegisterForm{
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
		FullName:        fullName,
		ReferralCode:    referral,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.DisplayName())
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	u, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	return nil
}

// Logout ends the session. The session is gone even when the store could
// not delete the token; that failure is only logged.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout left a token behind", "error", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
