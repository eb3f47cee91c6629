package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/dbmelt/internal/client/client"
	"github.com/dmitrijs2005/dbmelt/internal/client/models"
)

// nowFn is a test seam for the clock used by Status.
var nowFn = time.Now

// WhoAmI loads the profile of the stored token from the server and prints
// it. A rejected token keeps the session; the user is told to log in again.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.session.RefreshUser(ctx)
	if err != nil {
		if errors.Is(err, client.ErrAuthentication) {
			fmt.Fprintln(a.out, "The server rejected your session. Use 'logout' and log in again.")
		}
		return err
	}
	printUser(a, u)
	return nil
}

// Status prints the local view of the session: state, cached profile and
// what the stored token claims about itself. It never contacts the server.
func (a *App) Status(ctx context.Context) error {
	fmt.Fprintf(a.out, "API:     %s\n", a.config.APIBaseURL)
	fmt.Fprintf(a.out, "Store:   %s\n", a.config.StoreBackend)
	fmt.Fprintf(a.out, "Session: %s\n", a.session.State())

	if u := a.session.User(); u != nil {
		fmt.Fprintf(a.out, "User:    %s\n", u.Email)
	}

	st, err := a.session.TokenStatus(ctx)
	if err != nil {
		return err
	}
	if !st.Present {
		fmt.Fprintln(a.out, "Token:   none")
		return nil
	}
	fmt.Fprintf(a.out, "Token:   %s\n", st.Masked)
	if !st.JWT {
		return nil
	}

	if st.Claims.Subject != "" {
		fmt.Fprintf(a.out, "Subject: %s\n", st.Claims.Subject)
	}
	if st.Claims.Email != "" {
		fmt.Fprintf(a.out, "Email:   %s\n", st.Claims.Email)
	}
	if !st.Claims.ExpiresAt.IsZero() {
		exp := st.Claims.ExpiresAt.Format(time.RFC3339)
		if st.Claims.Expired(nowFn()) {
			exp += " (expired)"
		}
		fmt.Fprintf(a.out, "Expires: %s\n", exp)
	}
	return nil
}

func printUser(a *App, u *models.User) {
	fmt.Fprintf(a.out, "Email: %s\n", u.Email)
	if u.FullName != "" {
		fmt.Fprintf(a.out, "Name:  %s\n", u.FullName)
	}
	if u.ID != "" {
		fmt.Fprintf(a.out, "ID:    %s\n", u.ID)
	}

	var extra []string
	for k := range u.Attributes {
		switch k {
		case "id", "email", "full_name":
			continue
		}
		extra = append(extra, k)
	}
	slices.Sort(extra)
	for _, k := range extra {
		fmt.Fprintf(a.out, "  %s: %s\n", k, strings.TrimSpace(string(u.Attributes[k])))
	}
}
