package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/avasilyev/cmskeeper/internal/client/client"
	"github.com/avasilyev/cmskeeper/internal/client/session"
	"github.com/avasilyev/cmskeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and asks the session repository to establish
// a session. The repository never raises: the resulting status event drives
// the view, and LastFailure supplies a message to show the user. The password
// is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.sessions.LogIn(ctx, identifier, password)

	if err := a.sessions.LastFailure(); err != nil {
		printlnFn("Login failed:", failureMessage(err))
		return nil
	}
	printlnFn("Logged in.")
	return nil
}

// Register prompts for a username, an email and a password and attempts to
// create an account. Like Login, the outcome arrives as a status event.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.sessions.Register(ctx, username, email, password)

	if err := a.sessions.LastFailure(); err != nil {
		printlnFn("Registration failed:", failureMessage(err))
		return nil
	}
	printlnFn("Account created, you are logged in.")
	return nil
}

// Logout routes through the coordinator's logout signal; the unauthenticated
// state arriving asynchronously switches the view back to guest.
func (a *App) Logout(ctx context.Context) error {
	a.coordinator.RequestLogout(ctx)
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the identity carried by the current authentication state.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.state()
	if st.Status != session.StatusAuthenticated || st.User.IsEmpty() {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> (id %s)", st.User.Username, st.User.Email, st.User.ID))
	return nil
}

// SessionStatus shows when the stored session token expires.
func (a *App) SessionStatus(ctx context.Context) error {
	exp, err := a.apiClient.TokenExpiry(ctx)
	if err != nil {
		if errors.Is(err, client.ErrTokenNotFound) {
			printlnFn("No active session.")
			return nil
		}
		return err
	}
	printlnFn("Session expires " + exp.Local().Format(time.RFC1123))
	return nil
}

// failureMessage renders a credential service error for the user without
// leaking wire-level detail.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "invalid credentials"
	case errors.Is(err, client.ErrUnavailable):
		return "server unreachable, try again later"
	case errors.Is(err, client.ErrDecode):
		return "unexpected server response"
	default:
		return err.Error()
	}
}
