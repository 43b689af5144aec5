package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/grain/internal/client/models"
	"github.com/dmitrijs2005/grain/internal/client/services"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

// Login prompts for credentials, authenticates against the account API and
// hands the session to the store, which persists it and opens the home
// screen. The password buffer is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if sess := a.store.Session(); sess != nil {
		fmt.Fprintf(a.out, "Already logged in as %s.\n", sess.Username)
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	sess, err := a.auth.Login(ctx, models.Credentials{Username: username, Password: string(password)})
	if err != nil {
		var ae *services.AuthError
		if errors.As(err, &ae) {
			fmt.Fprintln(a.out, ae.Message)
		} else {
			fmt.Fprintln(a.out, services.LoginFailedMessage)
		}
		a.log.Warn(ctx, "login failed", "username", username, "error", err)
		return err
	}

	if err := a.store.SignIn(ctx, sess); err != nil {
		fmt.Fprintln(a.out, "Could not save the session, please try again.")
		a.log.Error(ctx, "error signing in", "error", err)
		return err
	}

	return a.Home(ctx)
}

// Logout asks for confirmation and signs out. The store clears credentials
// and storage and returns to the entry screen.
func (a *App) Logout(ctx context.Context) error {
	if !a.store.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	ok, err := confirm(a.reader, "Are you sure you want to sign out?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.store.SignOut(ctx); err != nil {
		a.log.Error(ctx, "error clearing stored session", "error", err)
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
