package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/grain/internal/client/session"
)

// Profile shows the signed-in user and when the access token expires.
func (a *App) Profile(ctx context.Context) error {
	if !a.open(session.RouteProfile) {
		return nil
	}
	sess := a.store.Session()
	if sess == nil {
		fmt.Fprintln(a.out, "Loading profile...")
		return nil
	}
	exp, ok := a.store.TokenExpiry()
	renderProfile(a.out, sess, exp, ok)
	fmt.Fprintln(a.out, "Type 'logout' to sign out.")
	return nil
}
