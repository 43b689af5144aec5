// Package session owns the signed-in user's lifecycle.
//
// Store is a small state machine:
//
//	Initializing ──Restore──▶ Authenticated | Unauthenticated
//	any          ──SignIn───▶ Authenticated
//	any          ──SignOut──▶ Unauthenticated
//
// It is the single source of truth for who is logged in, keeps the persisted
// token and profile in sync with memory, and is the only writer of the
// shared HTTP credentials. Navigation is decided by RouteGuard, a pure
// function of (state, route group) that the presentation layer re-evaluates
// after every transition.
package session
