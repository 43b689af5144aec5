// Package api holds the HTTP client bindings the grain client talks through.
//
// A Binding is a named client with a fixed base URL, headers fixed at
// creation time and a mutable map of default headers, mirroring how the
// account and photo APIs are consumed: the account binding gets a bearer
// token once the user signs in, the photo binding carries a Client-ID key
// from configuration.
//
// Credential headers are shared, process-wide state. Only the session store
// mutates them (SetBearerToken on sign-in and restore, ClearCredentials on
// sign-out); services only read them while sending requests.
//
// # Errors
//
// Non-2xx responses are returned as *StatusError; 401 and 403 additionally
// match ErrUnauthorized with errors.Is. Transport failures match
// ErrUnavailable.
package api
