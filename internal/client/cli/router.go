package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/grain/internal/client/session"
)

// Router tracks the current screen. It implements session.Navigator.
type Router struct {
	mu      sync.Mutex
	current session.Route
}

func NewRouter() *Router {
	return &Router{current: session.RouteEntry}
}

func (r *Router) Replace(route session.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = route
}

func (r *Router) Current() session.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Alerter prints blocking notices. It implements session.Notifier.
type Alerter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewAlerter(w io.Writer) *Alerter {
	return &Alerter{w: w}
}

func (a *Alerter) Alert(title, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.w, "\n*** %s ***\n%s\n\n", title, message)
}
