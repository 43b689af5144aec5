package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/grain/internal/client/feed"
	"github.com/dmitrijs2005/grain/internal/client/services"
	"github.com/dmitrijs2005/grain/internal/client/session"
	"github.com/dmitrijs2005/grain/internal/logging"
)

// Tagline is printed on the entry screen.
var Tagline = []string{
	"grain",
	"Beautiful free photos, one page at a time.",
	"Sign in to start browsing.",
}

// Deps are the collaborators the App is built from. Store must have been
// created with Router as its navigator.
type Deps struct {
	Store    *session.Store
	Auth     services.AuthService
	Feeds    services.FeedService
	Router   *Router
	PageSize int
	Logger   logging.Logger
	In       io.Reader
	Out      io.Writer
}

type App struct {
	store    *session.Store
	auth     services.AuthService
	feeds    services.FeedService
	router   *Router
	log      logging.Logger
	pageSize int
	reader   *bufio.Reader
	out      io.Writer

	mu     sync.Mutex
	home   *feed.Pager
	search *feed.Pager
	query  string

	unsubscribe func()
}

func NewApp(d Deps) *App {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	pageSize := d.PageSize
	if pageSize < 1 {
		pageSize = services.DefaultPerPage
	}
	router := d.Router
	if router == nil {
		router = NewRouter()
	}

	a := &App{
		store:    d.Store,
		auth:     d.Auth,
		feeds:    d.Feeds,
		router:   router,
		log:      log,
		pageSize: pageSize,
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
	}
	a.unsubscribe = a.store.Subscribe(a.onSessionChange)
	return a
}

// onSessionChange drops per-user screen state on sign-out and re-runs the
// route guard for the current screen.
func (a *App) onSessionChange(state session.State) {
	if state == session.StateUnauthenticated {
		a.mu.Lock()
		a.home, a.search, a.query = nil, nil, ""
		a.mu.Unlock()
	}
	if route, ok := session.RouteGuard(state, a.router.Current().Group()); ok {
		a.router.Replace(route)
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

// open switches to route unless the guard redirects elsewhere.
func (a *App) open(route session.Route) bool {
	if target, ok := a.store.Guard(route.Group()); ok {
		a.router.Replace(target)
		if target == session.RouteEntry {
			fmt.Fprintln(a.out, "Please log in first.")
		}
		return false
	}
	a.router.Replace(route)
	return true
}

func (a *App) status() string {
	s := string(a.router.Current())
	if sess := a.store.Session(); sess != nil {
		s = fmt.Sprintf("(%s) %s", sess.Username, s)
	}
	return s
}

// restore runs the session restore in the background and prints a progress
// line until it finishes.
func (a *App) restore(ctx context.Context) {
	done := make(chan error, 1)
	go func() { done <- a.store.Restore(ctx) }()

	fmt.Fprint(a.out, "Restoring session")
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			fmt.Fprintln(a.out)
			switch {
			case err == nil:
			case errors.Is(err, session.ErrSessionExpired):
				a.log.Info(ctx, "stored session expired")
			default:
				a.log.Error(ctx, "error restoring session", "error", err)
			}
			return
		case <-ticker.C:
			fmt.Fprint(a.out, ".")
		case <-ctx.Done():
			fmt.Fprintln(a.out)
			return
		}
	}
}

// Run restores the previous session, shows the first screen and starts the
// REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.unsubscribe()

	for _, line := range Tagline {
		fmt.Fprintln(a.out, line)
	}
	a.restore(ctx)

	if a.store.IsAuthenticated() {
		_ = a.Home(ctx)
	} else {
		fmt.Fprintln(a.out, "Type 'login' to sign in or 'help' for commands.")
	}

	runREPL(ctx, a, a.status, a.reader)
}
