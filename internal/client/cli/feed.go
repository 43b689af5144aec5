package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/grain/internal/client/feed"
	"github.com/dmitrijs2005/grain/internal/client/session"
)

func (a *App) homePager() *feed.Pager {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.home == nil {
		a.home = feed.NewPager(feed.ListFetcher(a.feeds, a.pageSize),
			feed.WithLogger(a.log.With("feed", "home")))
	}
	return a.home
}

// currentPager is the list shown on the current screen, or nil.
func (a *App) currentPager() *feed.Pager {
	switch a.router.Current() {
	case session.RouteHome:
		return a.homePager()
	case session.RouteSearch:
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.search
	default:
		return nil
	}
}

// Home shows the greeting and the feed, loading the first page on the
// first visit.
func (a *App) Home(ctx context.Context) error {
	if !a.open(session.RouteHome) {
		return nil
	}
	fmt.Fprintf(a.out, "Hello, %s!\n", a.store.Session().Greeting())

	p := a.homePager()
	if c := p.Cursor(); len(p.Photos()) == 0 && c.LastError == "" && !c.Loading() {
		if err := p.LoadInitial(ctx); err != nil {
			a.renderError(p)
			return err
		}
	}
	if p.Cursor().LastError != "" {
		a.renderError(p)
		return nil
	}
	a.renderFeed(p)
	return nil
}

// Search starts a new result list for query and shows its first page.
func (a *App) Search(ctx context.Context, query string) error {
	if !a.open(session.RouteSearch) {
		return nil
	}
	p := feed.NewPager(feed.SearchFetcher(a.feeds, query, a.pageSize),
		feed.WithLogger(a.log.With("feed", "search")))

	a.mu.Lock()
	a.search, a.query = p, query
	a.mu.Unlock()

	fmt.Fprintf(a.out, "Results for %q\n", query)
	if err := p.LoadInitial(ctx); err != nil {
		a.renderError(p)
		return err
	}
	a.renderFeed(p)
	return nil
}

// More appends the next page to the current list.
func (a *App) More(ctx context.Context) error {
	if !a.requireTabs() {
		return nil
	}
	p := a.currentPager()
	if p == nil {
		fmt.Fprintln(a.out, "Nothing to load here. Try 'home' or 'search <query>'.")
		return nil
	}

	before := len(p.Photos())
	applied, err := p.LoadMore(ctx)
	switch {
	case err != nil:
		a.renderError(p)
		return err
	case !applied:
		a.renderSkipped(p)
		return nil
	}

	photos := p.Photos()
	if len(photos) <= before {
		fmt.Fprintln(a.out, "No more photos.")
		return nil
	}
	renderPhotos(a.out, photos[before:], before)
	return nil
}

// Refresh reloads the first page of the current list.
func (a *App) Refresh(ctx context.Context) error {
	if !a.requireTabs() {
		return nil
	}
	p := a.currentPager()
	if p == nil {
		fmt.Fprintln(a.out, "Nothing to refresh here.")
		return nil
	}
	if err := p.Refresh(ctx); err != nil {
		a.renderError(p)
		return err
	}
	a.renderFeed(p)
	return nil
}

// Retry repeats the last failed request of the current list.
func (a *App) Retry(ctx context.Context) error {
	if !a.requireTabs() {
		return nil
	}
	p := a.currentPager()
	if p == nil {
		fmt.Fprintln(a.out, "Nothing to retry here.")
		return nil
	}
	applied, err := p.Retry(ctx)
	switch {
	case err != nil:
		a.renderError(p)
		return err
	case !applied:
		a.renderSkipped(p)
		return nil
	}
	a.renderFeed(p)
	return nil
}

// requireTabs reports whether the tab screens are reachable, redirecting to
// the entry screen when they are not.
func (a *App) requireTabs() bool {
	if target, ok := a.store.Guard(session.GroupTabs); ok {
		a.router.Replace(target)
		fmt.Fprintln(a.out, "Please log in first.")
		return false
	}
	return true
}

func (a *App) renderFeed(p *feed.Pager) {
	photos := p.Photos()
	if len(photos) == 0 {
		fmt.Fprintln(a.out, "No photos.")
		return
	}
	renderPhotos(a.out, photos, 0)
	fmt.Fprintf(a.out, "Page %d. Type 'more' for the next page.\n", p.Cursor().CurrentPage)
}

func (a *App) renderError(p *feed.Pager) {
	msg := p.Cursor().LastError
	if msg == "" {
		msg = feed.FetchFailedMessage
	}
	fmt.Fprintln(a.out, msg)
	fmt.Fprintln(a.out, "Type 'retry' to try again.")
}

// renderSkipped explains a request the pager held back.
func (a *App) renderSkipped(p *feed.Pager) {
	if p.Cursor().LastError != "" {
		a.renderError(p)
		return
	}
	fmt.Fprintln(a.out, "Still loading, try again in a moment.")
}
