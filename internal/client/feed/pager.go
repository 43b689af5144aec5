package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/grain/internal/client/models"
	"github.com/dmitrijs2005/grain/internal/logging"
)

type Mode int

const (
	ModeInitial Mode = iota
	ModeRefresh
	ModeAppend
)

func (m Mode) String() string {
	switch m {
	case ModeInitial:
		return "initial"
	case ModeRefresh:
		return "refresh"
	case ModeAppend:
		return "append"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Fetcher returns one page of photos. Pages start at 1.
type Fetcher func(ctx context.Context, page int) ([]models.Photo, error)

// Cursor is a snapshot of the pager's position and loading phases.
type Cursor struct {
	CurrentPage    int
	LoadingInitial bool
	LoadingMore    bool
	Refreshing     bool
	LastError      string
}

// Loading reports whether any request is in flight.
func (c Cursor) Loading() bool {
	return c.LoadingInitial || c.LoadingMore || c.Refreshing
}

type request struct {
	page int
	mode Mode
	// next asks for the page after CurrentPage, resolved under the lock.
	next bool
	// retry lets an append through even though LastError is set.
	retry bool
}

type Option func(*Pager)

func WithLogger(l logging.Logger) Option {
	return func(p *Pager) { p.log = l }
}

type Pager struct {
	fetch Fetcher
	log   logging.Logger

	mu       sync.Mutex
	photos   []models.Photo
	cursor   Cursor
	inflight [ModeAppend + 1]int
	failed   *request
}

func NewPager(fetch Fetcher, opts ...Option) *Pager {
	p := &Pager{
		fetch:  fetch,
		log:    logging.Nop(),
		cursor: Cursor{CurrentPage: 1},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Photos returns a copy of the loaded feed.
func (p *Pager) Photos() []models.Photo {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Photo, len(p.photos))
	copy(out, p.photos)
	return out
}

func (p *Pager) Cursor() Cursor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Load fetches page in the given mode. Initial and refresh loads must ask
// for page 1 and replace the feed; an append must ask for CurrentPage+1 and
// extends it.
//
// The returned bool is false when an append was skipped because another
// load is in flight or the previous one failed. A skipped append is not
// checked against CurrentPage. Errors are ErrInvalidPage or *FeedFetchError.
func (p *Pager) Load(ctx context.Context, page int, mode Mode) (bool, error) {
	return p.load(ctx, request{page: page, mode: mode})
}

func (p *Pager) load(ctx context.Context, req request) (bool, error) {
	p.mu.Lock()
	if req.next {
		req.page = p.cursor.CurrentPage + 1
	}
	if req.mode == ModeAppend && (p.cursor.Loading() || (p.cursor.LastError != "" && !req.retry)) {
		p.mu.Unlock()
		p.log.Debug(ctx, "append skipped", "page", req.page)
		return false, nil
	}
	if err := p.checkPage(req.page, req.mode); err != nil {
		p.mu.Unlock()
		return false, err
	}
	if req.retry {
		p.cursor.LastError = ""
	}
	p.track(req.mode, 1)
	p.mu.Unlock()

	page, mode := req.page, req.mode
	batch, err := p.fetch(ctx, page)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.track(mode, -1)

	if err != nil {
		p.cursor.LastError = FetchFailedMessage
		p.failed = &request{page: page, mode: mode}
		p.log.Warn(ctx, "feed load failed", "page", page, "mode", mode.String(), "error", err)
		return true, &FeedFetchError{Page: page, Mode: mode, Err: err}
	}

	if mode == ModeAppend {
		p.photos = append(p.photos, batch...)
	} else {
		p.photos = append([]models.Photo(nil), batch...)
	}
	p.cursor.CurrentPage = page
	p.cursor.LastError = ""
	p.failed = nil
	p.log.Debug(ctx, "feed loaded", "page", page, "mode", mode.String(), "count", len(batch))
	return true, nil
}

func (p *Pager) checkPage(page int, mode Mode) error {
	switch mode {
	case ModeInitial, ModeRefresh:
		if page != 1 {
			return fmt.Errorf("%w: %s load must start at page 1, got %d", ErrInvalidPage, mode, page)
		}
	case ModeAppend:
		if want := p.cursor.CurrentPage + 1; page != want {
			return fmt.Errorf("%w: append expects page %d, got %d", ErrInvalidPage, want, page)
		}
	default:
		return fmt.Errorf("%w: unknown %s", ErrInvalidPage, mode)
	}
	return nil
}

// track counts requests in flight per mode. A phase flag stays set until
// the last request of its mode completes.
func (p *Pager) track(mode Mode, delta int) {
	p.inflight[mode] += delta
	p.cursor.LoadingInitial = p.inflight[ModeInitial] > 0
	p.cursor.Refreshing = p.inflight[ModeRefresh] > 0
	p.cursor.LoadingMore = p.inflight[ModeAppend] > 0
}

// LoadInitial loads page 1 as the first load of the feed.
func (p *Pager) LoadInitial(ctx context.Context) error {
	_, err := p.Load(ctx, 1, ModeInitial)
	return err
}

// Refresh reloads page 1 and replaces the feed.
func (p *Pager) Refresh(ctx context.Context) error {
	_, err := p.Load(ctx, 1, ModeRefresh)
	return err
}

// LoadMore appends the page after the current one.
func (p *Pager) LoadMore(ctx context.Context) (bool, error) {
	return p.load(ctx, request{mode: ModeAppend, next: true})
}

// Retry re-issues the request that failed last. With no failure on record
// it performs an initial load. LastError is cleared only once the request
// is under way; a retried append skipped because another load is in flight
// returns false and leaves the error in place.
func (p *Pager) Retry(ctx context.Context) (bool, error) {
	p.mu.Lock()
	req := request{page: 1, mode: ModeInitial}
	if p.failed != nil {
		req = *p.failed
	}
	p.mu.Unlock()

	req.retry = true
	return p.load(ctx, req)
}
