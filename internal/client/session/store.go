package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/grain/internal/client/models"
	"github.com/dmitrijs2005/grain/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// ProfileFetcher loads the profile behind a token. services.AuthService
// satisfies it.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (*models.Session, error)
}

// Credentials is the shared HTTP credential state. *api.Bindings satisfies it.
type Credentials interface {
	SetBearerToken(token string)
	ClearCredentials()
}

// Navigator replaces the current screen.
type Navigator interface {
	Replace(route Route)
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Alert(title, message string)
}

type nopNavigator struct{}

func (nopNavigator) Replace(Route) {}

type nopNotifier struct{}

func (nopNotifier) Alert(string, string) {}

type Option func(*Store)

func WithNavigator(n Navigator) Option { return func(s *Store) { s.nav = n } }
func WithNotifier(n Notifier) Option   { return func(s *Store) { s.notify = n } }
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store holds the authenticated-user lifecycle. The zero state is
// StateInitializing until Restore completes.
//
// All methods are safe for concurrent use. The lock is never held across a
// network call, listener or navigator callback.
type Store struct {
	profiles ProfileFetcher
	persist  Persistence
	creds    Credentials
	nav      Navigator
	notify   Notifier
	log      logging.Logger

	mu        sync.Mutex
	state     State
	session   *models.Session
	listeners map[int]func(State)
	nextID    int
}

func NewStore(profiles ProfileFetcher, persist Persistence, creds Credentials, opts ...Option) *Store {
	s := &Store{
		profiles:  profiles,
		persist:   persist,
		creds:     creds,
		nav:       nopNavigator{},
		notify:    nopNotifier{},
		log:       logging.Nop(),
		state:     StateInitializing,
		listeners: map[int]func(State){},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Session returns a copy of the current session, or nil when signed out.
func (s *Store) Session() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// Guard evaluates RouteGuard for the current state.
func (s *Store) Guard(group RouteGroup) (Route, bool) {
	return RouteGuard(s.State(), group)
}

// Subscribe registers fn for every transition. The returned func removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) transition(state State, sess *models.Session) {
	s.mu.Lock()
	s.state = state
	s.session = sess
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Restore reads the persisted session and validates it against the account
// API. It ends in StateAuthenticated or StateUnauthenticated.
//
// A torn persisted state (only one of the two entries present) counts as no
// session and is wiped. A token rejected by the account API raises the
// "Session Expired" notice, signs out and returns ErrSessionExpired.
func (s *Store) Restore(ctx context.Context) error {
	token, record, err := s.persist.Load(ctx)
	if err != nil {
		s.log.Error(ctx, "error loading auth state", "error", err)
		s.transition(StateUnauthenticated, nil)
		return fmt.Errorf("load session: %w", err)
	}

	if token == "" || len(record) == 0 {
		if token != "" || len(record) != 0 {
			s.log.Warn(ctx, "incomplete persisted session, discarding",
				"has_token", token != "", "has_record", len(record) != 0)
			if err := s.persist.Clear(ctx); err != nil {
				s.log.Error(ctx, "error clearing incomplete session", "error", err)
			}
		}
		s.transition(StateUnauthenticated, nil)
		return nil
	}

	profile, err := s.profiles.FetchProfile(ctx, token)
	if err != nil {
		s.log.Warn(ctx, "stored token rejected", "error", err)
		s.notify.Alert(SessionExpiredTitle, SessionExpiredMessage)
		if serr := s.SignOut(ctx); serr != nil {
			s.log.Error(ctx, "error signing out expired session", "error", serr)
		}
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	profile.AccessToken = token
	s.creds.SetBearerToken(token)
	s.transition(StateAuthenticated, profile)
	s.log.Info(ctx, "session restored", "username", profile.Username)
	return nil
}

// SignIn makes sess the current session. Both persisted entries are written
// before anything changes in memory, so a failed write leaves the store as
// it was.
func (s *Store) SignIn(ctx context.Context, sess *models.Session) error {
	if !sess.Valid() {
		return ErrInvalidSession
	}

	record, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.persist.Save(ctx, sess.AccessToken, record); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	cp := *sess
	s.creds.SetBearerToken(cp.AccessToken)
	s.transition(StateAuthenticated, &cp)
	s.log.Info(ctx, "signed in", "username", cp.Username)

	s.nav.Replace(RouteHome)
	return nil
}

// SignOut drops the session from memory, from the HTTP bindings and from
// storage. It is valid in any state and idempotent. A storage failure is
// returned, but the store is signed out regardless.
func (s *Store) SignOut(ctx context.Context) error {
	s.creds.ClearCredentials()
	perr := s.persist.Clear(ctx)
	s.transition(StateUnauthenticated, nil)
	s.log.Info(ctx, "signed out")

	s.nav.Replace(RouteEntry)

	if perr != nil {
		return fmt.Errorf("clear persisted session: %w", perr)
	}
	return nil
}

// TokenExpiry reads the exp claim of the current access token. The token is
// decoded without signature verification and is only used for display; ok
// is false when signed out or when the token is not a JWT with exp.
func (s *Store) TokenExpiry() (exp time.Time, ok bool) {
	sess := s.Session()
	if sess == nil {
		return time.Time{}, false
	}
	return TokenExpiry(sess.AccessToken)
}

// TokenExpiry reads the exp claim of token without verifying it.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
