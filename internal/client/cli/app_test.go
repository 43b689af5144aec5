package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/grain/internal/client/api"
	"github.com/dmitrijs2005/grain/internal/client/api/apitest"
	"github.com/dmitrijs2005/grain/internal/client/client"
	"github.com/dmitrijs2005/grain/internal/client/config"
	"github.com/dmitrijs2005/grain/internal/client/feed"
	"github.com/dmitrijs2005/grain/internal/client/models"
	"github.com/dmitrijs2005/grain/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/grain/internal/client/services"
	"github.com/dmitrijs2005/grain/internal/client/session"
	"github.com/dmitrijs2005/grain/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

type testEnv struct {
	srv    *apitest.Server
	db     *sql.DB
	repo   *metadata.SQLiteRepository
	out    *bytes.Buffer
	router *Router
	store  *session.Store
	app    *App
}

func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()
	srv := apitest.NewServer("key")
	t.Cleanup(srv.Close)
	srv.AddAccount(apitest.Account{
		Password: "emilyspass",
		Profile: models.Session{
			ID: 1, Username: "emilys", FirstName: "Emily", LastName: "Johnson",
			Email: "emily@example.com", Gender: "female", Image: "https://dummyjson.com/icon/emilys/128",
		},
	})
	srv.SetPhotos(apitest.Photos(25))

	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := &testEnv{srv: srv, db: db, repo: metadata.NewSQLiteRepository(db), out: &bytes.Buffer{}}
	e.start(input)
	return e
}

// start builds a fresh process over the same database and fake APIs.
func (e *testEnv) start(input string) {
	bindings := api.New(api.Settings{AccountURL: e.srv.URL, PhotosURL: e.srv.URL, PhotosKey: "key"})
	auth := services.NewAuthService(bindings.Account)

	e.router = NewRouter()
	e.store = session.NewStore(auth, session.NewSQLPersistence(e.db, e.repo), bindings,
		session.WithNavigator(e.router), session.WithNotifier(NewAlerter(e.out)))
	e.app = NewApp(Deps{
		Store:    e.store,
		Auth:     auth,
		Feeds:    services.NewFeedService(bindings.Photos),
		Router:   e.router,
		PageSize: 10,
		In:       strings.NewReader(input),
		Out:      e.out,
	})
}

// storedKeys counts the rows left in the metadata table.
func (e *testEnv) storedKeys(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

func stubPrompts(t *testing.T, username, password string, confirmAnswer bool) {
	t.Helper()
	origText, origPass, origConfirm := getSimpleText, getPassword, confirm
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return username, nil }
	getPassword = func(io.Writer) ([]byte, error) { return []byte(password), nil }
	confirm = func(*bufio.Reader, string, io.Writer) (bool, error) { return confirmAnswer, nil }
	t.Cleanup(func() { getSimpleText, getPassword, confirm = origText, origPass, origConfirm })
}

// ------------ tests ------------

func TestApp_LoginBrowseLogout(t *testing.T) {
	capturePrintln(t)
	stubPrompts(t, "emilys", "emilyspass", true)
	e := newTestEnv(t, "login\nmore\nprofile\nlogout\nexit\n")

	e.app.Run(context.Background())

	out := e.out.String()
	assert.Contains(t, out, "Beautiful free photos")
	assert.Contains(t, out, "Hello, Emily!")
	assert.Contains(t, out, "[1] Photo Author (@author)")
	assert.Contains(t, out, "♥ 1 likes")
	assert.Contains(t, out, "photo number 1\n")
	assert.Contains(t, out, "[11] Photo Author")
	assert.Contains(t, out, "photo number 20\n")
	assert.NotContains(t, out, "[21]")
	assert.Contains(t, out, "Emily Johnson\n@emilys\n")
	assert.Contains(t, out, "emily@example.com")
	assert.Contains(t, out, "Signed out.")

	assert.Equal(t, session.StateUnauthenticated, e.store.State())
	assert.Equal(t, session.RouteEntry, e.router.Current())
	assert.Zero(t, e.storedKeys(t))
}

func TestApp_TabsRequireLogin(t *testing.T) {
	capturePrintln(t)
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.app.restore(ctx)

	require.NoError(t, e.app.Home(ctx))
	require.NoError(t, e.app.Profile(ctx))
	require.NoError(t, e.app.More(ctx))
	require.NoError(t, e.app.Search(ctx, "cat"))

	assert.Equal(t, 4, strings.Count(e.out.String(), "Please log in first."))
	assert.Equal(t, session.RouteEntry, e.router.Current())
	for _, r := range e.srv.Requests() {
		assert.NotEqual(t, "/photos", r.Path)
	}
}

func TestApp_LoginFailure(t *testing.T) {
	capturePrintln(t)
	stubPrompts(t, "emilys", "wrong", true)
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.app.restore(ctx)

	err := e.app.Login(ctx)
	var ae *services.AuthError
	require.ErrorAs(t, err, &ae)

	assert.Contains(t, e.out.String(), services.LoginFailedMessage)
	assert.False(t, e.app.isLoggedIn())
	assert.Equal(t, session.RouteEntry, e.router.Current())
}

func TestApp_RestoresPreviousSession(t *testing.T) {
	capturePrintln(t)
	stubPrompts(t, "emilys", "emilyspass", true)
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.app.restore(ctx)
	require.NoError(t, e.app.Login(ctx))

	e.out.Reset()
	e.start("exit\n")
	e.app.Run(ctx)

	assert.True(t, e.app.isLoggedIn())
	assert.Equal(t, session.RouteHome, e.router.Current())
	assert.Contains(t, e.out.String(), "Hello, Emily!")
}

func TestApp_ExpiredSessionOnStartup(t *testing.T) {
	capturePrintln(t)
	stubPrompts(t, "emilys", "emilyspass", true)
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.app.restore(ctx)
	require.NoError(t, e.app.Login(ctx))
	e.srv.RevokeTokens()

	e.out.Reset()
	e.start("home\nexit\n")
	e.app.Run(ctx)

	out := e.out.String()
	assert.Contains(t, out, "*** "+session.SessionExpiredTitle+" ***")
	assert.Contains(t, out, session.SessionExpiredMessage)
	assert.Contains(t, out, "Please log in first.")
	assert.Equal(t, session.RouteEntry, e.router.Current())
	assert.Zero(t, e.storedKeys(t))
}

func TestApp_FeedFailureAndRetry(t *testing.T) {
	capturePrintln(t)
	stubPrompts(t, "emilys", "emilyspass", true)
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.app.restore(ctx)
	e.srv.FailPath("/photos", http.StatusServiceUnavailable)

	require.Error(t, e.app.Login(ctx))
	assert.True(t, e.app.isLoggedIn(), "a failed feed does not undo the login")
	assert.Contains(t, e.out.String(), "Failed to load photos. Please try again.")

	e.out.Reset()
	require.NoError(t, e.app.More(ctx))
	assert.Contains(t, e.out.String(), "Failed to load photos. Please try again.", "more is held back while the error stands")

	e.out.Reset()
	require.NoError(t, e.app.Home(ctx))
	out := e.out.String()
	assert.Contains(t, out, "Failed to load photos. Please try again.")
	assert.Contains(t, out, "Type 'retry' to try again.")
	assert.NotContains(t, out, "No photos.")

	e.srv.ClearFailures()
	e.out.Reset()
	require.NoError(t, e.app.Retry(ctx))
	assert.Contains(t, e.out.String(), "[10] Photo Author")
	assert.Contains(t, e.out.String(), "Page 1.")
}

func TestApp_RetryHeldBackWhileRefreshing(t *testing.T) {
	capturePrintln(t)
	stubPrompts(t, "emilys", "emilyspass", true)
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.app.restore(ctx)
	require.NoError(t, e.app.Login(ctx))

	started := make(chan struct{})
	release := make(chan struct{})
	p := feed.NewPager(func(ctx context.Context, page int) ([]models.Photo, error) {
		if page == 2 {
			return nil, errors.New("offline")
		}
		close(started)
		<-release
		return []models.Photo{{ID: "fresh", User: models.PhotoUser{Name: "Photo Author", Username: "author"}}}, nil
	})
	e.app.mu.Lock()
	e.app.home = p
	e.app.mu.Unlock()

	require.Error(t, e.app.More(ctx))

	refreshed := make(chan error, 1)
	go func() { refreshed <- p.Refresh(ctx) }()
	<-started

	e.out.Reset()
	require.NoError(t, e.app.Retry(ctx))
	out := e.out.String()
	assert.Contains(t, out, "Failed to load photos. Please try again.")
	assert.Contains(t, out, "Type 'retry' to try again.")
	assert.NotContains(t, out, "No photos.")
	assert.Equal(t, feed.FetchFailedMessage, p.Cursor().LastError)

	close(release)
	require.NoError(t, <-refreshed)
	assert.Empty(t, p.Cursor().LastError)
}

func TestApp_SearchAndRefresh(t *testing.T) {
	capturePrintln(t)
	stubPrompts(t, "emilys", "emilyspass", true)
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.app.restore(ctx)
	require.NoError(t, e.app.Login(ctx))

	e.out.Reset()
	require.NoError(t, e.app.Search(ctx, "number 2"))
	assert.Equal(t, session.RouteSearch, e.router.Current())
	out := e.out.String()
	assert.Contains(t, out, `Results for "number 2"`)
	assert.Contains(t, out, "photo number 2\n")
	assert.Contains(t, out, "photo number 20\n")

	assert.Contains(t, out, "[7] Photo Author")
	assert.NotContains(t, out, "[8]")

	e.out.Reset()
	require.NoError(t, e.app.More(ctx))
	assert.Contains(t, e.out.String(), "No more photos.")

	e.out.Reset()
	require.NoError(t, e.app.Refresh(ctx))
	assert.Contains(t, e.out.String(), "Page 1.")

	require.NoError(t, e.app.Home(ctx))
	assert.Equal(t, session.RouteHome, e.router.Current())
}

func TestApp_LogoutCancelled(t *testing.T) {
	capturePrintln(t)
	stubPrompts(t, "emilys", "emilyspass", false)
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.app.restore(ctx)
	require.NoError(t, e.app.Login(ctx))

	require.NoError(t, e.app.Logout(ctx))
	assert.Contains(t, e.out.String(), "Cancelled.")
	assert.True(t, e.app.isLoggedIn())
}

func TestApp_SignOutDropsFeeds(t *testing.T) {
	capturePrintln(t)
	stubPrompts(t, "emilys", "emilyspass", true)
	e := newTestEnv(t, "")
	ctx := context.Background()
	e.app.restore(ctx)
	require.NoError(t, e.app.Login(ctx))
	require.NoError(t, e.app.Search(ctx, "photo"))

	require.NoError(t, e.store.SignOut(ctx))

	e.app.mu.Lock()
	defer e.app.mu.Unlock()
	assert.Nil(t, e.app.home)
	assert.Nil(t, e.app.search)
	assert.Empty(t, e.app.query)
}

func TestRouter_And_Alerter(t *testing.T) {
	r := NewRouter()
	assert.Equal(t, session.RouteEntry, r.Current())
	r.Replace(session.RouteProfile)
	assert.Equal(t, session.RouteProfile, r.Current())

	var buf bytes.Buffer
	NewAlerter(&buf).Alert("Title", "Body")
	assert.Equal(t, "\n*** Title ***\nBody\n\n", buf.String())
}

func TestBuild_WiresEverything(t *testing.T) {
	capturePrintln(t)
	srv := apitest.NewServer("key")
	t.Cleanup(srv.Close)

	var cfg config.Config
	cfg.LoadDefaults()
	cfg.AccountAPIURL = srv.URL
	cfg.PhotoAPIURL = srv.URL
	cfg.PhotoAPIKey = "key"
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "state", "grain.db")

	var out bytes.Buffer
	app, db, err := Build(context.Background(), &cfg, logging.Nop(), strings.NewReader("help\nexit\n"), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app.Run(context.Background())
	assert.Contains(t, out.String(), "Type 'login' to sign in")
	assert.False(t, app.isLoggedIn())
}

func TestBuild_BadDatabase(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	var cfg config.Config
	cfg.LoadDefaults()
	cfg.DatabaseDSN = filepath.Join(blocker, "grain.db")

	_, _, err := Build(context.Background(), &cfg, logging.Nop(), strings.NewReader(""), io.Discard)
	require.Error(t, err)
}
