package cli

import (
	"context"
	"database/sql"
	"io"

	"github.com/dmitrijs2005/grain/internal/client/api"
	"github.com/dmitrijs2005/grain/internal/client/client"
	"github.com/dmitrijs2005/grain/internal/client/config"
	"github.com/dmitrijs2005/grain/internal/client/services"
	"github.com/dmitrijs2005/grain/internal/client/session"
	"github.com/dmitrijs2005/grain/internal/filex"
	"github.com/dmitrijs2005/grain/internal/logging"
)

// Build opens the local database and wires the HTTP bindings, services and
// session store into an App reading in and writing out. Close the returned
// *sql.DB when the App is done.
func Build(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, *sql.DB, error) {
	if filex.IsFileDSN(cfg.DatabaseDSN) {
		if _, err := filex.EnsureParentDir(cfg.DatabaseDSN); err != nil {
			log.Error(ctx, "error preparing database directory", "dsn", cfg.DatabaseDSN, "error", err)
			return nil, nil, err
		}
	}

	db, err := client.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "dsn", cfg.DatabaseDSN, "error", err)
		return nil, nil, err
	}
	repos := client.NewRepositories(db)

	bindings := api.New(api.Settings{
		AccountURL:     cfg.AccountAPIURL,
		PhotosURL:      cfg.PhotoAPIURL,
		PhotosKey:      cfg.PhotoAPIKey,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         log.With("component", "api"),
	})
	auth := services.NewAuthService(bindings.Account)
	feeds := services.NewFeedService(bindings.Photos)

	router := NewRouter()
	store := session.NewStore(auth, session.NewSQLPersistence(db, repos.Metadata), bindings,
		session.WithNavigator(router),
		session.WithNotifier(NewAlerter(out)),
		session.WithLogger(log.With("component", "session")),
	)

	app := NewApp(Deps{
		Store:    store,
		Auth:     auth,
		Feeds:    feeds,
		Router:   router,
		PageSize: cfg.PageSize,
		Logger:   log.With("component", "cli"),
		In:       in,
		Out:      out,
	})
	return app, db, nil
}
