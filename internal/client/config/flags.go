package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/grain/internal/flagx"
)

// parseFlags populates cfg from the command-line flags it owns. Other
// arguments are filtered out with flagx.FilterArgs so they cannot make
// parsing fail. A malformed value panics.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, "account-url", "photo-url", "k", "n", "d", "t", "l")

	fs := flag.NewFlagSet("grain", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.AccountAPIURL, "account-url", cfg.AccountAPIURL, "base URL of the account API")
	fs.StringVar(&cfg.PhotoAPIURL, "photo-url", cfg.PhotoAPIURL, "base URL of the photo API")
	fs.StringVar(&cfg.PhotoAPIKey, "k", cfg.PhotoAPIKey, "photo API access key")
	fs.IntVar(&cfg.PageSize, "n", cfg.PageSize, "photos per page")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite database file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds), 0 for none")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// keep sub-second values from JSON/env unless -t was given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
