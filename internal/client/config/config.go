package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	DefaultAccountAPIURL = "https://dummyjson.com"
	DefaultPhotoAPIURL   = "https://api.unsplash.com"
	DefaultPageSize      = 10
	MaxPageSize          = 30
	DefaultDatabaseDSN   = "grain.db"
	DefaultLogLevel      = "info"

	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

var ErrMissingPhotoAPIKey = errors.New("photo API key is not set (GRAIN_UNSPLASH_ACCESS_KEY or -k)")

// Config holds runtime settings for the grain CLI.
//
// RequestTimeout of zero means requests wait until the transport gives up.
type Config struct {
	AccountAPIURL  string
	PhotoAPIURL    string
	PhotoAPIKey    string
	PageSize       int
	DatabaseDSN    string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AccountAPIURL = DefaultAccountAPIURL
	c.PhotoAPIURL = DefaultPhotoAPIURL
	c.PhotoAPIKey = ""
	c.PageSize = DefaultPageSize
	c.DatabaseDSN = DefaultDatabaseDSN
	c.RequestTimeout = 0
	c.LogLevel = DefaultLogLevel
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.PhotoAPIKey == "" {
		errs = append(errs, ErrMissingPhotoAPIKey)
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, c.PageSize))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is empty"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, environment, JSON and flags
// taken from os.Args. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	return Load(os.Args[1:], DotEnvFile)
}

// Load is LoadConfig with explicit arguments and .env path. An empty
// dotenv skips the file.
func Load(args []string, dotenv string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, dotenv)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
