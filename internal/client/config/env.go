package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAccountAPIURL  = "GRAIN_ACCOUNT_API_URL"
	EnvPhotoAPIURL    = "GRAIN_PHOTO_API_URL"
	EnvPhotoAPIKey    = "GRAIN_UNSPLASH_ACCESS_KEY"
	EnvPageSize       = "GRAIN_PAGE_SIZE"
	EnvDatabaseDSN    = "GRAIN_DATABASE_DSN"
	EnvRequestTimeout = "GRAIN_REQUEST_TIMEOUT"
	EnvLogLevel       = "GRAIN_LOG_LEVEL"
)

// parseEnv overlays cfg with GRAIN_* variables. Values from the dotenv file
// are used only for variables missing from the process environment; the
// file never modifies the environment itself. A missing file is ignored.
func parseEnv(cfg *Config, dotenv string) {
	fileVars := map[string]string{}
	if dotenv != "" {
		m, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			fileVars = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			panic(err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	if v, ok := lookup(EnvAccountAPIURL); ok {
		cfg.AccountAPIURL = v
	}
	if v, ok := lookup(EnvPhotoAPIURL); ok {
		cfg.PhotoAPIURL = v
	}
	if v, ok := lookup(EnvPhotoAPIKey); ok {
		cfg.PhotoAPIKey = v
	}
	if v, ok := lookup(EnvPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.PageSize = n
	}
	if v, ok := lookup(EnvDatabaseDSN); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
}
