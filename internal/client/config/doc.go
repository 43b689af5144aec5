// Package config loads runtime configuration for the grain CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file in the working directory (read with
//     godotenv) and GRAIN_* variables, real variables winning over the file.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-account-url string   base URL of the account API
//	-photo-url string     base URL of the photo API
//	-k string             photo API access key
//	-n int                photos per page (1..30)
//	-d string             SQLite database file
//	-t int                HTTP request timeout in seconds, 0 for none
//	-l string             log level: debug, info, warn, error
//
// Environment variables
//
//	GRAIN_ACCOUNT_API_URL, GRAIN_PHOTO_API_URL, GRAIN_UNSPLASH_ACCESS_KEY,
//	GRAIN_PAGE_SIZE, GRAIN_DATABASE_DSN, GRAIN_REQUEST_TIMEOUT, GRAIN_LOG_LEVEL
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "3s" or integer
// nanoseconds. Absent keys leave the current value alone:
//
//	{
//	  "account_api_url": "https://dummyjson.com",
//	  "photo_api_url": "https://api.unsplash.com",
//	  "photo_api_key": "...",
//	  "page_size": 10,
//	  "database_dsn": "grain.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
//
// Malformed input in any source panics; LoadConfig is meant to run once at
// startup.
package config
