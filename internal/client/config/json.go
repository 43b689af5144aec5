package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/grain/internal/flagx"
	"github.com/dmitrijs2005/grain/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key apart from a zero value.
type JsonConfig struct {
	AccountAPIURL  *string         `json:"account_api_url"`
	PhotoAPIURL    *string         `json:"photo_api_url"`
	PhotoAPIKey    *string         `json:"photo_api_key"`
	PageSize       *int            `json:"page_size"`
	DatabaseDSN    *string         `json:"database_dsn"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without such a flag it does nothing. Read and unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.AccountAPIURL != nil {
		cfg.AccountAPIURL = *jc.AccountAPIURL
	}
	if jc.PhotoAPIURL != nil {
		cfg.PhotoAPIURL = *jc.PhotoAPIURL
	}
	if jc.PhotoAPIKey != nil {
		cfg.PhotoAPIKey = *jc.PhotoAPIKey
	}
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
