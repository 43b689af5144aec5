package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"account_api_url": "http://accounts.example",
		"photo_api_url":   "http://photos.example",
		"photo_api_key":   "json-key",
		"page_size":       12,
		"database_dsn":    "json.db",
		"request_timeout": "10s",
		"log_level":       "warn",
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-config", pathFlag})

		assert.Equal(t, &Config{
			AccountAPIURL:  "http://accounts.example",
			PhotoAPIURL:    "http://photos.example",
			PhotoAPIKey:    "json-key",
			PageSize:       12,
			DatabaseDSN:    "json.db",
			RequestTimeout: 10 * time.Second,
			LogLevel:       "warn",
		}, cfg)
	})

	t.Run("absent keys keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"request_timeout": 2000000000,
		})
		cfg := &Config{PhotoAPIKey: "env-key", PageSize: 10}
		parseJson(cfg, []string{"-c=" + partial})

		assert.Equal(t, "env-key", cfg.PhotoAPIKey)
		assert.Equal(t, 10, cfg.PageSize)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		cfg := &Config{DatabaseDSN: "defaults.db", RequestTimeout: 42 * time.Second}
		parseJson(cfg, []string{"-n", "5"})

		assert.Equal(t, "defaults.db", cfg.DatabaseDSN)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("missing file → panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(&Config{}, []string{"-config", bad}) })
	})
}
