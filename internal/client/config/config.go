package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the JobKeeper CLI.
//
// Fields:
//   - BackendURL: base URL of the hosted REST backend.
//   - APIKey: project key sent as the apikey header on every request.
//   - DataDir: directory for the local database, photos, exports and logs.
//   - DatabaseFile: SQLite file; relative paths resolve against DataDir.
//   - LogLevel: debug, info, warn or error.
//   - RequestTimeout: per-request HTTP timeout for backend calls.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - Business*: issuer details printed on exported invoices.
type Config struct {
	BackendURL          string
	APIKey              string
	DataDir             string
	DatabaseFile        string
	LogLevel            string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration

	BusinessName    string
	BusinessEmail   string
	BusinessPhone   string
	BusinessAddress string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8080"
	c.APIKey = ""
	c.DataDir = defaultDataDir()
	c.DatabaseFile = "jobkeeper.db"
	c.LogLevel = "info"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.BusinessName = "JobKeeper"
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".jobkeeper"
	}
	return filepath.Join(home, ".jobkeeper")
}

// DatabasePath resolves DatabaseFile against DataDir.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.DatabaseFile) {
		return c.DatabaseFile
	}
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// LogPath is the client log file inside DataDir.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "jobkeeper.log")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if present). Flags are applied later by the command tree.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	return cfg
}
