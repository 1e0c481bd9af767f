package config

import "github.com/spf13/pflag"

// RegisterFlags binds the CLI flags directly to c's fields. Current field
// values become the flag defaults, so flags override file and defaults.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to a JSON or YAML config file")
	fs.StringVarP(&c.BackendURL, "url", "u", c.BackendURL, "backend base URL")
	fs.StringVar(&c.APIKey, "api-key", c.APIKey, "backend API key")
	fs.StringVar(&c.DataDir, "data-dir", c.DataDir, "directory for local data")
	fs.StringVar(&c.DatabaseFile, "db", c.DatabaseFile, "local SQLite database file")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.DurationVar(&c.RequestTimeout, "timeout", c.RequestTimeout, "backend request timeout")
	fs.DurationVarP(&c.OnlineCheckInterval, "interval", "i", c.OnlineCheckInterval, "online check interval")
}
