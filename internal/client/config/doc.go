// Package config loads runtime configuration for the JobKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml/.yml are decoded as YAML, everything else as JSON.
//  3. Command-line flags registered on the cobra root command (see
//     (*Config).RegisterFlags), which override earlier values.
//
// # File schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "backend_url": "https://api.example.com",
//	  "api_key": "anon-key",
//	  "data_dir": "/home/me/.jobkeeper",
//	  "log_level": "debug",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s"
//	}
package config
