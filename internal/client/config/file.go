package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/flagx"
	"github.com/dmitrijs2005/jobkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file decoding. Zero values leave
// the corresponding Config field untouched.
type FileConfig struct {
	BackendURL          string         `json:"backend_url" yaml:"backend_url"`
	APIKey              string         `json:"api_key" yaml:"api_key"`
	DataDir             string         `json:"data_dir" yaml:"data_dir"`
	DatabaseFile        string         `json:"database_file" yaml:"database_file"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`

	Business struct {
		Name    string `json:"name" yaml:"name"`
		Email   string `json:"email" yaml:"email"`
		Phone   string `json:"phone" yaml:"phone"`
		Address string `json:"address" yaml:"address"`
	} `json:"business" yaml:"business"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on read
// or decode errors, matching the flag parser.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.BackendURL, fc.BackendURL)
	setString(&cfg.APIKey, fc.APIKey)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DatabaseFile, fc.DatabaseFile)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.BusinessName, fc.Business.Name)
	setString(&cfg.BusinessEmail, fc.Business.Email)
	setString(&cfg.BusinessPhone, fc.Business.Phone)
	setString(&cfg.BusinessAddress, fc.Business.Address)
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
