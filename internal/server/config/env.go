package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvConfig mirrors Config for environment decoding. Unset variables leave
// the corresponding Config field untouched.
type EnvConfig struct {
	ListenAddr                   string        `env:"JK_LISTEN_ADDR"`
	DatabaseDSN                  string        `env:"JK_DATABASE_DSN"`
	SecretKey                    string        `env:"JK_SECRET_KEY"`
	APIKey                       string        `env:"JK_API_KEY"`
	AccessTokenValidityDuration  time.Duration `env:"JK_ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"JK_REFRESH_TOKEN_TTL"`
	S3RootUser                   string        `env:"JK_S3_ROOT_USER"`
	S3RootPassword               string        `env:"JK_S3_ROOT_PASSWORD"`
	S3Bucket                     string        `env:"JK_S3_BUCKET"`
	S3Region                     string        `env:"JK_S3_REGION"`
	S3BaseEndpoint               string        `env:"JK_S3_BASE_ENDPOINT"`
	PresignTTL                   time.Duration `env:"JK_PRESIGN_TTL"`
	LogLevel                     string        `env:"JK_LOG_LEVEL"`
	ShutdownTimeout              time.Duration `env:"JK_SHUTDOWN_TIMEOUT"`
}

// parseEnv loads the dotenv file named by -env (or ./.env when present) into
// the process environment, then decodes JK_* variables into config.
// Variables already set in the environment win over the dotenv file.
// It panics on a malformed dotenv file or an undecodable value.
func parseEnv(config *Config) {
	envFile := flagx.EnvFileFlag()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	var ec EnvConfig
	if err := envdecode.Decode(&ec); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	setString(&config.ListenAddr, ec.ListenAddr)
	setString(&config.DatabaseDSN, ec.DatabaseDSN)
	setString(&config.SecretKey, ec.SecretKey)
	setString(&config.APIKey, ec.APIKey)
	setDuration(&config.AccessTokenValidityDuration, ec.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, ec.RefreshTokenValidityDuration)
	setString(&config.S3RootUser, ec.S3RootUser)
	setString(&config.S3RootPassword, ec.S3RootPassword)
	setString(&config.S3Bucket, ec.S3Bucket)
	setString(&config.S3Region, ec.S3Region)
	setString(&config.S3BaseEndpoint, ec.S3BaseEndpoint)
	setDuration(&config.PresignTTL, ec.PresignTTL)
	setString(&config.LogLevel, ec.LogLevel)
	setDuration(&config.ShutdownTimeout, ec.ShutdownTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
