package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/jobkeeper/internal/flagx"
)

// parseFlags overlays command-line flags onto config. Only the flags below are
// looked at; -c and -env belong to their own parsers and are filtered out.
//
//	-a  REST bind address        -u  S3 user
//	-d  PostgreSQL DSN           -p  S3 password
//	-s  JWT secret               -b  S3 bucket
//	-k  apikey header value      -g  S3 region
//	-t  access token TTL (15m)   -e  S3 endpoint
//	-r  refresh token TTL (720h) -l  log level
//	-x  presign TTL
//
// A malformed value panics, the same as the other config sources.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("jobkeeper-server", flag.ContinueOnError)

	strings := map[string]*string{
		"a": &config.ListenAddr,
		"d": &config.DatabaseDSN,
		"s": &config.SecretKey,
		"k": &config.APIKey,
		"u": &config.S3RootUser,
		"p": &config.S3RootPassword,
		"b": &config.S3Bucket,
		"g": &config.S3Region,
		"e": &config.S3BaseEndpoint,
		"l": &config.LogLevel,
	}
	names := make([]string, 0, len(strings)+3)
	for name, dst := range strings {
		fs.StringVar(dst, name, *dst, name)
		names = append(names, "-"+name)
	}

	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token TTL")
	fs.DurationVar(&config.RefreshTokenValidityDuration, "r", config.RefreshTokenValidityDuration, "refresh token TTL")
	fs.DurationVar(&config.PresignTTL, "x", config.PresignTTL, "presigned URL TTL")
	names = append(names, "-t", "-r", "-x")

	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], names)); err != nil {
		panic(err)
	}
}
