package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/commandarea/store"
)

// Environment variables read by ParseEnv.
const (
	EnvS3Endpoint  = "COMMANDAREA_S3_ENDPOINT"
	EnvS3Region    = "COMMANDAREA_S3_REGION"
	EnvS3AccessKey = "COMMANDAREA_S3_ACCESS_KEY"
	EnvS3SecretKey = "COMMANDAREA_S3_SECRET_KEY"
	EnvS3Bucket    = "COMMANDAREA_S3_BUCKET"
	EnvS3Prefix    = "COMMANDAREA_S3_PREFIX"
	EnvS3UseSSL    = "COMMANDAREA_S3_USE_SSL"
	EnvLogLevel    = "COMMANDAREA_LOG_LEVEL"
)

// Env holds settings taken from the environment.
type Env struct {
	// S3 is nil unless an endpoint is configured.
	S3       *store.S3Config
	LogLevel string
}

// LoadEnv seeds the process environment from files (".env" when none are
// given) without overriding variables already set, then parses it. A missing
// default .env file is not an error.
func LoadEnv(files ...string) (Env, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("config: load env: %w", err)
		}
	}
	return ParseEnv(os.Getenv)
}

// ParseEnv builds an Env from getenv.
func ParseEnv(getenv func(string) string) (Env, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	env := Env{LogLevel: strings.ToLower(get(EnvLogLevel))}
	endpoint := get(EnvS3Endpoint)
	if endpoint == "" {
		return env, nil
	}
	useSSL := true
	if raw := get(EnvS3UseSSL); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Env{}, fmt.Errorf("%w: %s=%q", ErrInvalid, EnvS3UseSSL, raw)
		}
		useSSL = v
	}
	env.S3 = &store.S3Config{
		Endpoint:  endpoint,
		Region:    firstNonEmpty(get(EnvS3Region), "us-east-1"),
		AccessKey: get(EnvS3AccessKey),
		SecretKey: get(EnvS3SecretKey),
		Bucket:    firstNonEmpty(get(EnvS3Bucket), "command-area"),
		Prefix:    get(EnvS3Prefix),
		UseSSL:    useSSL,
	}
	return env, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
