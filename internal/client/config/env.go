package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names read by parseEnv.
const (
	EnvAPIURL     = "API_URL"
	EnvBackendURL = "BACKEND_URL"
	EnvStore      = "DBMELT_STORE"
	EnvStorePath  = "DBMELT_STORE_PATH"
	EnvRedisURL   = "REDIS_URL"
	EnvLogLevel   = "LOG_LEVEL"
)

// parseEnv loads envFile into the process environment (variables that are
// already set win over the file) and overlays every non-empty variable onto
// cfg. A missing envFile is not an error; a malformed one panics, like the
// other parsers.
func parseEnv(cfg *Config, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	overlay := []struct {
		name string
		dst  *string
	}{
		{EnvAPIURL, &cfg.APIBaseURL},
		{EnvBackendURL, &cfg.BackendURL},
		{EnvStore, &cfg.StoreBackend},
		{EnvStorePath, &cfg.StorePath},
		{EnvRedisURL, &cfg.RedisURL},
		{EnvLogLevel, &cfg.LogLevel},
	}
	for _, o := range overlay {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			*o.dst = v
		}
	}
}
