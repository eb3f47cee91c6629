package config

import "os"

// Store backends understood by credstore.Open.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds runtime settings for the DBMelt CLI.
//
// Fields:
//   - APIBaseURL: base address of the versioned REST API, e.g. http://localhost:8000/api/v1.
//   - BackendURL: root address of the backend service.
//   - StoreBackend: where the session token lives: sqlite, redis or memory.
//   - StorePath: SQLite file used by the sqlite backend.
//   - RedisURL: connection URL used by the redis backend.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL   string
	BackendURL   string
	StoreBackend string
	StorePath    string
	RedisURL     string
	LogLevel     string
}

// LoadDefaults populates c with local-development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api/v1"
	c.BackendURL = "http://localhost:8000"
	c.StoreBackend = StoreSQLite
	c.StorePath = "dbmelt.db"
	c.RedisURL = "redis://localhost:6379/0"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from the process command line.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Args[1:])
}

// LoadConfigFrom constructs a Config, applies defaults, then overlays the
// environment (including a .env file in the working directory), an optional
// JSON file and finally command-line flags. Later sources take precedence.
func LoadConfigFrom(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
