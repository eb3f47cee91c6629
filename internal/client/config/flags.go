package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/dbmelt/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API base URL
//	-b string   backend root URL
//	-s string   credential store backend (sqlite, redis, memory)
//	-p string   SQLite file for the sqlite backend
//	-r string   Redis URL for the redis backend
//	-l string   log level
//
// Arguments that belong to other parsers (such as -c) are filtered out first.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-b", "-s", "-p", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "backend root URL")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "credential store backend: sqlite, redis or memory")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "SQLite file for the sqlite store")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "Redis URL for the redis store")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
