// Package config loads runtime configuration for the DBMelt CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file in the working directory (loaded with
//     godotenv, never overriding variables that are already set) and the
//     process environment: API_URL, BACKEND_URL, DBMELT_STORE,
//     DBMELT_STORE_PATH, REDIS_URL, LOG_LEVEL.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL (default http://localhost:8000/api/v1)
//	-b string   backend root URL (default http://localhost:8000)
//	-s string   credential store: sqlite, redis or memory (default sqlite)
//	-p string   SQLite file (default dbmelt.db)
//	-r string   Redis URL (default redis://localhost:6379/0)
//	-l string   log level (default info)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000/api/v1",
//	  "backend_url": "http://localhost:8000",
//	  "store_backend": "sqlite",
//	  "store_path": "dbmelt.db",
//	  "redis_url": "redis://localhost:6379/0",
//	  "log_level": "info"
//	}
package config
