package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dbmelt/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	APIBaseURL   string `json:"api_base_url"`
	BackendURL   string `json:"backend_url"`
	StoreBackend string `json:"store_backend"`
	StorePath    string `json:"store_path"`
	RedisURL     string `json:"redis_url"`
	LogLevel     string `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c or
// -config. Keys that are missing or empty in the file leave cfg untouched.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFile(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.APIBaseURL, jc.APIBaseURL)
	setIfNotEmpty(&cfg.BackendURL, jc.BackendURL)
	setIfNotEmpty(&cfg.StoreBackend, jc.StoreBackend)
	setIfNotEmpty(&cfg.StorePath, jc.StorePath)
	setIfNotEmpty(&cfg.RedisURL, jc.RedisURL)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
