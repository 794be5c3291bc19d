// Package config provides application configuration loading from environment
// variables and .env files. It uses viper for flexible configuration
// management with sensible defaults.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from environment
// variables or a .env file. Priority: environment variables > .env > defaults.
type Config struct {
	RawDir       string        // Directory mirroring the fetched rule lists
	OutDir       string        // Directory receiving the sing-box JSON artifacts
	HTTPAddr     string        // serve-mode bind address (e.g. ":8080")
	CatalogPath  string        // Optional rule-providers YAML replacing the compiled-in catalog
	FetchTimeout time.Duration // Per-request HTTP timeout
	FetchRetries uint          // Max fetch attempts per source (1 = single attempt)
	UserAgent    string        // User-Agent sent on rule-list fetches
	LogLevel     string        // zerolog level (debug, info, warn, error)
}

// Load reads configuration from environment variables and a .env file (if
// present). Returns a Config with all values populated.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env") // Optional; silently ignored if file doesn't exist
	_ = v.ReadInConfig()    // Ignore error - .env is optional
	v.AutomaticEnv()        // Read from environment variables

	setDefaults(v)

	return &Config{
		RawDir:       v.GetString("RAW_DIR"),
		OutDir:       v.GetString("OUT_DIR"),
		HTTPAddr:     v.GetString("HTTP_ADDR"),
		CatalogPath:  v.GetString("CATALOG_PATH"),
		FetchTimeout: v.GetDuration("FETCH_TIMEOUT"),
		FetchRetries: v.GetUint("FETCH_RETRIES"),
		UserAgent:    v.GetString("USER_AGENT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
	}, nil
}

// setDefaults sets default values for all configuration options. The
// directory defaults match the layout the reference deployment expects.
func setDefaults(v *viper.Viper) {
	v.SetDefault("RAW_DIR", "./rule-set")
	v.SetDefault("OUT_DIR", "./sing-box")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("CATALOG_PATH", "")
	v.SetDefault("FETCH_TIMEOUT", "60s")
	v.SetDefault("FETCH_RETRIES", 1)
	v.SetDefault("USER_AGENT", "rulebridge/1.0")
	v.SetDefault("LOG_LEVEL", "info")
}
