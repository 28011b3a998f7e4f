package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Gazetteer artifact source: a local path, or an HTTP URL as fallback.
	GazetteerPath string
	GazetteerURL  string

	// ReloadInterval controls periodic re-publication of the gazetteer
	// index. Zero disables reloading.
	ReloadInterval time.Duration

	// PreferredCountry ranks search hits from this country first.
	PreferredCountry string

	// HTTPTimeout bounds outbound artifact downloads.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.GazetteerPath = os.Getenv("GAZETTEER_PATH")
	cfg.GazetteerURL = os.Getenv("GAZETTEER_URL")

	// Reload interval: default 0, i.e. load once at startup.
	intervalStr := getenvDefault("GAZETTEER_RELOAD_INTERVAL", "0")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GAZETTEER_RELOAD_INTERVAL: %w", err)
	}
	cfg.ReloadInterval = interval

	cfg.PreferredCountry = getenvDefault("SEARCH_PREFERRED_COUNTRY", "FI")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
