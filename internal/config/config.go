// Package config reads service configuration from the environment, with
// an optional .env bootstrap for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime knob of the service.
type Config struct {
	Port           string
	AllowedOrigins []string
	UploadDir      string
	MaxUploadBytes int64
	LogLevel       string
	LogFormat      string
	RulesFile      string
	DBRowLimit     int
}

// Load reads configuration from the environment, applying defaults and
// validating the result. A .env file in the working directory is loaded
// first when present; real environment variables win over it.
func Load() (*Config, error) {
	// Ignore a missing .env; it is a dev convenience only.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8000"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 100<<20),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		RulesFile:      getEnv("RULES_FILE", ""),
		DBRowLimit:     int(getEnvInt64("DB_ROW_LIMIT", 1000)),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.DBRowLimit <= 0 {
		return fmt.Errorf("DB_ROW_LIMIT must be positive")
	}
	return nil
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func getEnvInt64(name string, def int64) int64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
