package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the service reads from the environment.
// It is loaded once in main and passed down explicitly.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   []byte
	TokenTTL    time.Duration
	CORSOrigin  string

	// Rate limits. Zero values fall back to defaults.
	AuthRateMax  int
	WriteRateMax int
}

var ErrMissingEnv = errors.New("missing required environment variable")

func Load() (*Config, error) {
	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CORSOrigin:   getenv("CORS_ORIGIN", "*"),
		TokenTTL:     24 * time.Hour,
		AuthRateMax:  getint("RATE_LIMIT_AUTH_MAX", 10),
		WriteRateMax: getint("RATE_LIMIT_WRITE_MAX", 60),
	}

	if cfg.DatabaseURL == "" {
		return nil, errorFor("DATABASE_URL")
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return nil, errorFor("JWT_SECRET")
	}
	cfg.JWTSecret = []byte(secret)

	if v := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.TokenTTL = time.Duration(hours) * time.Hour
		}
	}

	return cfg, nil
}

func errorFor(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingEnv, name)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
