// Package config loads process configuration once at startup.
//
// WHY AN EXPLICIT CONFIG STRUCT?
// Components never read environment variables themselves. main() calls
// Load() exactly once and hands the resulting Config down the dependency
// graph. That keeps configuration visible in one place, makes components
// testable (pass a literal Config, no env fiddling), and avoids the
// "ambient global state" trap where any function anywhere might depend on
// an env var you didn't know about.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs to run.
type Config struct {
	Port      int    // HTTP listen port (PORT, default 5001)
	DBPath    string // SQLite database file (DB_PATH, default data/resumes.db)
	JWTSecret string // HMAC signing key for tokens (JWT_SECRET, required)
	Env       string // "development" or "production" (APP_ENV, default production)

	// AllowedOrigins is the CORS allow-list (CORS_ORIGINS, comma-separated).
	// Defaults to "*" — the frontend is served from a different origin during
	// development and the API carries no cookies, so the permissive default
	// is acceptable. Lock it down per deployment.
	AllowedOrigins []string
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables win over .env entries.
//
// A missing JWT_SECRET is a fatal condition: without the signing key the
// server could neither issue nor verify a single token, so refusing to start
// beats limping along and 500-ing every auth request.
func Load() (*Config, error) {
	// Load .env if present — ok if missing in prod, where real env vars are set.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}

	port := 5001
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, errors.New("config: PORT must be a number")
		}
		port = p
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		Port:           port,
		DBPath:         getenv("DB_PATH", "data/resumes.db"),
		JWTSecret:      secret,
		Env:            getenv("APP_ENV", "production"),
		AllowedOrigins: origins,
	}, nil
}

// IsDevelopment reports whether the process runs in development mode.
// Development mode includes internal error detail in 500 responses;
// production never does.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
