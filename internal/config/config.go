// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The service window fields make the bookable hours
// explicit configuration instead of constants baked into scheduling logic.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Port         string        // HTTP port to listen on
	DBUser       string        // database username
	DBPass       string        // database password (optional)
	DBHost       string        // database host address
	DBPort       string        // database port number
	DBName       string        // database name
	JWTSecret    string        // secret used to sign JWTs
	AccessTTLMin int           // access token time-to-live in minutes
	BcryptCost   int           // bcrypt cost for password verification
	Timezone     string        // restaurant timezone name (IANA)
	WindowOpen   time.Duration // first bookable slot, offset from midnight
	WindowClose  time.Duration // last bookable slot (inclusive)
	SlotMinutes  int           // slot granularity in minutes
}

// Load reads configuration from environment variables. Required variables
// are enforced by must(); missing or malformed values exit with a fatal log
// message. Window values default to dinner service 17:00-21:30 at 30-minute
// steps.
func Load() Config {
	open, err := ParseClock(envStr("SERVICE_WINDOW_OPEN", "17:00"))
	if err != nil {
		log.Fatalf("invalid SERVICE_WINDOW_OPEN: %v", err)
	}
	closeAt, err := ParseClock(envStr("SERVICE_WINDOW_CLOSE", "21:30"))
	if err != nil {
		log.Fatalf("invalid SERVICE_WINDOW_CLOSE: %v", err)
	}
	cfg := Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),
		Timezone:     envStr("RESTAURANT_TZ", "UTC"),
		WindowOpen:   open,
		WindowClose:  closeAt,
		SlotMinutes:  envInt("SERVICE_SLOT_MINUTES", 30),
	}
	if cfg.SlotMinutes < 1 || cfg.WindowClose < cfg.WindowOpen {
		log.Fatalf("invalid service window: open=%s close=%s slot=%dm",
			cfg.WindowOpen, cfg.WindowClose, cfg.SlotMinutes)
	}
	return cfg
}

// Location resolves the configured restaurant timezone, falling back to UTC
// when the name cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("unknown timezone %q, falling back to UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

// ParseClock converts an "HH:MM" wall-clock string into an offset from
// midnight.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
