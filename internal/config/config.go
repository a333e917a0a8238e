// Package config reads server settings from the environment.
//
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devSecret signs tokens when JWT_SECRET is unset outside production.
const devSecret = "homegame-dev-secret"

// Config holds the server settings.
type Config struct {
	Port           int
	DBPath         string
	JWTSecret      string
	TokenTTL       time.Duration
	StorageTimeout time.Duration
	// PublicURL is the site address encoded in invite links.
	PublicURL   string
	CORSOrigins []string
	LogLevel    string
	Env         string
}

// ErrMissingSecret is returned in production when JWT_SECRET is unset.
var ErrMissingSecret = errors.New("JWT_SECRET is required in production")

// Load reads .env, if any, and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		DBPath:    get("DB_PATH", "./data/homegame.db"),
		JWTSecret: getenv("JWT_SECRET"),
		PublicURL: get("PUBLIC_URL", "http://localhost:8080"),
		LogLevel:  get("LOG_LEVEL", "info"),
		Env:       get("APP_ENV", "dev"),
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", getenv("PORT"))
	}
	cfg.Port = port

	if cfg.TokenTTL, err = duration(get("TOKEN_TTL", "24h"), "TOKEN_TTL"); err != nil {
		return nil, err
	}
	if cfg.StorageTimeout, err = duration(get("STORAGE_TIMEOUT", "5s"), "STORAGE_TIMEOUT"); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" {
		if cfg.Production() {
			return nil, ErrMissingSecret
		}
		slog.Warn("JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devSecret
	}

	return cfg, nil
}

// Production reports whether APP_ENV is production.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func duration(s, key string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, s)
	}
	return d, nil
}
