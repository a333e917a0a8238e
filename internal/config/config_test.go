package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Port != 8080 || cfg.Addr() != ":8080" {
		t.Errorf("port: expected 8080, got %d", cfg.Port)
	}
	if cfg.DBPath != "./data/homegame.db" {
		t.Errorf("db path: got %q", cfg.DBPath)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.StorageTimeout != 5*time.Second {
		t.Errorf("durations: got %v / %v", cfg.TokenTTL, cfg.StorageTimeout)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("cors origins: got %v", cfg.CORSOrigins)
	}
	if cfg.JWTSecret != devSecret {
		t.Error("expected the development secret outside production")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PORT":            "9090",
		"DB_PATH":         "/tmp/poker.db",
		"JWT_SECRET":      "s3cret",
		"TOKEN_TTL":       "1h",
		"STORAGE_TIMEOUT": "250ms",
		"PUBLIC_URL":      "https://poker.example.com",
		"CORS_ORIGINS":    "https://a.example.com, https://b.example.com,",
		"APP_ENV":         "production",
	}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Port != 9090 || cfg.DBPath != "/tmp/poker.db" || cfg.JWTSecret != "s3cret" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.TokenTTL != time.Hour || cfg.StorageTimeout != 250*time.Millisecond {
		t.Errorf("durations: got %v / %v", cfg.TokenTTL, cfg.StorageTimeout)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("cors origins: expected %v, got %v", want, cfg.CORSOrigins)
	}
	if !cfg.Production() {
		t.Error("expected production")
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"bad port", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"bad ttl", map[string]string{"TOKEN_TTL": "forever"}},
		{"negative timeout", map[string]string{"STORAGE_TIMEOUT": "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(env(tt.vars)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	t.Run("missing secret in production", func(t *testing.T) {
		_, err := FromEnv(env(map[string]string{"APP_ENV": "production"}))
		if !errors.Is(err, ErrMissingSecret) {
			t.Errorf("expected ErrMissingSecret, got %v", err)
		}
	})
}
