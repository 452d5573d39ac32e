package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8000" {
		t.Fatalf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Fatalf("expected development environment, got %s", cfg.Environment)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("redis must default to disabled, got %q", cfg.RedisAddr)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port from env, got %s", cfg.Port)
	}
	if cfg.Environment != "production" {
		t.Fatalf("expected production, got %s", cfg.Environment)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("expected secret from env, got %q", cfg.JWTSecret)
	}
	if cfg.DBUrl != "postgres://u:p@db:5432/app" {
		t.Fatalf("expected db url from env, got %q", cfg.DBUrl)
	}
}
