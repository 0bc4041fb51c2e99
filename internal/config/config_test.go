package config_test

import (
	"strings"
	"testing"

	"carebook/internal/config"
)

func TestNewRequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://x")
	if _, err := config.New(); err == nil {
		t.Fatal("expected error without SESSION_SECRET")
	}
}

func TestNewComposesDatabaseURL(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "care")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "carebook")

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(cfg.DatabaseURL, "care:pw@db.internal:5432/carebook") {
		t.Errorf("unexpected url: %s", cfg.DatabaseURL)
	}
}

func TestNewDatabaseURLWins(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("DATABASE_URL", "postgres://direct")
	cfg, err := config.New()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL != "postgres://direct" {
		t.Errorf("unexpected url: %s", cfg.DatabaseURL)
	}
}
