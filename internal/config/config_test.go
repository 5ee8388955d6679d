package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/clinic_test")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.DBMaxConns != 10 {
		t.Errorf("expected default max conns 10, got %d", cfg.DBMaxConns)
	}
	if cfg.LowStockAt != 10 {
		t.Errorf("expected default low stock threshold 10, got %d", cfg.LowStockAt)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/clinic_test")
	os.Setenv("PORT", "8080")
	os.Setenv("ENV", "production")
	defer func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("expected production mode")
	}
}

func TestValidate_DatabaseURLRequired(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing DATABASE_URL")
	}
}

func TestValidate_NegativeLowStockThreshold(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost/clinic", LowStockAt: -1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative threshold")
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost/clinic", LowStockAt: 10}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
