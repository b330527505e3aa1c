package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Sale.SuperSaleThreshold != 50 {
		t.Fatalf("expected super sale threshold 50, got %v", cfg.Sale.SuperSaleThreshold)
	}
	if cfg.Sale.HomeSuperSaleThreshold != 80 {
		t.Fatalf("expected home threshold 80, got %v", cfg.Sale.HomeSuperSaleThreshold)
	}
	if cfg.Cart.MinQuantity != 1 || cfg.Cart.MaxQuantity != 0 {
		t.Fatalf("unexpected cart bounds %+v", cfg.Cart)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis should be disabled without a URL")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" || !cfg.Redis.Enabled() {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if got := cfg.Session.TTL; got != 30*time.Minute {
		t.Fatalf("expected session ttl 30m, got %v", got)
	}
	if cfg.Catalog.ProductsSource != "https://cdn.example.com/products.json" {
		t.Fatalf("unexpected products source %q", cfg.Catalog.ProductsSource)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://shop.example.com" {
		t.Fatalf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_InvalidCartBounds(t *testing.T) {
	t.Setenv(EnvCartMinQuantity, "3")
	t.Setenv(EnvCartMaxQuantity, "2")

	if _, err := Load(); err == nil {
		t.Fatal("expected max < min to return an error")
	}
}

func TestLoad_InvalidThreshold(t *testing.T) {
	t.Setenv(EnvSuperSaleThreshold, "120")

	if _, err := Load(); err == nil {
		t.Fatal("expected out of range threshold to return an error")
	}
}

func TestLoad_MalformedDuration(t *testing.T) {
	t.Setenv(EnvSessionTTL, "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected malformed duration to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvSessionTTL, "30m")
	t.Setenv(EnvProductsSource, "https://cdn.example.com/products.json")
	t.Setenv(EnvCORSOrigins, "http://localhost:5173,https://shop.example.com")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
