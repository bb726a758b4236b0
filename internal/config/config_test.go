package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "50051" || cfg.HTTPPort != "8080" {
		t.Errorf("unexpected ports %s/%s", cfg.Port, cfg.HTTPPort)
	}
	if cfg.CacheType != "memory" || cfg.SearcherType != "mock" {
		t.Errorf("unexpected adapters %s/%s", cfg.CacheType, cfg.SearcherType)
	}
	if cfg.CacheTTL != 6*time.Hour {
		t.Errorf("expected 6h cache ttl, got %v", cfg.CacheTTL)
	}
	if cfg.LookupDelay != time.Second {
		t.Errorf("expected 1s lookup delay, got %v", cfg.LookupDelay)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "6000")
	t.Setenv("CACHE_TYPE", "sqlite")
	t.Setenv("DB_PATH", "/tmp/cache.db")
	t.Setenv("SEARCHER_TYPE", "rakuten")
	t.Setenv("RAKUTEN_APP_ID", "app-1")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("BASE_URL", "https://leafit.example.com")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "6000" {
		t.Errorf("expected port 6000, got %s", cfg.Port)
	}
	if cfg.CacheType != "sqlite" || cfg.DBPath != "/tmp/cache.db" {
		t.Errorf("unexpected cache config %s %s", cfg.CacheType, cfg.DBPath)
	}
	if cfg.SearcherType != "rakuten" || cfg.RakutenAppID != "app-1" {
		t.Errorf("unexpected searcher config %s %s", cfg.SearcherType, cfg.RakutenAppID)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("expected 30m, got %v", cfg.CacheTTL)
	}
	if cfg.BaseURL != "https://leafit.example.com" {
		t.Errorf("unexpected base url %s", cfg.BaseURL)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := "http_port: \"9090\"\nlookup_delay: 250ms\ncatalog_glob: \"plants/**/*.yaml\"\n"
	if err := os.WriteFile(filepath.Join(dir, "leafit.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("expected http port 9090, got %s", cfg.HTTPPort)
	}
	if cfg.LookupDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.LookupDelay)
	}
	if cfg.CatalogGlob != "plants/**/*.yaml" {
		t.Errorf("unexpected catalog glob %q", cfg.CatalogGlob)
	}

	// Environment wins over the file
	t.Setenv("HTTP_PORT", "7070")
	cfg, err = Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != "7070" {
		t.Errorf("expected env to override file, got %s", cfg.HTTPPort)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			CacheType:       "memory",
			SearcherType:    "mock",
			CacheTTL:        time.Hour,
			CleanupInterval: time.Hour,
			BaseURL:         "http://localhost:8080",
			LogFormat:       "console",
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown cache", func(c *Config) { c.CacheType = "redis" }, "invalid cache type"},
		{"unknown searcher", func(c *Config) { c.SearcherType = "amazon" }, "invalid searcher type"},
		{"rakuten without app id", func(c *Config) { c.SearcherType = "rakuten" }, "RAKUTEN_APP_ID"},
		{"zero ttl", func(c *Config) { c.CacheTTL = 0 }, "cache ttl"},
		{"zero cleanup", func(c *Config) { c.CleanupInterval = 0 }, "cleanup interval"},
		{"negative delay", func(c *Config) { c.LookupDelay = -time.Second }, "lookup delay"},
		{"relative base url", func(c *Config) { c.BaseURL = "/leafit" }, "base url"},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://example.com" }, "base url"},
		{"cert without key", func(c *Config) { c.TLSCert = "cert.pem" }, "TLS_KEY"},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestSetupLogging(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	if err := setupLogging(&buf, "warn", "json"); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	log.Info().Msg("hidden")
	log.Warn().Str("keyword", "houseplant Ivy").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"keyword":"houseplant Ivy"`) {
		t.Errorf("expected structured json line, got %s", out)
	}

	if err := setupLogging(&buf, "loud", "json"); err == nil {
		t.Error("expected error for unknown level")
	}
}
