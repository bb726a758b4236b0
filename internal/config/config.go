package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port               string        `mapstructure:"port"`
	HTTPPort           string        `mapstructure:"http_port"`
	CacheType          string        `mapstructure:"cache_type"`    // "memory" | "sqlite"
	DBPath             string        `mapstructure:"db_path"`       // SQLite database file path (used when CacheType=sqlite)
	SearcherType       string        `mapstructure:"searcher_type"` // "mock" | "rakuten"
	TLSCert            string        `mapstructure:"tls_cert"`      // path to this service's certificate
	TLSKey             string        `mapstructure:"tls_key"`       // path to this service's private key
	TLSCA              string        `mapstructure:"tls_ca"`        // path to the CA certificate
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	CleanupInterval    time.Duration `mapstructure:"cleanup_interval"`
	LookupDelay        time.Duration `mapstructure:"lookup_delay"`
	BaseURL            string        `mapstructure:"base_url"`
	RakutenAppID       string        `mapstructure:"rakuten_app_id"`
	RakutenAffiliateID string        `mapstructure:"rakuten_affiliate_id"`
	CatalogGlob        string        `mapstructure:"catalog_glob"`
	LogLevel           string        `mapstructure:"log_level"`
	LogFormat          string        `mapstructure:"log_format"`
}

// defaults doubles as the list of keys read from the environment
var defaults = map[string]any{
	"port":                 "50051",
	"http_port":            "8080",
	"cache_type":           "memory",
	"db_path":              "./diagnosis.db",
	"searcher_type":        "mock",
	"tls_cert":             "",
	"tls_key":              "",
	"tls_ca":               "",
	"cache_ttl":            6 * time.Hour,
	"cleanup_interval":     time.Hour,
	"lookup_delay":         time.Second,
	"base_url":             "http://localhost:8080",
	"rakuten_app_id":       "",
	"rakuten_affiliate_id": "",
	"catalog_glob":         "",
	"log_level":            "info",
	"log_format":           "console",
}

// Load reads configuration from defaults, an optional config file and
// environment variables, in increasing order of precedence.
// An empty configFile looks for leafit.{yaml,json,toml} in the working directory.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("leafit")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	// Environment variables use the bare key names, e.g. CACHE_TYPE
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges and cross-field requirements
func (c *Config) Validate() error {
	if c.CacheType != "memory" && c.CacheType != "sqlite" {
		return fmt.Errorf("invalid cache type: %s. Must be 'memory' or 'sqlite'", c.CacheType)
	}
	if c.CacheType == "sqlite" && c.DBPath == "" {
		return fmt.Errorf("db path is required when cache type is 'sqlite'")
	}

	if c.SearcherType != "mock" && c.SearcherType != "rakuten" {
		return fmt.Errorf("invalid searcher type: %s. Must be 'mock' or 'rakuten'", c.SearcherType)
	}
	if c.SearcherType == "rakuten" && c.RakutenAppID == "" {
		return fmt.Errorf("RAKUTEN_APP_ID is required when searcher type is 'rakuten'")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup interval must be positive")
	}
	if c.LookupDelay < 0 {
		return fmt.Errorf("lookup delay must not be negative")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url must be an absolute http(s) url: %q", c.BaseURL)
	}

	if c.TLSCert != "" && c.TLSKey == "" {
		return fmt.Errorf("TLS_KEY is required when TLS_CERT is set")
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s. Must be 'console' or 'json'", c.LogFormat)
	}

	return nil
}
