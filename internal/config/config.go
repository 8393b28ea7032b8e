package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is resolved in three layers: built-in defaults, then the YAML
// file named by GEDSERVE_CONFIG (if set), then environment variables.
type Config struct {
	Port string `yaml:"port"`

	// Auth. An empty key disables bearer-token checks.
	APIKey string `yaml:"api_key"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Parsed document retention. Zero keeps documents forever.
	DocTTL          time.Duration `yaml:"doc_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// Kinship query bounds
	MaxTraversalDepth int `yaml:"max_traversal_depth"`
}

func defaults() Config {
	return Config{
		Port:              "8090",
		MaxUploadBytes:    33554432, // 32MB
		DocTTL:            0,
		CleanupInterval:   10 * time.Minute,
		MaxTraversalDepth: 20,
	}
}

func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("GEDSERVE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("GEDSERVE_API_KEY", cfg.APIKey)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.DocTTL = envDuration("DOC_TTL", cfg.DocTTL)
	cfg.CleanupInterval = envDuration("CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.MaxTraversalDepth = envInt("MAX_TRAVERSAL_DEPTH", cfg.MaxTraversalDepth)

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	if c.DocTTL < 0 {
		return fmt.Errorf("doc_ttl must not be negative")
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup_interval must be positive")
	}
	if c.MaxTraversalDepth <= 0 {
		return fmt.Errorf("max_traversal_depth must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
