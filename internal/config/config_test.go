package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"GEDSERVE_CONFIG", "PORT", "GEDSERVE_API_KEY", "MAX_UPLOAD_BYTES", "DOC_TTL", "CLEANUP_INTERVAL", "MAX_TRAVERSAL_DEPTH"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("Port = %q, want 8090", cfg.Port)
	}
	if cfg.MaxUploadBytes != 33554432 {
		t.Errorf("MaxUploadBytes = %d, want 33554432", cfg.MaxUploadBytes)
	}
	if cfg.CleanupInterval != 10*time.Minute {
		t.Errorf("CleanupInterval = %v, want 10m", cfg.CleanupInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("GEDSERVE_API_KEY", "secret")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("DOC_TTL", "30m")
	t.Setenv("MAX_TRAVERSAL_DEPTH", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %q, want secret", cfg.APIKey)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("MaxUploadBytes = %d, want 1024", cfg.MaxUploadBytes)
	}
	if cfg.DocTTL != 30*time.Minute {
		t.Errorf("DocTTL = %v, want 30m", cfg.DocTTL)
	}
	if cfg.MaxTraversalDepth != 5 {
		t.Errorf("MaxTraversalDepth = %d, want 5", cfg.MaxTraversalDepth)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gedserve.yaml")
	content := "port: \"7070\"\napi_key: filekey\nmax_upload_bytes: 2048\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEDSERVE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Port = %q, want 7070", cfg.Port)
	}
	if cfg.APIKey != "filekey" {
		t.Errorf("APIKey = %q, want filekey", cfg.APIKey)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Errorf("MaxUploadBytes = %d, want 2048", cfg.MaxUploadBytes)
	}
	// Fields absent from the file keep their defaults.
	if cfg.CleanupInterval != 10*time.Minute {
		t.Errorf("CleanupInterval = %v, want 10m", cfg.CleanupInterval)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gedserve.yaml")
	if err := os.WriteFile(path, []byte("port: \"7070\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEDSERVE_CONFIG", path)
	t.Setenv("PORT", "6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "6060" {
		t.Errorf("Port = %q, want env value 6060", cfg.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("GEDSERVE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	cfg.MaxUploadBytes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero upload limit")
	}
	cfg = defaults()
	cfg.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty port")
	}
	cfg = defaults()
	cfg.MaxTraversalDepth = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative traversal depth")
	}
}
