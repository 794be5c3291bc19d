package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	// Clear any environment variables to test defaults
	env := []string{
		"RAW_DIR", "OUT_DIR", "HTTP_ADDR", "CATALOG_PATH",
		"FETCH_TIMEOUT", "FETCH_RETRIES", "USER_AGENT", "LOG_LEVEL",
	}

	for _, key := range env {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify default values
	if cfg.RawDir != "./rule-set" {
		t.Errorf("Expected RawDir='./rule-set', got '%s'", cfg.RawDir)
	}
	if cfg.OutDir != "./sing-box" {
		t.Errorf("Expected OutDir='./sing-box', got '%s'", cfg.OutDir)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected HTTPAddr=':8080', got '%s'", cfg.HTTPAddr)
	}
	if cfg.CatalogPath != "" {
		t.Errorf("Expected empty CatalogPath, got '%s'", cfg.CatalogPath)
	}
	if cfg.FetchTimeout != 60*time.Second {
		t.Errorf("Expected FetchTimeout=60s, got %v", cfg.FetchTimeout)
	}
	if cfg.FetchRetries != 1 {
		t.Errorf("Expected FetchRetries=1, got %d", cfg.FetchRetries)
	}
	if cfg.UserAgent != "rulebridge/1.0" {
		t.Errorf("Expected UserAgent='rulebridge/1.0', got '%s'", cfg.UserAgent)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel='info', got '%s'", cfg.LogLevel)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	// Set environment variables
	os.Setenv("RAW_DIR", "/tmp/raw")
	os.Setenv("OUT_DIR", "/tmp/out")
	os.Setenv("HTTP_ADDR", ":9999")
	os.Setenv("CATALOG_PATH", "/etc/rulebridge/providers.yaml")
	os.Setenv("FETCH_TIMEOUT", "5s")
	os.Setenv("FETCH_RETRIES", "3")
	os.Setenv("USER_AGENT", "custom/2.0")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("RAW_DIR")
		os.Unsetenv("OUT_DIR")
		os.Unsetenv("HTTP_ADDR")
		os.Unsetenv("CATALOG_PATH")
		os.Unsetenv("FETCH_TIMEOUT")
		os.Unsetenv("FETCH_RETRIES")
		os.Unsetenv("USER_AGENT")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.RawDir != "/tmp/raw" {
		t.Errorf("Expected RawDir='/tmp/raw', got '%s'", cfg.RawDir)
	}
	if cfg.OutDir != "/tmp/out" {
		t.Errorf("Expected OutDir='/tmp/out', got '%s'", cfg.OutDir)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("Expected HTTPAddr=':9999', got '%s'", cfg.HTTPAddr)
	}
	if cfg.CatalogPath != "/etc/rulebridge/providers.yaml" {
		t.Errorf("Expected CatalogPath='/etc/rulebridge/providers.yaml', got '%s'", cfg.CatalogPath)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("Expected FetchTimeout=5s, got %v", cfg.FetchTimeout)
	}
	if cfg.FetchRetries != 3 {
		t.Errorf("Expected FetchRetries=3, got %d", cfg.FetchRetries)
	}
	if cfg.UserAgent != "custom/2.0" {
		t.Errorf("Expected UserAgent='custom/2.0', got '%s'", cfg.UserAgent)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel='debug', got '%s'", cfg.LogLevel)
	}
}
