package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.Site.BaseURL != "https://bincollection.northumberland.gov.uk" {
		t.Errorf("BaseURL = %q", cfg.Site.BaseURL)
	}
	if cfg.Site.TrackingCookie.Name != "x-bni-ja" {
		t.Errorf("TrackingCookie.Name = %q", cfg.Site.TrackingCookie.Name)
	}
	if cfg.RunWindow.Hour != 19 || cfg.RunWindow.Minutes != 15 {
		t.Errorf("RunWindow = %d:%d, want 19:15", cfg.RunWindow.Hour, cfg.RunWindow.Minutes)
	}
	if !cfg.AllowInsecureFallback {
		t.Error("AllowInsecureFallback should default to true")
	}
	if !cfg.Watched("General") {
		t.Error("default watch list should contain General")
	}
	if cfg.Watched("Garden") {
		t.Error("default watch list should not contain Garden")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Postcode != "NE18 0QP" {
		t.Errorf("Postcode = %q, want default", cfg.Postcode)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
postcode: "NE1 1AA"
address_match: "Rose Cottage"
watch_for:
  - General
  - Recycling
run_window:
  hour: 18
  minutes: 30
allow_insecure_fallback: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Postcode != "NE1 1AA" {
		t.Errorf("Postcode = %q, want %q", cfg.Postcode, "NE1 1AA")
	}
	if cfg.AddressMatch != "Rose Cottage" {
		t.Errorf("AddressMatch = %q, want %q", cfg.AddressMatch, "Rose Cottage")
	}
	if !cfg.Watched("Recycling") {
		t.Error("watch list should contain Recycling")
	}
	if cfg.RunWindow.Hour != 18 || cfg.RunWindow.Minutes != 30 {
		t.Errorf("RunWindow = %d:%d, want 18:30", cfg.RunWindow.Hour, cfg.RunWindow.Minutes)
	}
	if cfg.AllowInsecureFallback {
		t.Error("AllowInsecureFallback should be false")
	}
	// unset fields keep their defaults
	if cfg.Site.BaseURL != "https://bincollection.northumberland.gov.uk" {
		t.Errorf("BaseURL = %q, want default", cfg.Site.BaseURL)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("watch_for: [unterminated"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() should fail on malformed YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token123")
	t.Setenv("TELEGRAM_CHAT_ID", "456")
	t.Setenv("ALLOW_INSECURE_FALLBACK", "no")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Telegram.BotToken != "token123" {
		t.Errorf("BotToken = %q", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != "456" {
		t.Errorf("ChatID = %q", cfg.Telegram.ChatID)
	}
	if cfg.AllowInsecureFallback {
		t.Error("ALLOW_INSECURE_FALLBACK=no should disable the fallback")
	}
}

func TestForceTestMessage(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"YES", true},
		{" true ", true},
		{"", false},
		{"0", false},
		{"no", false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			t.Setenv("FORCE_TEST_MESSAGE", tt.value)
			if got := ForceTestMessage(); got != tt.want {
				t.Errorf("ForceTestMessage() with %q = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
