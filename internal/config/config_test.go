package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.AI.Model != "llama-3.1-8b-instant" {
		t.Errorf("AI.Model = %q", cfg.AI.Model)
	}
	if cfg.Chat.MaxUserLength != 600 {
		t.Errorf("Chat.MaxUserLength = %d, want 600", cfg.Chat.MaxUserLength)
	}
	if cfg.Chat.HistoryWindow != 6 {
		t.Errorf("Chat.HistoryWindow = %d, want 6", cfg.Chat.HistoryWindow)
	}
	if cfg.Chat.Timezone != "Europe/Istanbul" {
		t.Errorf("Chat.Timezone = %q", cfg.Chat.Timezone)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.I18n.DefaultLanguage != "tr" {
		t.Errorf("I18n.DefaultLanguage = %q, want tr", cfg.I18n.DefaultLanguage)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("GROQ_MODEL", "llama-3.3-70b-versatile")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.AI.APIKey != "gsk-test" {
		t.Errorf("AI.APIKey = %q, want gsk-test", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "llama-3.3-70b-versatile" {
		t.Errorf("AI.Model = %q", cfg.AI.Model)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("server:\n  port: 6001\nchat:\n  max_user_length: 300\n")
	if err := os.WriteFile(path, yaml, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != 6001 {
		t.Errorf("Server.Port = %d, want 6001", cfg.Server.Port)
	}
	if cfg.Chat.MaxUserLength != 300 {
		t.Errorf("Chat.MaxUserLength = %d, want 300", cfg.Chat.MaxUserLength)
	}
	// Untouched keys keep their defaults
	if cfg.Chat.HistoryWindow != 6 {
		t.Errorf("Chat.HistoryWindow = %d, want 6", cfg.Chat.HistoryWindow)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("cache:\n  backend: memcached\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for unsupported cache backend")
	}
}
