package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  model: test-model\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Model != "test-model" {
		t.Fatalf("unexpected model: %q", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL == "" || cfg.LLM.TimeoutSeconds == 0 || cfg.LLM.MaxInputChars == 0 {
		t.Fatal("llm defaults not applied")
	}
	if cfg.Store.Backend != "chromem" || cfg.Store.Collection == "" {
		t.Fatal("store defaults not applied")
	}
	if cfg.Scrape.ContentSelector == "" || cfg.Scrape.NextLinkText == "" {
		t.Fatal("scrape defaults not applied")
	}
	if cfg.Paths.ChaptersDir == "" || cfg.Paths.FeedbackFile == "" {
		t.Fatal("path defaults not applied")
	}
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_BOOKFLOW_KEY", "secret-token")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  key: ${TEST_BOOKFLOW_KEY}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Key != "secret-token" {
		t.Fatalf("env not expanded: %q", cfg.LLM.Key)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
