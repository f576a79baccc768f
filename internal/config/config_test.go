package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Addr() != "0.0.0.0:8080" {
		t.Errorf("API.Addr() = %q, want %q", cfg.API.Addr(), "0.0.0.0:8080")
	}
	if cfg.LLM.Primary != "gemini" {
		t.Errorf("LLM.Primary = %q, want gemini", cfg.LLM.Primary)
	}
	if cfg.LLM.OllamaURL != "http://localhost:11434" {
		t.Errorf("LLM.OllamaURL = %q", cfg.LLM.OllamaURL)
	}
	if cfg.General.FeedThreshold != 15 || cfg.General.FallbackThreshold != 8 || cfg.General.ResultCap != 30 {
		t.Errorf("General pipeline defaults = %+v", cfg.General)
	}
	if cfg.Portfolio.FeedThreshold != 5 || cfg.Portfolio.FallbackThreshold != 3 || cfg.Portfolio.ResultCap != 20 {
		t.Errorf("Portfolio pipeline defaults = %+v", cfg.Portfolio)
	}
	if cfg.Fetch.ScrapeTimeout() != 15*time.Second {
		t.Errorf("Fetch.ScrapeTimeout() = %v", cfg.Fetch.ScrapeTimeout())
	}
	if cfg.Analyst.CallDelay() != 800*time.Millisecond {
		t.Errorf("Analyst.CallDelay() = %v", cfg.Analyst.CallDelay())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  host: 127.0.0.1
  port: 9090
llm:
  primary: ollama
  model: qwen2.5:7b
general:
  result_cap: 12
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.API.Addr() != "127.0.0.1:9090" {
		t.Errorf("API.Addr() = %q", cfg.API.Addr())
	}
	if cfg.LLM.Primary != "ollama" || cfg.LLM.Model != "qwen2.5:7b" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.General.ResultCap != 12 {
		t.Errorf("General.ResultCap = %d, want 12", cfg.General.ResultCap)
	}
	// Unset keys keep their defaults.
	if cfg.General.FeedThreshold != 15 {
		t.Errorf("General.FeedThreshold = %d, want default 15", cfg.General.FeedThreshold)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestGeminiKeyFromEnv(t *testing.T) {
	t.Setenv("STOCKPULSE_LLM_GEMINI_KEY", "sk-test-123")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.GeminiKey != "sk-test-123" {
		t.Errorf("LLM.GeminiKey = %q, want sk-test-123", cfg.LLM.GeminiKey)
	}
}

func TestGeminiKeyGoogleFallback(t *testing.T) {
	t.Setenv("STOCKPULSE_LLM_GEMINI_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key-456")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.GeminiKey != "google-key-456" {
		t.Errorf("LLM.GeminiKey = %q, want google-key-456", cfg.LLM.GeminiKey)
	}
}
