// Package config handles configuration loading for StockPulse.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	LLM       LLMConfig       `mapstructure:"llm"       yaml:"llm"`
	Fetch     FetchConfig     `mapstructure:"fetch"     yaml:"fetch"`
	General   PipelineConfig  `mapstructure:"general"   yaml:"general"`
	Portfolio PipelineConfig  `mapstructure:"portfolio" yaml:"portfolio"`
	Analyst   AnalystConfig   `mapstructure:"analyst"   yaml:"analyst"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns the host:port listen address.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LLMConfig holds sentiment oracle provider configuration.
type LLMConfig struct {
	Primary     string  `mapstructure:"primary"     yaml:"primary"` // "gemini" or "ollama"
	GeminiKey   string  `mapstructure:"gemini_key"  yaml:"gemini_key"`
	OllamaURL   string  `mapstructure:"ollama_url"  yaml:"ollama_url"`
	Model       string  `mapstructure:"model"       yaml:"model"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"  yaml:"max_tokens"`
}

// FetchConfig holds outbound HTTP settings for scraping and feeds.
type FetchConfig struct {
	ScrapeTimeoutSec int `mapstructure:"scrape_timeout_sec" yaml:"scrape_timeout_sec"`
	FeedTimeoutSec   int `mapstructure:"feed_timeout_sec"   yaml:"feed_timeout_sec"`
	PolitenessMS     int `mapstructure:"politeness_ms"      yaml:"politeness_ms"`
}

// ScrapeTimeout returns the per-site fetch timeout.
func (c FetchConfig) ScrapeTimeout() time.Duration {
	return time.Duration(c.ScrapeTimeoutSec) * time.Second
}

// FeedTimeout returns the per-feed fetch timeout.
func (c FetchConfig) FeedTimeout() time.Duration {
	return time.Duration(c.FeedTimeoutSec) * time.Second
}

// Politeness returns the inter-request delay within one tier.
func (c FetchConfig) Politeness() time.Duration {
	return time.Duration(c.PolitenessMS) * time.Millisecond
}

// PipelineConfig hoists the degradation-tier thresholds and result caps for
// one pipeline (general or portfolio), so tuning is centralized instead of
// scattered through the flow.
type PipelineConfig struct {
	FeedThreshold     int `mapstructure:"feed_threshold"     yaml:"feed_threshold"`     // escalate to feeds below this
	FallbackThreshold int `mapstructure:"fallback_threshold" yaml:"fallback_threshold"` // escalate to static/generated below this
	ResultCap         int `mapstructure:"result_cap"         yaml:"result_cap"`
}

// AnalystConfig holds sentiment analysis pacing settings.
type AnalystConfig struct {
	CallDelayMS int `mapstructure:"call_delay_ms" yaml:"call_delay_ms"` // between oracle calls
}

// CallDelay returns the inter-call oracle pacing delay.
func (c AnalystConfig) CallDelay() time.Duration {
	return time.Duration(c.CallDelayMS) * time.Millisecond
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.stockpulse/config.yaml (home directory)
//  3. /etc/stockpulse/config.yaml (system)
//
// Environment variables override config file values.
// Format: STOCKPULSE_<SECTION>_<KEY>, e.g. STOCKPULSE_LLM_GEMINI_KEY.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".stockpulse"))
	v.AddConfigPath("/etc/stockpulse")

	v.SetEnvPrefix("STOCKPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — fine, use defaults + env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("STOCKPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// LLM defaults — Gemini primary, local Ollama as fallback.
	v.SetDefault("llm.primary", "gemini")
	v.SetDefault("llm.ollama_url", "http://localhost:11434")
	v.SetDefault("llm.model", "gemini-1.5-flash")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 1024)

	// Fetch defaults
	v.SetDefault("fetch.scrape_timeout_sec", 15)
	v.SetDefault("fetch.feed_timeout_sec", 10)
	v.SetDefault("fetch.politeness_ms", 500)

	// General news pipeline: feeds below 15 scraped, static below 8 total.
	v.SetDefault("general.feed_threshold", 15)
	v.SetDefault("general.fallback_threshold", 8)
	v.SetDefault("general.result_cap", 30)

	// Portfolio pipeline: targeted search below 5 matches, placeholders below 3.
	v.SetDefault("portfolio.feed_threshold", 5)
	v.SetDefault("portfolio.fallback_threshold", 3)
	v.SetDefault("portfolio.result_cap", 20)

	// Analyst defaults
	v.SetDefault("analyst.call_delay_ms", 800)
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("STOCKPULSE_LLM_GEMINI_KEY"); key != "" {
		cfg.LLM.GeminiKey = key
	}
	// The original dashboard used GOOGLE_API_KEY; honor it for drop-in use.
	if cfg.LLM.GeminiKey == "" {
		cfg.LLM.GeminiKey = os.Getenv("GOOGLE_API_KEY")
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
