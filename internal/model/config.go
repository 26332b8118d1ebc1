package model

import (
	"fmt"
	"time"
)

// Config is the complete runtime configuration, constructed once at startup
// and passed into each component constructor. No component reads globals.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Content     ContentConfig     `yaml:"content" mapstructure:"content"`
	Intent      IntentConfig      `yaml:"intent" mapstructure:"intent"`
	Enrich      EnrichConfig      `yaml:"enrich" mapstructure:"enrich"`
	Image       ImageConfig       `yaml:"image" mapstructure:"image"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// SearchConfig controls the search provider and query fan-out
type SearchConfig struct {
	APIKey         string   `yaml:"-" mapstructure:"-"` // SERPAPI_KEY, env only
	BaseURL        string   `yaml:"base_url" mapstructure:"base_url"`
	HL             string   `yaml:"hl" mapstructure:"hl"` // Interface language sent to the provider
	GL             string   `yaml:"gl" mapstructure:"gl"` // Country code sent to the provider
	TrustedDomains []string `yaml:"trusted_domains" mapstructure:"trusted_domains"`
	DomainNum      int      `yaml:"domain_num" mapstructure:"domain_num"`   // Results per trusted-domain query
	GeneralNum     int      `yaml:"general_num" mapstructure:"general_num"` // Results for the general query
	RatePerSecond  float64  `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"` // "openai" or "anthropic"
	Model       string `yaml:"model" mapstructure:"model"`
	VisionModel string `yaml:"vision_model" mapstructure:"vision_model"`
	APIKey      string `yaml:"-" mapstructure:"-"` // Env only
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Timeout     int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// CacheConfig controls search response caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ContentConfig controls derivative content generation
type ContentConfig struct {
	TweetMaxRunes int `yaml:"tweet_max_runes" mapstructure:"tweet_max_runes"`
	MaxSources    int `yaml:"max_sources" mapstructure:"max_sources"` // Sources included in generation prompts
}

// IntentConfig controls claim intent extraction
type IntentConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// EnrichConfig controls evidence snippet enrichment
type EnrichConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ImageConfig controls image normalization bounds
type ImageConfig struct {
	MaxDimension int   `yaml:"max_dimension" mapstructure:"max_dimension"`
	JPEGQuality  int   `yaml:"jpeg_quality" mapstructure:"jpeg_quality"`
	MaxBytes     int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// OutputConfig controls CLI rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      20 * time.Second,
			UserAgent:    "Factlens/0.1 (+https://github.com/factlens/factlens)",
			MaxBodyBytes: 2_000_000,
		},
		Search: SearchConfig{
			BaseURL:        "https://serpapi.com/search.json",
			HL:             "ar",
			TrustedDomains: []string{"aljazeera.net", "una-oic.org", "bbc.com"},
			DomainNum:      2,
			GeneralNum:     5,
			RatePerSecond:  2,
			RateBurst:      5,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o",
			VisionModel: "gpt-4o",
			Timeout:     25,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Content: ContentConfig{
			TweetMaxRunes: 280,
			MaxSources:    5,
		},
		Intent: IntentConfig{},
		Enrich: EnrichConfig{
			Timeout: 10 * time.Second,
		},
		Image: ImageConfig{
			MaxDimension: 2048,
			JPEGQuality:  85,
			MaxBytes:     10 * 1024 * 1024,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{},
	}
}

// Validate checks required provider credentials. Missing credentials are a
// startup failure, never a per-request error.
func (c *Config) Validate() error {
	if c.Search.APIKey == "" {
		return fmt.Errorf("search provider API key is required (set SERPAPI_KEY)")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM provider API key is required (set OPENAI_API_KEY or ANTHROPIC_API_KEY)")
	}
	return nil
}
