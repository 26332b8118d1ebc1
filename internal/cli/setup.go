package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/factlens/factlens/internal/model"
)

var (
	llmProvider string
	llmModel    string
	noCache     bool
)

// buildConfig assembles the effective configuration: defaults, then the
// config file and FACTLENS_* environment, then flags. Provider credentials
// come from the environment only.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if viper.ConfigFileUsed() != "" {
		if err := viper.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	cfg.Search.APIKey = os.Getenv("SERPAPI_KEY")

	switch cfg.LLM.Provider {
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	default:
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	if cfg.Search.APIKey == "" {
		return nil, fmt.Errorf("SERPAPI_KEY environment variable not set")
	}

	return cfg, nil
}

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
