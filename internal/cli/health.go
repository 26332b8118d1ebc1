package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/factlens/factlens/internal/llm"
)

var healthTimeout time.Duration

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check provider configuration and connectivity",
	Long: `Health verifies that the configured providers are reachable:
- Credentials are present in the environment
- The LLM provider answers a minimal request

Example:
  factlens health
  factlens health --llm-provider anthropic`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 15*time.Second, "connectivity check timeout")
	healthCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic)")
	healthCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	fmt.Printf("Search provider: serpapi (key configured)\n")

	if provider.IsAvailable(ctx) {
		fmt.Printf("LLM provider:    %s (reachable)\n", provider.Name())
		return nil
	}
	return fmt.Errorf("LLM provider %s is not reachable", provider.Name())
}
