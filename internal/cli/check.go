package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/pipeline"
)

var (
	sourceCount     int
	genNews         bool
	genTweet        bool
	preserveSources bool
	extractIntent   bool
	checkTimeout    time.Duration
	jsonOutput      bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Verify a single claim against live web sources",
	Long: `Check verifies one claim:
- Detect the claim's language
- Search trusted outlets and the open web concurrently
- Weigh the gathered evidence with a language model
- Return a verdict with the sources it relied on

Example:
  factlens check "The Suez Canal was closed to traffic today"
  factlens check "..." --sources 10 --news --tweet
  factlens check "..." --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVar(&sourceCount, "sources", 0, "general-query result count (0 = configured default)")
	checkCmd.Flags().BoolVar(&genNews, "news", false, "draft a news article from the verdict")
	checkCmd.Flags().BoolVar(&genTweet, "tweet", false, "draft an X post from the verdict")
	checkCmd.Flags().BoolVar(&preserveSources, "preserve-sources", false, "keep raw evidence as sources on uncertain verdicts")
	checkCmd.Flags().BoolVar(&extractIntent, "intent", false, "extract search intent before querying")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")

	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search response caching")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := strings.TrimSpace(args[0])
	if claim == "" {
		return fmt.Errorf("claim is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if extractIntent {
		cfg.Intent.Enabled = true
	}

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n\n", checkTimeout)
	}

	result := checker.RunFactCheck(ctx, claim, model.CheckOptions{
		SourceCount:     sourceCount,
		GenerateNews:    genNews,
		GenerateTweet:   genTweet,
		PreserveSources: preserveSources,
		ExtractIntent:   extractIntent,
	})

	if jsonOutput {
		return printJSON(result)
	}

	renderVerdict(result)
	return nil
}

func renderVerdict(r model.VerdictResult) {
	fmt.Printf("Verdict:  %s (%s)\n", r.Case, r.State)
	fmt.Printf("Language: %s\n", r.Language)
	if r.Degraded {
		fmt.Println("Note:     result was recovered from a degraded response")
	}
	fmt.Printf("\n%s\n", r.Talk)

	if len(r.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, s := range r.Sources {
			fmt.Printf("  %d. %s\n     %s\n", i+1, s.Title, s.URL)
		}
	}

	st := r.SourceStatistics
	if st.TotalSources > 0 {
		fmt.Printf("\nSource stance: %d examined, %.1f%% supporting, %.1f%% opposing, %.1f%% neutral\n",
			st.TotalSources, st.SupportingPercentage, st.OpposingPercentage, st.NeutralPercentage)
	}

	if r.NewsArticle != nil {
		fmt.Printf("\n--- News article ---\n%s\n", *r.NewsArticle)
	}
	if r.XTweet != nil {
		fmt.Printf("\n--- X post ---\n%s\n", *r.XTweet)
	}
}
