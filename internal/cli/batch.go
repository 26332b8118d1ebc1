package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/pipeline"
	"github.com/factlens/factlens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies multiple claims concurrently:
- Read claims from the input file (one per line, # comments skipped)
- Check claims in parallel with a configurable worker count
- Write one JSON result per claim to the output directory

Example:
  factlens batch claims.txt
  factlens batch claims.txt --concurrency 8 --output-dir ./results
  factlens batch claims.txt --news --tweet`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (0 = configured default)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./factlens-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().IntVar(&sourceCount, "sources", 0, "general-query result count per claim (0 = configured default)")
	batchCmd.Flags().BoolVar(&genNews, "news", false, "draft a news article per verdict")
	batchCmd.Flags().BoolVar(&genTweet, "tweet", false, "draft an X post per verdict")
	batchCmd.Flags().BoolVar(&preserveSources, "preserve-sources", false, "keep raw evidence as sources on uncertain verdicts")

	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search response caching")
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	workers := concurrency
	if workers <= 0 {
		workers = cfg.Concurrency.BatchWorkers
	}

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Batch: %s with %d workers\n\n", inputFile, workers)
	}

	processor := worker.NewBatchProcessor(checker, workers)
	results, err := processor.ProcessFile(ctx, inputFile, model.CheckOptions{
		SourceCount:     sourceCount,
		GenerateNews:    genNews,
		GenerateTweet:   genTweet,
		PreserveSources: preserveSources,
	})
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	for _, r := range results {
		path := filepath.Join(outputDir, r.Result.RunID+".json")
		if err := writeResultFile(path, r); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s\n", r.Result.State, path)
		}
	}

	fmt.Printf("Checked %d claims, results in %s\n", len(results), outputDir)
	return nil
}

func writeResultFile(path string, r *worker.CheckResult) error {
	payload := struct {
		Claim  string              `json:"claim"`
		Result model.VerdictResult `json:"result"`
	}{Claim: r.Claim, Result: r.Result}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
