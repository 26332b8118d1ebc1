package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/pipeline"
)

var (
	imageLang    string
	imageTimeout time.Duration
)

// imageCmd represents the image command
var imageCmd = &cobra.Command{
	Use:   "image <path>",
	Short: "Analyze an image for AI generation and manipulation",
	Long: `Image runs a forensic analysis of one image file:
- Detect signs of AI generation
- Detect signs of digital manipulation
- Read any claims visible in the image and search for sources about them

Supported formats: JPEG, PNG, GIF, WebP.

Example:
  factlens image ./photo.jpg
  factlens image ./photo.png --lang ar --json`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func init() {
	rootCmd.AddCommand(imageCmd)

	imageCmd.Flags().StringVar(&imageLang, "lang", "en", "language for the analysis message (ISO 639-1)")
	imageCmd.Flags().DurationVar(&imageTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	imageCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")

	imageCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic)")
	imageCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runImage(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s (%d bytes)\n\n", path, len(data))
	}

	result := checker.RunImageCheck(ctx, data, imageLang)

	if jsonOutput {
		return printJSON(result)
	}

	renderImageVerdict(result)
	return nil
}

func renderImageVerdict(r model.ImageVerdict) {
	fmt.Printf("AI generated:  %s\n", r.IsAIGenerated)
	fmt.Printf("Photoshopped:  %s\n", r.IsPhotoshopped)
	fmt.Printf("Fake:          %s\n", r.IsFake)
	if !r.Refused {
		fmt.Printf("Confidence:    %.2f\n", r.Confidence)
	}
	fmt.Printf("\n%s\n", r.Message)

	if len(r.ManipulationSigns) > 0 {
		fmt.Println("\nManipulation signs:")
		for _, s := range r.ManipulationSigns {
			fmt.Printf("  - %s\n", s)
		}
	}
	if r.ExtractedText != "" {
		fmt.Printf("\nText read off the image:\n  %s\n", r.ExtractedText)
	}
	if len(r.Sources) > 0 {
		fmt.Println("\nRelated sources:")
		for i, s := range r.Sources {
			fmt.Printf("  %d. %s\n     %s\n", i+1, s.Title, s.Link)
		}
	}
}
