package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/factlens/factlens/internal/model"
)

// FactChecker defines the interface for checking a single claim
type FactChecker interface {
	RunFactCheck(ctx context.Context, claim string, opts model.CheckOptions) model.VerdictResult
}

// CheckJob represents one claim check inside a batch
type CheckJob struct {
	Claim   string
	Options model.CheckOptions
	Checker FactChecker
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	return &CheckResult{
		Claim:  j.Claim,
		Result: j.Checker.RunFactCheck(ctx, j.Claim, j.Options),
	}
}

// CheckResult represents the result of a batch claim check
type CheckResult struct {
	Claim  string
	Result model.VerdictResult
}

// GetError returns nil: the pipeline converts every failure into a terminal
// verdict, so a batch entry never carries a transport-level error.
func (r *CheckResult) GetError() error {
	return nil
}

// BatchProcessor checks multiple claims concurrently
type BatchProcessor struct {
	checker     FactChecker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker FactChecker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessClaims checks multiple claims concurrently
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string, opts model.CheckOptions) []*CheckResult {
	if len(claims) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Submission runs alongside the result drain in Wait: the pool's
	// channels are bounded, so submitting every claim up front would
	// block once a batch outgrows the buffers.
	go func() {
		defer pool.Close()
		for _, claim := range claims {
			pool.Submit(&CheckJob{
				Claim:   claim,
				Options: opts,
				Checker: b.checker,
			})
		}
	}()

	results := pool.Wait()

	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}

	return checkResults
}

// ProcessFile reads claims from a file and checks them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, opts model.CheckOptions) ([]*CheckResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims, opts), nil
}

// ReadClaimsFromFile reads claims from a file (one per line)
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
