package search

import (
	"context"

	"github.com/factlens/factlens/internal/model"
)

// Query is one web search request
type Query struct {
	// Text is the full query string, including any site: operator
	Text string

	// Num is the requested result count
	Num int

	// Extra carries provider-specific parameters (e.g. freshness windows)
	Extra map[string]string
}

// Provider defines the interface for web search providers. Implementations
// must return an error for transport or provider failures; the aggregator
// degrades a failed branch to zero results.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Search runs one query and returns normalized evidence items
	Search(ctx context.Context, q Query) ([]model.EvidenceItem, error)
}
