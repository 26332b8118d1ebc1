package model

import (
	"net/url"
	"strings"
)

// EvidenceItem represents one normalized web search result
type EvidenceItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
	Domain  string `json:"domain,omitempty"` // Trusted domain the query targeted, if any
	Date    string `json:"date,omitempty"`   // Provider-reported date, when present
}

// IsEmpty reports whether the item carries no usable content.
func (e EvidenceItem) IsEmpty() bool {
	return e.Title == "" && e.Snippet == "" && e.Link == ""
}

// CanonicalLink returns the deduplication key for the item's link:
// lowercased scheme and host, no fragment, no trailing slash.
func (e EvidenceItem) CanonicalLink() string {
	parsed, err := url.Parse(strings.TrimSpace(e.Link))
	if err != nil || parsed.Host == "" {
		return strings.TrimRight(strings.ToLower(strings.TrimSpace(e.Link)), "/")
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	return strings.TrimRight(parsed.String(), "/")
}

// Stance classifies how an evidence item relates to the claim
type Stance string

const (
	StanceSupporting Stance = "supporting"
	StanceOpposing   Stance = "opposing"
	StanceNeutral    Stance = "neutral"
)

// SourceStatistics aggregates stance classifications over the evidence set.
// Percentages are rounded to one decimal and sum to 100 (within rounding)
// whenever TotalSources > 0; with no sources everything is zero.
type SourceStatistics struct {
	SupportingPercentage float64 `json:"supporting_percentage"`
	OpposingPercentage   float64 `json:"opposing_percentage"`
	NeutralPercentage    float64 `json:"neutral_percentage"`
	TotalSources         int     `json:"total_sources"`
	SupportingCount      int     `json:"supporting_count"`
	OpposingCount        int     `json:"opposing_count"`
	NeutralCount         int     `json:"neutral_count"`
}
