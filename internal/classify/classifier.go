package classify

import (
	"math"
	"strings"

	"github.com/factlens/factlens/internal/model"
)

// Classifier heuristically scores evidence items as supporting, opposing,
// or neutral toward a claim. The policy is entirely table-driven.
type Classifier struct{}

// NewClassifier creates a new classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify scores a single evidence item independently of any other. The
// highest weighted keyword count wins; ties default to neutral.
func (c *Classifier) Classify(item model.EvidenceItem, claim string) model.Stance {
	title := strings.ToLower(item.Title)
	snippet := strings.ToLower(item.Snippet)
	link := strings.ToLower(item.Link)

	supporting := countMatches(supportingKeywords, title, snippet)
	opposing := countMatches(opposingKeywords, title, snippet)
	neutral := countMatches(neutralKeywords, title, snippet)

	weight := 1.0
	if matchesAny(link, credibleDomains) {
		weight *= credibleWeight
	}
	if matchesAny(link, socialDomains) {
		weight *= socialPenalty
	}

	supportingScore := float64(supporting) * weight
	opposingScore := float64(opposing) * weight
	neutralScore := float64(neutral) * weight

	switch {
	case supportingScore > opposingScore && supportingScore > neutralScore:
		return model.StanceSupporting
	case opposingScore > supportingScore && opposingScore > neutralScore:
		return model.StanceOpposing
	default:
		return model.StanceNeutral
	}
}

// Statistics classifies every item and aggregates counts and percentages.
// With zero items everything is zero; percentages are rounded to one decimal.
func (c *Classifier) Statistics(items []model.EvidenceItem, claim string) model.SourceStatistics {
	stats := model.SourceStatistics{}
	if len(items) == 0 {
		return stats
	}

	for _, item := range items {
		switch c.Classify(item, claim) {
		case model.StanceSupporting:
			stats.SupportingCount++
		case model.StanceOpposing:
			stats.OpposingCount++
		default:
			stats.NeutralCount++
		}
	}

	stats.TotalSources = len(items)
	total := float64(stats.TotalSources)
	stats.SupportingPercentage = roundOne(float64(stats.SupportingCount) / total * 100)
	stats.OpposingPercentage = roundOne(float64(stats.OpposingCount) / total * 100)
	stats.NeutralPercentage = roundOne(float64(stats.NeutralCount) / total * 100)

	return stats
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}

func countMatches(keywords []string, title, snippet string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(title, kw) || strings.Contains(snippet, kw) {
			count++
		}
	}
	return count
}

func matchesAny(link string, domains []string) bool {
	for _, d := range domains {
		if strings.Contains(link, d) {
			return true
		}
	}
	return false
}
