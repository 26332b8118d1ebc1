package search

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/worker"
)

// Aggregator fans a claim out as one query per trusted domain plus one
// general query, joins all branches, and deduplicates the union. A failed
// branch degrades to zero results; the batch never fails as a whole.
type Aggregator struct {
	provider   Provider
	domains    []string
	domainNum  int
	generalNum int
	logger     *logrus.Entry
}

// NewAggregator creates a new search aggregator
func NewAggregator(provider Provider, cfg model.SearchConfig, logger *logrus.Entry) *Aggregator {
	domainNum := cfg.DomainNum
	if domainNum <= 0 {
		domainNum = 2
	}
	generalNum := cfg.GeneralNum
	if generalNum <= 0 {
		generalNum = 5
	}

	return &Aggregator{
		provider:   provider,
		domains:    cfg.TrustedDomains,
		domainNum:  domainNum,
		generalNum: generalNum,
		logger:     logger,
	}
}

// Options tunes one aggregation run
type Options struct {
	// GeneralNum overrides the configured general-query result count when > 0
	GeneralNum int

	// Intent narrows the queries when present
	Intent *model.Intent
}

// Aggregate runs the full fan-out for a claim and returns the deduplicated
// union of all branches. Branch submission order is preserved across the
// join; within a branch, provider order is preserved.
func (a *Aggregator) Aggregate(ctx context.Context, claim string, opts Options) []model.EvidenceItem {
	generalNum := a.generalNum
	if opts.GeneralNum > 0 {
		generalNum = opts.GeneralNum
	}

	type branch struct {
		query  Query
		domain string // trusted domain tag, empty for general queries
	}

	branches := make([]branch, 0, len(a.domains)+2)
	for _, domain := range a.domains {
		branches = append(branches, branch{
			query:  Query{Text: fmt.Sprintf("%s site:%s", claim, domain), Num: a.domainNum},
			domain: domain,
		})
	}

	general := Query{Text: claim, Num: generalNum, Extra: temporalParams(opts.Intent)}
	branches = append(branches, branch{query: general})

	if narrowed, ok := narrowedQuery(claim, opts.Intent, generalNum); ok {
		branches = append(branches, branch{query: narrowed})
	}

	ops := make([]func(ctx context.Context) ([]model.EvidenceItem, error), len(branches))
	for i, b := range branches {
		q := b.query
		ops[i] = func(ctx context.Context) ([]model.EvidenceItem, error) {
			return a.provider.Search(ctx, q)
		}
	}

	outcomes := worker.Gather(ctx, ops)

	var merged []model.EvidenceItem
	seen := make(map[string]bool)
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			a.logger.WithError(outcome.Err).WithField("query", branches[i].query.Text).
				Warn("search branch failed, degrading to zero results")
			continue
		}
		for _, item := range outcome.Value {
			if item.IsEmpty() {
				continue
			}
			key := item.CanonicalLink()
			if key != "" && seen[key] {
				continue
			}
			if key != "" {
				seen[key] = true
			}
			item.Domain = branches[i].domain
			merged = append(merged, item)
		}
	}

	a.logger.WithFields(logrus.Fields{
		"branches": len(branches),
		"results":  len(merged),
	}).Info("search aggregation completed")

	return merged
}

// temporalParams maps an intent's temporal scope to provider freshness
// parameters. same_day requests the last day; specific_date pins a custom
// date range.
func temporalParams(intent *model.Intent) map[string]string {
	if intent == nil {
		return nil
	}
	switch intent.Temporal {
	case model.TemporalSameDay:
		return map[string]string{"tbs": "qdr:d"}
	case model.TemporalSpecificDate:
		if intent.Date == "" {
			return nil
		}
		return map[string]string{
			"tbs": fmt.Sprintf("cdr:1,cd_min:%s,cd_max:%s", intent.Date, intent.Date),
		}
	}
	return nil
}

// narrowedQuery builds one extra keyword-focused general query when the
// intent carries keywords.
func narrowedQuery(claim string, intent *model.Intent, num int) (Query, bool) {
	if intent == nil || len(intent.Keywords) == 0 {
		return Query{}, false
	}

	text := ""
	for i, kw := range intent.Keywords {
		if i > 0 {
			text += " "
		}
		text += kw
	}
	if text == claim || text == "" {
		return Query{}, false
	}

	return Query{Text: text, Num: num, Extra: temporalParams(intent)}, true
}
