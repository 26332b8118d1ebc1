package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/worker"
)

// Enricher backfills missing evidence snippets by fetching the source page
// and reading its title and meta description. Fetches respect robots.txt
// and a per-domain rate limit; any failure leaves the item untouched.
type Enricher struct {
	httpClient *http.Client
	robots     *RobotsChecker
	limiter    *worker.Limiter
	userAgent  string
	maxBytes   int64
	logger     *logrus.Entry
}

// NewEnricher creates a new evidence enricher
func NewEnricher(cfg model.HTTPConfig, enrichCfg model.EnrichConfig, logger *logrus.Entry) *Enricher {
	timeout := enrichCfg.Timeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}

	return &Enricher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    NewRobotsChecker(NormalizeUserAgent(cfg.UserAgent), timeout),
		limiter:   worker.NewLimiter(1, 1),
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		logger:    logger,
	}
}

// Enrich fills in empty snippets where the source page yields one. The
// input slice is returned with items updated in place; items that already
// carry a snippet are never fetched.
func (e *Enricher) Enrich(ctx context.Context, items []model.EvidenceItem) []model.EvidenceItem {
	for i := range items {
		if strings.TrimSpace(items[i].Snippet) != "" {
			continue
		}
		snippet, err := e.pageSnippet(ctx, items[i].Link)
		if err != nil {
			e.logger.WithError(err).WithField("url", items[i].Link).Debug("snippet enrichment skipped")
			continue
		}
		if snippet != "" {
			items[i].Snippet = snippet
		}
	}
	return items
}

// pageSnippet fetches a page and extracts a description, preferring the
// meta description over the document title.
func (e *Enricher) pageSnippet(ctx context.Context, rawURL string) (string, error) {
	if !e.robots.IsAllowed(ctx, rawURL) {
		return "", fmt.Errorf("disallowed by robots.txt")
	}
	if err := e.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			return desc, nil
		}
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			return desc, nil
		}
	}

	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}
