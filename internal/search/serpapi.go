package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/factlens/factlens/internal/cache"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/worker"
)

// SerpAPIClient implements Provider against the SerpAPI Google endpoint
type SerpAPIClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	hl         string
	gl         string
	userAgent  string
	limiter    *worker.Limiter
	cache      cache.Cache // nil disables caching
	cacheTTL   time.Duration
	logger     *logrus.Entry
}

// SerpAPIOptions configures a SerpAPIClient
type SerpAPIOptions struct {
	APIKey    string
	BaseURL   string
	HL        string
	GL        string
	UserAgent string
	Timeout   time.Duration
	Limiter   *worker.Limiter
	Cache     cache.Cache
	CacheTTL  time.Duration
	Logger    *logrus.Entry
}

// NewSerpAPIClient creates a new SerpAPI search client
func NewSerpAPIClient(opts SerpAPIOptions) (*SerpAPIClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("SerpAPI key is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://serpapi.com/search.json"
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	return &SerpAPIClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		hl:         opts.HL,
		gl:         opts.GL,
		userAgent:  opts.UserAgent,
		limiter:    opts.Limiter,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		logger:     opts.Logger,
	}, nil
}

// Name returns the provider name
func (c *SerpAPIClient) Name() string {
	return "serpapi"
}

// serpAPIResponse mirrors the subset of the SerpAPI payload the pipeline uses
type serpAPIResponse struct {
	OrganicResults []struct {
		Title                   string   `json:"title"`
		Snippet                 string   `json:"snippet"`
		SnippetHighlightedWords []string `json:"snippet_highlighted_words"`
		Link                    string   `json:"link"`
		DisplayedLink           string   `json:"displayed_link"`
		Date                    string   `json:"date"`
	} `json:"organic_results"`
}

// Search runs one query and returns normalized evidence items. Result order
// preserves the provider-returned order.
func (c *SerpAPIClient) Search(ctx context.Context, q Query) ([]model.EvidenceItem, error) {
	key := cache.QueryKey(q.Text, q.Num, q.Extra)
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var items []model.EvidenceItem
			if err := json.Unmarshal(data, &items); err == nil {
				c.logger.WithField("query", q.Text).Debug("search cache hit")
				return items, nil
			}
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("api_key", c.apiKey)
	params.Set("hl", c.hl)
	params.Set("gl", c.gl)
	params.Set("num", strconv.Itoa(q.Num))
	for k, v := range q.Extra {
		params.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search provider status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4_000_000))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var payload serpAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]model.EvidenceItem, 0, len(payload.OrganicResults))
	for _, r := range payload.OrganicResults {
		snippet := r.Snippet
		if snippet == "" && len(r.SnippetHighlightedWords) > 0 {
			snippet = r.SnippetHighlightedWords[0]
		}
		link := r.Link
		if link == "" {
			link = r.DisplayedLink
		}

		item := model.EvidenceItem{
			Title:   r.Title,
			Snippet: snippet,
			Link:    link,
			Date:    r.Date,
		}
		if item.IsEmpty() {
			continue
		}
		items = append(items, item)
	}

	c.logger.WithFields(logrus.Fields{
		"query":   q.Text,
		"results": len(items),
	}).Debug("search query completed")

	if c.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = c.cache.Set(key, data, c.cacheTTL)
		}
	}

	return items, nil
}
