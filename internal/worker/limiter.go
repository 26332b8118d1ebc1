package worker

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-domain rate limiting
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait waits for rate limit clearance for the given domain. Plain domains and
// full URLs are both accepted.
func (l *Limiter) Wait(ctx context.Context, domainOrURL string) error {
	return l.getLimiter(extractDomain(domainOrURL)).Wait(ctx)
}

// Allow checks if a request is allowed without waiting
func (l *Limiter) Allow(domainOrURL string) bool {
	return l.getLimiter(extractDomain(domainOrURL)).Allow()
}

// SetDomainRate sets a custom rate limit for a specific domain
func (l *Limiter) SetDomainRate(domain string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[domain] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// getLimiter returns the rate limiter for a domain
func (l *Limiter) getLimiter(domain string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[domain]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[domain]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[domain] = limiter

	return limiter
}

// extractDomain resolves the limiter key: the host for URLs, the input
// itself for bare domains.
func extractDomain(domainOrURL string) string {
	if strings.Contains(domainOrURL, "://") {
		if parsed, err := url.Parse(domainOrURL); err == nil && parsed.Host != "" {
			return parsed.Host
		}
	}
	return domainOrURL
}
