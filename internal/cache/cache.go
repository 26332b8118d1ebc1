package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// QueryKey generates a stable cache key from a search query and its parameters
func QueryKey(query string, num int, extra map[string]string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d", query, num)

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "\x00%s=%s", k, extra[k])
	}

	return "factlens:v1:" + hex.EncodeToString(h.Sum(nil))
}
