package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kerala-gov/migrant-health/internal/shared/cache"
)

const summaryKey = "dashboard:summary"

// Cache memoizes computed summaries in Redis for a short TTL. The
// dataset is small, so this is a read-amplification guard rather than a
// correctness feature: any cache failure falls back to recomputation.
type Cache struct {
	client *cache.Client
	ttl    time.Duration
}

// NewCache wraps a redis client; returns nil when the client is nil so
// callers can treat the cache as fully optional.
func NewCache(client *cache.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached summary, if present and decodable
func (c *Cache) Get(ctx context.Context) (*Summary, bool) {
	data, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		return nil, false
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false
	}

	return &summary, true
}

// Set stores a summary; failures are ignored
func (c *Cache) Set(ctx context.Context, summary *Summary) {
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}

	c.client.Set(ctx, summaryKey, data, c.ttl)
}
