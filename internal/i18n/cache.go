package i18n

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedProvider decorates a Provider with a Redis cache so label tables
// served by a remote translation service are not refetched per request.
// Cache failures are non-fatal: the inner provider is always the source of
// truth.
type CachedProvider struct {
	inner  Provider
	client redis.UniversalClient
	ttl    time.Duration
}

// NewCachedProvider wraps inner with a Redis-backed cache.
func NewCachedProvider(inner Provider, client redis.UniversalClient, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, client: client, ttl: ttl}
}

func (c *CachedProvider) Labels(ctx context.Context, locale Locale) (Labels, error) {
	key := cacheKey(locale)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var labels Labels
		if err := json.Unmarshal(raw, &labels); err == nil {
			return labels, nil
		}
		// Corrupt entry: drop it and fall through to the inner provider.
		c.client.Del(ctx, key)
	}

	labels, err := c.inner.Labels(ctx, locale)
	if err != nil {
		return Labels{}, err
	}

	if raw, err := json.Marshal(labels); err == nil {
		c.client.Set(ctx, key, raw, c.ttl)
	}
	return labels, nil
}

func cacheKey(locale Locale) string {
	return "appeal:labels:" + string(locale)
}
