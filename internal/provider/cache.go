package provider

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobscout/pkg/models"
)

const cacheKeyPrefix = "jobscout:listings:"

// Cached wraps a provider with a redis-backed listing cache so repeated
// runs of the same search reuse the prior fetch. Every cache failure is
// soft: the call falls through to the inner provider.
type Cached struct {
	Inner  Provider
	Client *redis.Client
	TTL    time.Duration
}

func NewCached(inner Provider, client *redis.Client, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cached{Inner: inner, Client: client, TTL: ttl}
}

func (c *Cached) FetchListings(ctx context.Context, crit Criteria) ([]models.Listing, error) {
	key := cacheKey(crit)
	if data, err := c.Client.Get(ctx, key).Result(); err == nil {
		var listings []models.Listing
		if err := json.Unmarshal([]byte(data), &listings); err == nil && len(listings) > 0 {
			return listings, nil
		}
	}

	listings, err := c.Inner.FetchListings(ctx, crit)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(listings); err == nil {
		// Best effort; a write failure just means a refetch next run.
		c.Client.Set(ctx, key, data, c.TTL)
	}
	return listings, nil
}

func (c *Cached) FetchIndustries(ctx context.Context) ([]string, error) {
	return c.Inner.FetchIndustries(ctx)
}

func (c *Cached) FetchSkillsVocabulary(ctx context.Context) ([]string, error) {
	return c.Inner.FetchSkillsVocabulary(ctx)
}

func cacheKey(c Criteria) string {
	sum := sha256.Sum256([]byte(c.key()))
	return fmt.Sprintf("%s%x", cacheKeyPrefix, sum[:16])
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
