package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cristiarazvan/gogogo/internal/domain"
)

const listingCacheKey = "browse:restaurants"

// ListingCache keeps the eagerly loaded restaurant set in Redis so repeated
// browse requests skip the multi-table load. Writes that change what the
// listing shows must call Invalidate.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a listing cache with the given TTL.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

// Get returns the cached restaurant set, if present and decodable.
func (c *ListingCache) Get(ctx context.Context) ([]domain.Restaurant, bool) {
	data, err := c.client.Get(ctx, listingCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var restaurants []domain.Restaurant
	if err := json.Unmarshal(data, &restaurants); err != nil {
		return nil, false
	}

	return restaurants, true
}

// Set stores the restaurant set.
func (c *ListingCache) Set(ctx context.Context, restaurants []domain.Restaurant) error {
	data, err := json.Marshal(restaurants)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, listingCacheKey, data, c.ttl).Err()
}

// Invalidate drops the cached listing.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listingCacheKey).Err()
}
