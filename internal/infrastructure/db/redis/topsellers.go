package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
)

const (
	topSellersKey = "catalog:top_sellers"
	topSellersTTL = time.Minute
)

// TopSellersCache stores the best-sellers ranking as a JSON blob with a
// short TTL. A miss returns (nil, nil) so callers fall through to the store.
type TopSellersCache struct {
	client *redis.Client
}

func NewTopSellersCache(client *redis.Client) *TopSellersCache {
	return &TopSellersCache{client: client}
}

func (c *TopSellersCache) Get(ctx context.Context) ([]*domain.Product, error) {
	raw, err := c.client.Get(ctx, topSellersKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("top sellers cache get: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("top sellers cache decode: %w", err)
	}
	return products, nil
}

func (c *TopSellersCache) Set(ctx context.Context, products []*domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("top sellers cache encode: %w", err)
	}
	if err := c.client.Set(ctx, topSellersKey, raw, topSellersTTL).Err(); err != nil {
		return fmt.Errorf("top sellers cache set: %w", err)
	}
	return nil
}
