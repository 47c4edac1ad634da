package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/internal/models"

	"github.com/go-redis/redis/v8"
)

// AllProductsKey is the well-known cache key for product listings. It is
// invalidated on every successful creation.
const AllProductsKey = "products:all"

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Invalidate drops a cache key
func (c *Client) Invalidate(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache invalidation failed for %s: %w", key, err)
	}
	return nil
}

// CacheProductList stores the product listing under AllProductsKey
func (c *Client) CacheProductList(ctx context.Context, products []models.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal product list: %w", err)
	}
	return c.rdb.Set(ctx, AllProductsKey, data, ttl).Err()
}

// GetProductList retrieves the cached product listing. Returns (nil, nil)
// on a cache miss.
func (c *Client) GetProductList(ctx context.Context) ([]models.Product, error) {
	data, err := c.rdb.Get(ctx, AllProductsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached product list: %w", err)
	}
	return products, nil
}

// CacheProduct stores one product under its id key
func (c *Client) CacheProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	key := fmt.Sprintf("product:%s", product.ID)
	return c.rdb.Set(ctx, key, data, ttl).Err()
}
