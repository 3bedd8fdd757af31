// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"adboard_backend/internal/feature/listing/domain/entity"
	"adboard_backend/internal/feature/listing/usecase"
)

// CachingItemRepository decorates an ItemRepository with Redis caching of
// the public browse queries (FindAll). Ownership-relevant reads (FindByID,
// FindByOwner) always pass through to the inner repository so authorization
// decisions are never made on cached data.
type CachingItemRepository struct {
	inner     usecase.ItemRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure the decorator still satisfies the interface.
var _ usecase.ItemRepository = (*CachingItemRepository)(nil)

// NewCachingItemRepository decorates an ItemRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "ads".
func NewCachingItemRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ItemRepository, namespace string) *CachingItemRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "ads"
	}
	return &CachingItemRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindAll retrieves listings, checking cache first then falling back to the database.
func (c *CachingItemRepository) FindAll(ctx context.Context, categoryID *uint) ([]entity.Item, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindAll(ctx, categoryID)
	}

	key := c.cacheKey(categoryID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Item
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindAll(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create inserts a listing and invalidates the browse cache.
func (c *CachingItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if err := c.inner.Create(ctx, item); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update overwrites a listing and invalidates the browse cache.
func (c *CachingItemRepository) Update(ctx context.Context, item *entity.Item) error {
	if err := c.inner.Update(ctx, item); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a listing and invalidates the browse cache.
func (c *CachingItemRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID always reads through to the inner repository.
func (c *CachingItemRepository) FindByID(ctx context.Context, id uint) (*entity.Item, error) {
	return c.inner.FindByID(ctx, id)
}

// FindByOwner always reads through to the inner repository.
func (c *CachingItemRepository) FindByOwner(ctx context.Context, ownerID string) ([]entity.Item, error) {
	return c.inner.FindByOwner(ctx, ownerID)
}

// cacheKey generates a cache key for a browse query.
func (c *CachingItemRepository) cacheKey(categoryID *uint) string {
	if categoryID == nil {
		return fmt.Sprintf("%s:all", c.namespace)
	}
	return fmt.Sprintf("%s:cat:%d", c.namespace, *categoryID)
}

// invalidate deletes all browse cache entries using SCAN. Best effort:
// a failed invalidation only shortens to the TTL, it never fails the write.
func (c *CachingItemRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	pattern := c.namespace + ":*"
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
}
