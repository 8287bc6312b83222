package tag

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const catalogCacheKey = "catalog:tags"

// Catalog serves the read-only tag list with an optional Redis
// read-through cache. The catalog is shared between all in-flight saves
// and never mutated by the publishing pipeline.
type Catalog struct {
	repo Repository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCatalog creates a catalog. rdb may be nil to disable caching.
func NewCatalog(repo Repository, rdb *redis.Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Catalog{repo: repo, rdb: rdb, ttl: ttl}
}

// All returns the full tag catalog
func (c *Catalog) All(ctx context.Context) ([]Tag, error) {
	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, catalogCacheKey).Bytes()
		if err == nil {
			var tags []Tag
			if err := json.Unmarshal(data, &tags); err == nil {
				return tags, nil
			}
			// Bad cache entry, fall through to the database
			c.rdb.Del(ctx, catalogCacheKey)
		}
	}

	tags, err := c.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	if c.rdb != nil {
		if data, err := json.Marshal(tags); err == nil {
			if err := c.rdb.Set(ctx, catalogCacheKey, data, c.ttl).Err(); err != nil {
				log.Warn().Err(err).Msg("Failed to cache tag catalog")
			}
		}
	}

	return tags, nil
}
