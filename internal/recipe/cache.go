package recipe

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"pantry-hub/internal/metrics"
	"pantry-hub/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cacheKeyPrefix = "recipes:"

// Searcher is implemented by Client and CachedSearcher.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Recipe, error)
}

// CachedSearcher serves repeated searches from redis. Cache failures are
// logged and fall through to the wrapped searcher.
type CachedSearcher struct {
	next   Searcher
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedSearcher wraps next with a redis cache. A nil client or a
// non-positive ttl disables caching.
func NewCachedSearcher(next Searcher, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedSearcher {
	return &CachedSearcher{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: logger.With().Str("component", "recipe-cache").Logger(),
	}
}

// Search returns cached results for the normalised query when present.
func (c *CachedSearcher) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	if c.redis == nil || c.ttl <= 0 {
		return c.next.Search(ctx, query)
	}

	key := CacheKey(query)

	if recipes, ok := c.read(ctx, key); ok {
		metrics.IncRecipeCache("hit")
		return recipes, nil
	}

	recipes, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	c.write(ctx, key, recipes)
	return recipes, nil
}

func (c *CachedSearcher) read(ctx context.Context, key string) ([]model.Recipe, bool) {
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.IncRecipeCache("miss")
		} else {
			metrics.IncRecipeCache("error")
			c.logger.Warn().Err(err).Str("key", key).Msg("recipe cache read failed")
		}
		return nil, false
	}

	var recipes []model.Recipe
	if err := json.Unmarshal(val, &recipes); err != nil {
		metrics.IncRecipeCache("error")
		c.logger.Warn().Err(err).Str("key", key).Msg("discarding corrupt cache entry")
		return nil, false
	}
	return recipes, true
}

func (c *CachedSearcher) write(ctx context.Context, key string, recipes []model.Recipe) {
	data, err := json.Marshal(recipes)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("recipe cache write failed")
	}
}

// CacheKey derives the cache key of a query. Word order, case and spacing
// do not change the key.
func CacheKey(query string) string {
	words := strings.Fields(strings.ToLower(query))
	sort.Strings(words)
	sum := sha1.Sum([]byte(strings.Join(words, " ")))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
