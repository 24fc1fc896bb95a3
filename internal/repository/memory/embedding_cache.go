package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// EmbeddingCache keeps recent query vectors so repeated searches skip the
// embedding call.
type EmbeddingCache struct {
	cache *cache.Cache
}

func NewEmbeddingCache(ttl time.Duration) *EmbeddingCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &EmbeddingCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func cacheKey(taskType, text string) string {
	sum := sha256.Sum256([]byte(taskType + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (c *EmbeddingCache) Get(taskType, text string) ([]float32, bool) {
	if x, found := c.cache.Get(cacheKey(taskType, text)); found {
		return x.([]float32), true
	}
	return nil, false
}

func (c *EmbeddingCache) Save(taskType, text string, vector []float32) {
	c.cache.Set(cacheKey(taskType, text), vector, cache.DefaultExpiration)
}
