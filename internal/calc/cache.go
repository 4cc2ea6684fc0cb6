package calc

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of results kept by NewCachedEvaluator when
// given a non-positive size.
const DefaultCacheSize = 256

// CachedEvaluator memoizes successful evaluations in an LRU cache.
// Evaluation is pure, so a cached value is exactly what Evaluate would return.
type CachedEvaluator struct {
	cache *lru.Cache[string, float64]
}

// NewCachedEvaluator creates an evaluator caching up to size results.
func NewCachedEvaluator(size int) (*CachedEvaluator, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return nil, err
	}
	return &CachedEvaluator{cache: cache}, nil
}

// Evaluate returns the cached result for expr or computes and stores it.
// Failures are never cached.
func (c *CachedEvaluator) Evaluate(expr string) (float64, error) {
	key := strings.TrimSpace(expr)
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}
	v, err := Evaluate(expr)
	if err != nil {
		return 0, err
	}
	c.cache.Add(key, v)
	return v, nil
}

// Len returns the number of cached results.
func (c *CachedEvaluator) Len() int {
	return c.cache.Len()
}

// Purge drops every cached result.
func (c *CachedEvaluator) Purge() {
	c.cache.Purge()
}
