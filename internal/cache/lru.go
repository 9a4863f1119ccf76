// Package cache provides caching utilities shared by the CLI and MCP server.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/itchyny/gojq"
)

// QueryCache provides thread-safe LRU caching of compiled jq programs keyed by
// their source expression.
type QueryCache struct {
	cache *lru.Cache[string, *gojq.Code]
}

// NewQueryCache creates a new LRU cache with the specified maximum number of items.
func NewQueryCache(maxItems int) (*QueryCache, error) {
	c, err := lru.New[string, *gojq.Code](maxItems)
	if err != nil {
		return nil, err
	}
	return &QueryCache{cache: c}, nil
}

// Get retrieves a compiled program by expression.
// Returns the program and true if found, nil and false otherwise.
func (c *QueryCache) Get(expr string) (*gojq.Code, bool) {
	return c.cache.Get(expr)
}

// Put adds or updates a compiled program in the cache.
func (c *QueryCache) Put(expr string, code *gojq.Code) {
	c.cache.Add(expr, code)
}

// Len returns the current number of items in the cache.
func (c *QueryCache) Len() int {
	return c.cache.Len()
}
