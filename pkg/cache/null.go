package cache

import (
	"context"
	"sync/atomic"
	"time"
)

// NullCache is the backend for --no-cache runs. Every lookup misses and
// every write is dropped, so a pipeline runner or generator client built on
// it always recomputes. Misses counts lookups, which lets tests assert that
// a cached path was consulted at all.
type NullCache struct {
	misses atomic.Int64
}

// NewNullCache returns an empty NullCache.
func NewNullCache() *NullCache {
	return &NullCache{}
}

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) {
	c.misses.Add(1)
	return nil, false, nil
}

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

// Misses reports how many lookups the cache has answered.
func (c *NullCache) Misses() int64 { return c.misses.Load() }

var _ Cache = (*NullCache)(nil)
