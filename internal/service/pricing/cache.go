package pricing

import (
	"context"

	"CardPulse/pkg/cache"
	applogger "CardPulse/pkg/logger"
)

const keyPrefix = "price:"

// Cache stores resolved best prices in a pkg/cache backend without expiry.
// Backend errors degrade to misses.
type Cache struct {
	backend cache.Service
	log     *applogger.Logger
}

// NewCache wraps backend.
func NewCache(backend cache.Service, l *applogger.Logger) *Cache {
	if l == nil {
		l = applogger.Nop()
	}
	return &Cache{backend: backend, log: l}
}

func (c *Cache) Get(ctx context.Context, key string) (float64, bool) {
	v, err := cache.GetAs[float64](ctx, c.backend, keyPrefix+key)
	if err != nil {
		if !cache.IsMiss(err) {
			c.log.Warn("price cache read failed", applogger.String("key", key), applogger.Error(err))
		}
		return 0, false
	}
	return v, true
}

func (c *Cache) Set(ctx context.Context, key string, value float64) {
	if err := c.backend.Set(ctx, keyPrefix+key, value, 0); err != nil {
		c.log.Warn("price cache write failed", applogger.String("key", key), applogger.Error(err))
	}
}

// Reset drops every cached price.
func (c *Cache) Reset(ctx context.Context) error {
	return c.backend.Clear(ctx)
}
