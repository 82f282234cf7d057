package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Service is implemented by the memory, Redis and layered caches.
//
// Values are stored JSON-encoded so every backend round-trips the same shapes.
// An expiration <= 0 means the entry lives until deleted or cleared.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Clear(ctx context.Context) error
	Close() error
}

// GetAs decodes key into a fresh T.
func GetAs[T any](ctx context.Context, s Service, key string) (T, error) {
	var v T
	err := s.Get(ctx, key, &v)
	return v, err
}

// IsMiss reports whether err means the key was not cached.
func IsMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}
