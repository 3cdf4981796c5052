package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// CacheService defines the interface for a (possibly distributed) key-value cache.
type CacheService interface {
	// Get unmarshals the stored value into dest, or returns ErrMiss.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set marshals value and stores it. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
}
