package override

import (
	"context"
	"errors"

	"github.com/nulzo/prompt-router/internal/store/cache"
)

const sharedKey = "override:file-upload"

// Shared keeps the slot in a CacheService so replicas behind a load balancer agree on it.
// The pair is written as one value, so readers never see a half-updated target.
type Shared struct {
	cache cache.CacheService
}

func NewShared(c cache.CacheService) *Shared {
	return &Shared{cache: c}
}

func (s *Shared) Get(ctx context.Context) (Target, error) {
	var t Target
	err := s.cache.Get(ctx, sharedKey, &t)
	if errors.Is(err, cache.ErrMiss) {
		return Target{}, nil
	}
	return t, err
}

func (s *Shared) Set(ctx context.Context, t Target) error {
	return s.cache.Set(ctx, sharedKey, t, 0)
}

func (s *Shared) Clear(ctx context.Context) error {
	return s.cache.Delete(ctx, sharedKey)
}
