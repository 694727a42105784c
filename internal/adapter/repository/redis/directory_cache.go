package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fondocore/fondo/internal/usecase"
)

// DirectoryCache decorates a CompanyDirectory with a read-through cache.
// Company names change rarely; a short TTL keeps renames visible.
type DirectoryCache struct {
	next  usecase.CompanyDirectory
	cache usecase.Cache
	ttl   time.Duration
}

// NewDirectoryCache creates a new DirectoryCache.
func NewDirectoryCache(next usecase.CompanyDirectory, cache usecase.Cache, ttl time.Duration) *DirectoryCache {
	return &DirectoryCache{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

// CompanyExists reports whether a company is registered. Only positive
// answers are cached so newly registered companies appear immediately.
func (d *DirectoryCache) CompanyExists(ctx context.Context, companyID string) (bool, error) {
	key := "company:exists:" + companyID

	value, err := d.cache.Get(ctx, key)
	if err == nil && value == "1" {
		return true, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		return d.next.CompanyExists(ctx, companyID)
	}

	exists, err := d.next.CompanyExists(ctx, companyID)
	if err != nil {
		return false, err
	}

	if exists {
		_ = d.cache.Set(ctx, key, "1", d.ttl)
	}

	return exists, nil
}

// CompanyName returns the display name of a company.
func (d *DirectoryCache) CompanyName(ctx context.Context, companyID string) (string, error) {
	key := "company:name:" + companyID

	value, err := d.cache.Get(ctx, key)
	if err == nil && value != "" {
		return value, nil
	}

	name, err := d.next.CompanyName(ctx, companyID)
	if err != nil {
		return "", err
	}

	_ = d.cache.Set(ctx, key, name, d.ttl)

	return name, nil
}
