package geocache

import (
	"context"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
)

// CachingResolver decorates a GeocodeResolver with the Postgres cache.
// Sentinel answers are never cached: a provider outage must not poison the
// cache with "Location unavailable" entries that outlive the outage.
type CachingResolver struct {
	inner ports.GeocodeResolver
	cache *GormGeocodeCache
}

// NewCachingResolver wraps the given resolver with cache lookups.
func NewCachingResolver(inner ports.GeocodeResolver, cache *GormGeocodeCache) *CachingResolver {
	return &CachingResolver{inner: inner, cache: cache}
}

// Resolve returns the cached place name when present, otherwise delegates to
// the wrapped resolver and caches real answers. Cache failures degrade to a
// plain delegate call; like the resolver contract itself, Resolve never fails.
func (r *CachingResolver) Resolve(ctx context.Context, point kernel.GeoPoint) string {
	if name, ok, err := r.cache.Get(ctx, point); err == nil && ok {
		return name
	}

	name := r.inner.Resolve(ctx, point)
	if name != ports.UnknownLocationName && name != ports.LocationUnavailableName {
		_ = r.cache.Put(ctx, point, name)
	}
	return name
}
