package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/apachler/thingsboard-mcp-server/core"
)

const activityCacheKeyPrefix = "thingsboard-mcp::dispatch_activity::v1"

// ActivityEntryGetter is the by-id read the cache wraps.
type ActivityEntryGetter interface {
	Get(ctx context.Context, id string) (core.DispatchActivityEntry, error)
}

// CachedActivityStore caches by-id ledger reads. Entries are immutable once
// written, so cached values never go stale; Invalidate exists for the prune
// path, which is the only way an entry disappears.
type CachedActivityStore struct {
	base  ActivityEntryGetter
	cache repositorycache.CacheService
}

func NewCachedActivityStore(
	base ActivityEntryGetter,
	cacheService repositorycache.CacheService,
) (*CachedActivityStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base activity store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: activity cache service is required")
	}
	return &CachedActivityStore{base: base, cache: cacheService}, nil
}

// ActivityCacheKey returns the deterministic cache key for a ledger entry:
// thingsboard-mcp::dispatch_activity::v1::<id> with the id segment
// URL-path escaped.
func ActivityCacheKey(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("sqlstore: activity entry id is required")
	}
	return activityCacheKeyPrefix + "::" + url.PathEscape(id), nil
}

func (s *CachedActivityStore) Get(ctx context.Context, id string) (core.DispatchActivityEntry, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.DispatchActivityEntry{}, fmt.Errorf("sqlstore: cached activity store is not configured")
	}
	cacheKey, err := ActivityCacheKey(id)
	if err != nil {
		return core.DispatchActivityEntry{}, err
	}

	entry, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey,
		func(ctx context.Context) (core.DispatchActivityEntry, error) {
			return s.base.Get(ctx, strings.TrimSpace(id))
		})
	if err != nil {
		return core.DispatchActivityEntry{}, err
	}
	entry.Metadata = copyAnyMap(entry.Metadata)
	return entry, nil
}

func (s *CachedActivityStore) Invalidate(ctx context.Context, id string) error {
	if s == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached activity store is not configured")
	}
	cacheKey, err := ActivityCacheKey(id)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

var _ ActivityEntryGetter = (*CachedActivityStore)(nil)
