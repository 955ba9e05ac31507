package cachemanager

import (
	"context"
	"time"

	"github.com/zjrosen/vertext/internal/log"
)

// RevisionCache memoizes a value derived from a versioned input. Keys are
// revisions: after a newer revision is filled the previous entry can never
// be asked for again, so it is evicted.
type RevisionCache[K comparable, V any, I any] struct {
	cache  CacheManager[K, V]
	derive func(ctx context.Context, input I) (V, error)
	bypass bool

	latest    K
	hasLatest bool
}

// NewRevisionCache wraps cache with derive. With bypass set every Get calls
// derive directly and nothing is stored.
func NewRevisionCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	derive func(ctx context.Context, input I) (V, error),
	bypass bool,
) *RevisionCache[K, V, I] {
	return &RevisionCache[K, V, I]{
		cache:  cache,
		derive: derive,
		bypass: bypass,
	}
}

// Get returns the value for revision, deriving it from input on a miss.
// Errors are returned and not cached.
func (r *RevisionCache[K, V, I]) Get(ctx context.Context, revision K, input I, ttl time.Duration) (V, error) {
	if r.bypass {
		return r.derive(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, revision); ok {
		return value, nil
	}

	value, err := r.derive(ctx, input)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, revision, value, ttl)

	if r.hasLatest && r.latest != revision {
		if err := r.cache.Delete(ctx, r.latest); err != nil {
			log.ErrorErr(log.CatCache, "evicting stale revision", err, "revision", r.latest)
		}
	}
	r.latest, r.hasLatest = revision, true

	log.Debug(log.CatCache, "derived", "revision", revision)
	return value, nil
}
