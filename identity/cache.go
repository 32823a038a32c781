package identity

import (
	"context"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

// CacheInvalidator is the external access-key -> account cache, treated as
// authoritative by the data plane. It is injected at construction rather
// than reached as a process-wide singleton. A concrete Unix-socket transport
// lives in the sibling cachesock package.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, accessKey string) error
}

// noopCache discards invalidations. It exists only for tests and for callers
// that have not wired a real cache yet; never use it in production, since a
// missing invalidation leaves the data plane resolving stale keys.
type noopCache struct{}

func (noopCache) Invalidate(context.Context, string) error { return nil }

// invalidateAll invalidates every access key currently on a, logging but not
// failing the overall operation if a single invalidation call errors (the
// account mutation that triggered it has already been committed to disk).
func invalidateAll(ctx context.Context, c CacheInvalidator, a *Account) {
	for i := range a.AccessKeys {
		if err := c.Invalidate(ctx, a.AccessKeys[i].AccessKey); err != nil {
			internal.Log.W("cache invalidate %s: %v", a.AccessKeys[i].AccessKey, err)
		}
	}
}
