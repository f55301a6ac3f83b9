// Copyright © 2018 One Concern

package snapshot

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oneconcern/docmon/pkg/model"
)

// DefaultCacheSize is the default number of snapshots kept in a read cache
const DefaultCacheSize = 256

// WithCache decorates a snapshot store with a LRU read cache.
//
// Snapshots are immutable once stored, so cached entries never need invalidation.
// Cached snapshots are cloned on the way in and out. A size <= 0 returns the store unchanged.
func WithCache(store Store, size int) Store {
	if size <= 0 {
		return store
	}
	cache, err := lru.New[string, *model.Snapshot](size)
	if err != nil {
		return store
	}
	return &cachedStore{Store: store, cache: cache}
}

type cachedStore struct {
	Store
	cache *lru.Cache[string, *model.Snapshot]
}

func cacheKey(identity model.Identity, version string) string {
	return identity.String() + "\x00" + version
}

func (c *cachedStore) String() string {
	return "cached:" + c.Store.String()
}

func (c *cachedStore) Get(ctx context.Context, identity model.Identity, version string) (*model.Snapshot, error) {
	key := cacheKey(identity, version)
	if snapshot, ok := c.cache.Get(key); ok {
		return snapshot.Clone(), nil
	}
	snapshot, err := c.Store.Get(ctx, identity, version)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, snapshot.Clone())
	return snapshot, nil
}

func (c *cachedStore) Has(ctx context.Context, identity model.Identity, version string) (bool, error) {
	if c.cache.Contains(cacheKey(identity, version)) {
		return true, nil
	}
	return c.Store.Has(ctx, identity, version)
}
