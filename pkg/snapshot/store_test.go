// Copyright © 2018 One Concern

package snapshot_test

import (
	"context"
	"testing"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/snapshot"
	"github.com/oneconcern/docmon/pkg/snapshot/memory"
	"github.com/oneconcern/docmon/pkg/snapshot/storetest"
	"github.com/oneconcern/docmon/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStore(t *testing.T) {
	blobs := localfs.New(afero.NewMemMapFs())
	storetest.TestStore(t, snapshot.NewBlobStore(blobs))

	// snapshots land as yaml files in the blob store
	has, err := blobs.Has(context.Background(), "snapshots/notes/plan.md/1.0.0.yaml")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestBlobStoreAtomic(t *testing.T) {
	blobs, err := localfs.NewAtomic(afero.NewMemMapFs())
	require.NoError(t, err)
	storetest.TestStore(t, snapshot.NewBlobStore(blobs))
}

func TestCachedStore(t *testing.T) {
	t.Run("common", func(t *testing.T) {
		storetest.TestStore(t, snapshot.WithCache(memory.New(), 2))
	})

	t.Run("disabled", func(t *testing.T) {
		store := memory.New()
		assert.Same(t, store, snapshot.WithCache(store, 0))
	})

	t.Run("serves clones", func(t *testing.T) {
		ctx := context.Background()
		store := snapshot.WithCache(memory.New(), snapshot.DefaultCacheSize)
		assert.Equal(t, "cached:memory", store.String())

		_, err := store.Put(ctx, "a.md", storetest.Fixture("1.0.0"))
		require.NoError(t, err)

		first, err := store.Get(ctx, "a.md", "1.0.0")
		require.NoError(t, err)
		first.Metadata.Set(model.FieldTitle, "mutated")

		second, err := store.Get(ctx, "a.md", "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "Plan", second.Metadata.String(model.FieldTitle))

		has, err := store.Has(ctx, "a.md", "1.0.0")
		require.NoError(t, err)
		assert.True(t, has)
	})
}
