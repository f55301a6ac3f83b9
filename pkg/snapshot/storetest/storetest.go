// Copyright © 2018 One Concern

// Package storetest exercises any snapshot.Store implementation against the same expectations.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/snapshot"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture builds a snapshot of version, with a title and some content
func Fixture(version string, parents ...model.ParentRef) *model.Snapshot {
	return &model.Snapshot{
		Entry: model.VersionEntry{
			Version:     version,
			Timestamp:   time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
			Author:      "alice",
			Description: "release " + version,
			Parents:     parents,
		},
		Metadata: model.NewMetadata().
			Set(model.FieldTitle, "Plan").
			Set(model.FieldTags, []string{"a", "b"}).
			Set(model.FieldVersion, version),
		Content: "line 1\nversion " + version + "\n",
	}
}

// TestStore runs the common expectations on an empty store
func TestStore(t *testing.T, store snapshot.Store) {
	ctx := context.Background()
	const (
		id     = model.Identity("notes/plan.md")
		nested = model.Identity("notes/plan.md/inner.md")
	)

	t.Run("empty", func(t *testing.T) {
		entries, err := store.List(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, entries)

		has, err := store.Has(ctx, id, "1.0.0")
		require.NoError(t, err)
		assert.False(t, has)

		_, err = store.Get(ctx, id, "1.0.0")
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrNotFound))
	})

	t.Run("put and get", func(t *testing.T) {
		for i, version := range []string{"1.0.0", "0.9.0", "1.1.0"} {
			var parents []model.ParentRef
			if i > 0 {
				parents = []model.ParentRef{{Identity: id, Version: "1.0.0"}}
			}
			entry, err := store.Put(ctx, id, Fixture(version, parents...))
			require.NoError(t, err)
			assert.Equal(t, uint64(i+1), entry.Sequence)
			assert.NotEmpty(t, entry.Snapshot)
			assert.Equal(t, version, entry.Version)
		}

		snap, err := store.Get(ctx, id, "0.9.0")
		require.NoError(t, err)
		assert.Equal(t, "line 1\nversion 0.9.0\n", snap.Content)
		assert.Equal(t, "Plan", snap.Metadata.String(model.FieldTitle))
		assert.Equal(t, []string{model.FieldTitle, model.FieldTags, model.FieldVersion}, snap.Metadata.Keys())
		assert.True(t, model.Equal([]interface{}{"a", "b"}, snap.Metadata.Value(model.FieldTags)))
		assert.Equal(t, "alice", snap.Entry.Author)
		assert.True(t, snap.Entry.Timestamp.Equal(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)))
		require.Len(t, snap.Entry.Parents, 1)
		assert.Equal(t, "notes/plan.md@1.0.0", snap.Entry.Parents[0].String())

		has, err := store.Has(ctx, id, "1.1.0")
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("stored snapshots are immutable", func(t *testing.T) {
		_, err := store.Put(ctx, id, Fixture("1.0.0"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrValidation))

		snap, err := store.Get(ctx, id, "1.0.0")
		require.NoError(t, err)
		snap.Metadata.Set(model.FieldTitle, "changed")
		snap.Content = "changed"

		again, err := store.Get(ctx, id, "1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "Plan", again.Metadata.String(model.FieldTitle))
		assert.Equal(t, "line 1\nversion 1.0.0\n", again.Content)
	})

	t.Run("list in storage order", func(t *testing.T) {
		_, err := store.Put(ctx, nested, Fixture("5.0.0"))
		require.NoError(t, err)

		entries, err := store.List(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"1.0.0", "0.9.0", "1.1.0"}, entries.Versions())

		entries, err = store.List(ctx, nested)
		require.NoError(t, err)
		assert.Equal(t, []string{"5.0.0"}, entries.Versions())
		assert.Equal(t, uint64(1), entries[0].Sequence)
	})
}
