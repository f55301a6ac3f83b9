// Copyright © 2018 One Concern

package storage_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/oneconcern/docmon/pkg/storage"
	"github.com/oneconcern/docmon/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInstrument(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := storage.Instrument(zap.New(core), localfs.New(afero.NewMemMapFs()))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a/b", bytes.NewBufferString("x"), storage.NoOverWrite))
	has, err := store.Has(ctx, "a/b")
	require.NoError(t, err)
	assert.True(t, has)

	b, err := storage.ReadAll(ctx, store, "a/b")
	require.NoError(t, err)
	assert.Equal(t, "x", string(b))

	_, err = store.Get(ctx, "missing")
	require.Error(t, err)

	keys, err := storage.AllKeysPrefix(ctx, store, "a/", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b"}, keys)

	require.NoError(t, store.Delete(ctx, "a/b"))
	require.NoError(t, store.Clear(ctx))

	assert.Equal(t, 1, logs.FilterMessage("storage put").Len())
	assert.Equal(t, 2, logs.FilterMessage("storage get").Len())
	failed := logs.FilterMessage("storage get").FilterField(zap.String("key", "missing")).All()
	require.Len(t, failed, 1)
	assert.Equal(t, "localfs", store.String())
}
