// Copyright © 2018 One Concern

package bdgr

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/snapshot/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func ignoredGoroutines() []goleak.Option {
	return []goleak.Option{
		// badger dependencies start these at init
		goleak.IgnoreTopFunction("github.com/golang/glog.(*loggingT).flushDaemon"),
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	}
}

func TestBadgerStoreInMemory(t *testing.T) {
	defer goleak.VerifyNone(t, ignoredGoroutines()...)

	store, err := Open(InMemory())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	assert.Equal(t, "badger:memory", store.String())
	storetest.TestStore(t, store)
}

func TestBadgerStoreReopen(t *testing.T) {
	defer goleak.VerifyNone(t, ignoredGoroutines()...)

	pth := filepath.Join(t.TempDir(), "snapshots")
	ctx := context.Background()
	const id = model.Identity("plan.md")

	store, err := Open(Path(pth))
	require.NoError(t, err)
	_, err = store.Put(ctx, id, storetest.Fixture("0.1.0"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(Path(pth))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	snap, err := store.Get(ctx, id, "0.1.0")
	require.NoError(t, err)
	assert.Equal(t, "line 1\nversion 0.1.0\n", snap.Content)

	entry, err := store.Put(ctx, id, storetest.Fixture("0.2.0"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), entry.Sequence)
}

func TestBadgerStoreRequiresPath(t *testing.T) {
	_, err := Open()
	require.Error(t, err)
}
