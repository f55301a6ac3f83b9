// Copyright © 2018 One Concern

package localfs

import (
	"bytes"
	"context"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/oneconcern/docmon/pkg/storage"
	"github.com/oneconcern/docmon/pkg/storage/status"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t testing.TB) storage.Store {
	t.Helper()

	fs := afero.NewMemMapFs()
	fakeFile(t, fs, "sixteentons", "this is the text")
	fakeFile(t, fs, "seventeentons", "this is the text for another thing")
	return New(fs)
}

func setupAtomicStore(t testing.TB) storage.Store {
	t.Helper()

	fs := afero.NewMemMapFs()
	fakeFile(t, fs, "sixteentons", "this is the text")
	fakeFile(t, fs, "seventeentons", "this is the text for another thing")
	s, err := NewAtomic(fs)
	require.NoError(t, err)
	return s
}

func fakeFile(t testing.TB, fs afero.Fs, file, content string) {
	require.NoError(t, fs.MkdirAll(filepath.Dir(file), 0700))
	f, err := fs.Create(file)
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func stores(t testing.TB) map[string]storage.Store {
	return map[string]storage.Store{
		"plain":  setupStore(t),
		"atomic": setupAtomicStore(t),
	}
}

func TestHas(t *testing.T) {
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			has, err := bs.Has(context.Background(), "sixteentons")
			require.NoError(t, err)
			require.True(t, has)

			has, err = bs.Has(context.Background(), "fifteentons")
			require.NoError(t, err)
			require.False(t, has)
		})
	}
}

func TestGet(t *testing.T) {
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			b, err := storage.ReadAll(context.Background(), bs, "seventeentons")
			require.NoError(t, err)
			assert.Equal(t, "this is the text for another thing", string(b))

			_, err = bs.Get(context.Background(), "fifteentons")
			require.Error(t, err)
			assert.ErrorIs(t, err, status.ErrNotExists)
		})
	}
}

func TestKeys(t *testing.T) {
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			keys, err := bs.Keys(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"seventeentons", "sixteentons"}, keys)
		})
	}
}

func TestDelete(t *testing.T) {
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, bs.Delete(context.Background(), "seventeentons"))
			require.NoError(t, bs.Delete(context.Background(), "never-there"))
			k, _ := bs.Keys(context.Background())
			assert.Len(t, k, 1)
		})
	}
}

func TestClear(t *testing.T) {
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, bs.Clear(context.Background()))
			k, _ := bs.Keys(context.Background())
			require.Empty(t, k)
		})
	}
}

func TestPut(t *testing.T) {
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			err := bs.Put(ctx, "nested/dir/eighteentons", bytes.NewBufferString("here we go once again"), storage.NoOverWrite)
			require.NoError(t, err)

			rdr, err := bs.Get(ctx, "nested/dir/eighteentons")
			require.NoError(t, err)
			b, err := ioutil.ReadAll(rdr)
			require.NoError(t, err)
			require.NoError(t, rdr.Close())
			assert.Equal(t, "here we go once again", string(b))

			err = bs.Put(ctx, "nested/dir/eighteentons", bytes.NewBufferString("again"), storage.NoOverWrite)
			require.Error(t, err)
			assert.ErrorIs(t, err, status.ErrExists)

			require.NoError(t, storage.PutBytes(ctx, bs, "nested/dir/eighteentons", []byte("short"), storage.OverWrite))
			b, err = storage.ReadAll(ctx, bs, "nested/dir/eighteentons")
			require.NoError(t, err)
			assert.Equal(t, "short", string(b))

			k, _ := bs.Keys(ctx)
			assert.Len(t, k, 3)
		})
	}
}

func TestAtomicStagingArea(t *testing.T) {
	bs := setupAtomicStore(t)
	err := bs.Put(context.Background(), ".put-stage/x", bytes.NewBufferString("x"), storage.OverWrite)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrInvalidResource)
	assert.Equal(t, "localfs-atomic", bs.String())
}

func TestKeysPrefix(t *testing.T) {
	fs := afero.NewMemMapFs()
	for i := 0; i < 10; i++ {
		fakeFile(t, fs, "a/b/c/e"+strconv.Itoa(i), "x")
		fakeFile(t, fs, "a/d/f"+strconv.Itoa(i), "x")
	}
	store := New(fs)
	ctx := context.Background()

	var (
		keys []string
		next string
		err  error
	)
	pages := 0
	for keys, next, err = store.KeysPrefix(ctx, "", "a/", "", 3); next != ""; keys, next, err = store.KeysPrefix(ctx, next, "a/", "", 3) {
		require.NoError(t, err)
		assert.Len(t, keys, 3)
		pages++
	}
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.Equal(t, 6, pages)

	all, err := storage.AllKeysPrefix(ctx, store, "/a/d/f", "")
	require.NoError(t, err)
	assert.Len(t, all, 10)

	none, err := storage.AllKeysPrefix(ctx, store, "z/y/", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestKeysPrefixWithDelimiter(t *testing.T) {
	fs := afero.NewMemMapFs()
	for i := 0; i < 3; i++ {
		fakeFile(t, fs, "a/b-1/c/e-"+strconv.Itoa(i), "x")
		fakeFile(t, fs, "a/d/f-"+strconv.Itoa(i), "x")
		fakeFile(t, fs, "a/g"+strconv.Itoa(i), "x")
	}
	keys, err := storage.AllKeysPrefix(context.Background(), New(fs), "a/", "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b-1/", "a/d/", "a/g0", "a/g1", "a/g2"}, keys)
}
