// Copyright © 2018 One Concern

package localfs

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/oneconcern/docmon/pkg/storage"
	"github.com/oneconcern/docmon/pkg/storage/status"
	"github.com/spf13/afero"
)

// thread-safe local storage implementation.
//
// Uses a decorator pattern to implement atomic Put()s via atomicity of afero.Fs.Rename()
// for those filesystems where Rename() is thread-safe: files are placed in a staging area,
// then Rename()d into place. A reader never observes a partially written object.

const nestedPutStageName = ".put-stage"

func maybeInvalidKey(key string) error {
	components := strings.Split(cleanKey(key), "/")
	if components[0] == nestedPutStageName {
		return status.ErrInvalidResource.WrapMessage("key %q conflicts with put staging area name %q", key, nestedPutStageName)
	}
	return nil
}

func filterInvalidKeys(ks []string) []string {
	filtered := ks[:0]
	for _, key := range ks {
		if err := maybeInvalidKey(key); err == nil {
			filtered = append(filtered, key)
		}
	}
	return filtered
}

// NewAtomic creates a local file system backed store, with atomic writes
func NewAtomic(fs afero.Fs) (storage.Store, error) {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), ".docmon")
	}
	// the staging area exists within the afero.Fs itself
	if err := fs.MkdirAll(nestedPutStageName, 0700); err != nil {
		return nil, status.ErrStorageAPI.WrapMessage("ensuring put staging directory %q", nestedPutStageName).Wrap(err)
	}
	return &localFSAtomic{
		storeImpl: localFS{fs: fs},
	}, nil
}

type localFSAtomic struct {
	storeImpl localFS
}

func (l *localFSAtomic) Has(ctx context.Context, key string) (bool, error) {
	if err := maybeInvalidKey(key); err != nil {
		return false, err
	}
	return l.storeImpl.Has(ctx, key)
}

func (l *localFSAtomic) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := maybeInvalidKey(key); err != nil {
		return nil, err
	}
	return l.storeImpl.Get(ctx, key)
}

func (l *localFSAtomic) Delete(ctx context.Context, key string) error {
	if err := maybeInvalidKey(key); err != nil {
		return err
	}
	return l.storeImpl.Delete(ctx, key)
}

func (l *localFSAtomic) Keys(ctx context.Context) ([]string, error) {
	ks, err := l.storeImpl.Keys(ctx)
	if err != nil {
		return ks, err
	}
	return filterInvalidKeys(ks), nil
}

func (l *localFSAtomic) KeysPrefix(ctx context.Context, token, prefix, delimiter string, count int) ([]string, string, error) {
	ks, pageToken, err := l.storeImpl.KeysPrefix(ctx, token, prefix, delimiter, count)
	if err != nil {
		return ks, pageToken, err
	}
	return filterInvalidKeys(ks), pageToken, nil
}

func (l *localFSAtomic) Clear(ctx context.Context) error {
	if err := l.storeImpl.Clear(ctx); err != nil {
		return err
	}
	return l.storeImpl.fs.MkdirAll(nestedPutStageName, 0700)
}

// Put stages the object, then renames it into place.
func (l *localFSAtomic) Put(ctx context.Context, key string, source io.Reader, exclusive bool) error {
	if err := maybeInvalidKey(key); err != nil {
		return err
	}
	if exclusive {
		has, err := l.storeImpl.Has(ctx, key)
		if err != nil {
			return err
		}
		if has {
			return status.ErrExists.WrapMessage("key %q", key)
		}
	}
	putStageKey := filepath.Join(nestedPutStageName, key)
	if err := l.storeImpl.Put(ctx, putStageKey, source, storage.OverWrite); err != nil {
		return err
	}
	// Rename() doesn't create directories automatically
	if dir := filepath.Dir(key); dir != "" {
		if err := l.storeImpl.fs.MkdirAll(dir, 0700); err != nil {
			return status.ErrStorageAPI.WrapMessage("ensuring directories for %q", key).Wrap(err)
		}
	}
	if err := l.storeImpl.fs.Rename(putStageKey, key); err != nil {
		return status.ErrStorageAPI.WrapMessage("moving staged record %q into place", key).Wrap(err)
	}
	return nil
}

func (l *localFSAtomic) String() string {
	return describe("localfs-atomic", l.storeImpl.fs)
}
