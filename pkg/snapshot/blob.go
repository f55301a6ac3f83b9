// Copyright © 2018 One Concern

package snapshot

import (
	"context"
	"sort"

	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/oneconcern/docmon/pkg/storage"
	storagestatus "github.com/oneconcern/docmon/pkg/storage/status"
)

var _ Store = &blobStore{}

// NewBlobStore builds a snapshot store over a blob storage.
//
// Snapshots are stored as YAML files under snapshots/{identity}/{version}.yaml.
func NewBlobStore(blobs storage.Store) Store {
	return &blobStore{blobs: blobs}
}

type blobStore struct {
	blobs storage.Store
}

func (b *blobStore) String() string {
	return "blob:" + b.blobs.String()
}

func (b *blobStore) Put(ctx context.Context, identity model.Identity, snapshot *model.Snapshot) (model.VersionEntry, error) {
	version := snapshot.Entry.Version
	has, err := b.Has(ctx, identity, version)
	if err != nil {
		return model.VersionEntry{}, err
	}
	if has {
		return model.VersionEntry{}, ErrVersionExists(identity, version)
	}

	existing, err := b.List(ctx, identity)
	if err != nil {
		return model.VersionEntry{}, err
	}
	var sequence uint64 = 1
	if last, ok := existing.Last(); ok {
		sequence = last.Sequence + 1
	}

	prepared := Prepare(snapshot, sequence)
	payload, err := Marshal(prepared)
	if err != nil {
		return model.VersionEntry{}, status.ErrValidation.Wrap(err)
	}
	err = storage.PutBytes(ctx, b.blobs, model.GetArchivePathToSnapshot(identity, version), payload, storage.NoOverWrite)
	if err != nil {
		if errors.Is(err, storagestatus.ErrExists) {
			return model.VersionEntry{}, ErrVersionExists(identity, version)
		}
		return model.VersionEntry{}, err
	}
	return prepared.Entry, nil
}

func (b *blobStore) Get(ctx context.Context, identity model.Identity, version string) (*model.Snapshot, error) {
	payload, err := storage.ReadAll(ctx, b.blobs, model.GetArchivePathToSnapshot(identity, version))
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return nil, ErrVersionNotFound(identity, version)
		}
		return nil, err
	}
	snapshot, err := Unmarshal(payload)
	if err != nil {
		return nil, status.ErrValidation.WrapMessage("corrupted snapshot %s of %s", version, identity).Wrap(err)
	}
	return snapshot, nil
}

func (b *blobStore) Has(ctx context.Context, identity model.Identity, version string) (bool, error) {
	return b.blobs.Has(ctx, model.GetArchivePathToSnapshot(identity, version))
}

func (b *blobStore) List(ctx context.Context, identity model.Identity) (model.VersionEntries, error) {
	keys, err := storage.AllKeysPrefix(ctx, b.blobs, model.GetArchivePathPrefixToSnapshots(identity), "")
	if err != nil {
		return nil, err
	}
	entries := make(model.VersionEntries, 0, len(keys))
	for _, key := range keys {
		apc, err := model.GetArchivePathComponents(key)
		if err != nil || apc.Identity != identity || apc.Version == "" {
			// snapshots of nested identities share the prefix
			continue
		}
		snapshot, err := b.Get(ctx, identity, apc.Version)
		if err != nil {
			return nil, err
		}
		entries = append(entries, snapshot.Entry)
	}
	sort.Sort(entries)
	return entries, nil
}
