// Copyright © 2018 One Concern

package core

import (
	"context"

	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/storage"
	storagestatus "github.com/oneconcern/docmon/pkg/storage/status"
	"gopkg.in/yaml.v2"
)

// metaObject knows how to write and retrieve descriptors from the metadata store
type metaObject struct {
	meta storage.Store
}

func defaultMetaObject(meta storage.Store) metaObject {
	return metaObject{
		meta: meta,
	}
}

// MetaStore yields the metadata store
func (o *metaObject) MetaStore() storage.Store {
	return o.meta
}

// readMetadata retrieves a descriptor from the metadata store.
//
// It returns false when the descriptor does not exist.
func (o *metaObject) readMetadata(ctx context.Context, pth string, descriptor interface{}) (bool, error) {
	buffer, err := storage.ReadAll(ctx, o.meta, pth)
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return false, nil
		}
		return false, err
	}
	if err = yaml.Unmarshal(buffer, descriptor); err != nil {
		return false, err
	}
	return true, nil
}

// writeMetadata puts a descriptor on the metadata store
func (o *metaObject) writeMetadata(ctx context.Context, pth string, noOverwrite bool, descriptor interface{}) error {
	buffer, err := yaml.Marshal(descriptor)
	if err != nil {
		return err
	}
	return storage.PutBytes(ctx, o.meta, pth, buffer, noOverwrite)
}

// readHead retrieves the head marker of a document
func (o *metaObject) readHead(ctx context.Context, identity model.Identity) (model.HeadDescriptor, bool, error) {
	var head model.HeadDescriptor
	found, err := o.readMetadata(ctx, model.GetArchivePathToHead(identity), &head)
	return head, found, err
}

// writeHead moves the head marker of a document
func (o *metaObject) writeHead(ctx context.Context, head model.HeadDescriptor) error {
	return o.writeMetadata(ctx, model.GetArchivePathToHead(head.Identity), storage.OverWrite, head)
}
