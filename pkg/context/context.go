// Copyright © 2018 One Concern

// Package context bundles the stores a docmon workspace operates on.
package context

import (
	"fmt"

	"github.com/oneconcern/docmon/pkg/snapshot"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/oneconcern/docmon/pkg/storage"
)

// Stores defines a complete context for docmon objects
type Stores interface {
	// Documents yields the storage for live documents, keyed by identity
	Documents() storage.Store
	// SetDocuments sets the context storage for live documents
	SetDocuments(documents storage.Store)

	// Metadata yields the storage for head markers and branch descriptors
	Metadata() storage.Store
	// SetMetadata sets the context storage for head markers and branch descriptors
	SetMetadata(metadata storage.Store)

	// Snapshots yields the snapshot store
	Snapshots() snapshot.Store
	// SetSnapshots sets the snapshot store
	SetSnapshots(snapshots snapshot.Store)

	// Validate that all stores are set
	Validate() error
}

// type safeguard
var _ Stores = &defaultStores{}

// defaultStores is the default implementation of Stores
type defaultStores struct {
	documents storage.Store
	metadata  storage.Store
	snapshots snapshot.Store
	_         struct{}
}

// New creates a new empty instance of context stores, to be set with the Setxxx methods.
func New() Stores {
	return &defaultStores{}
}

// NewStores creates a new instance of context stores
func NewStores(documents, metadata storage.Store, snapshots snapshot.Store) Stores {
	return &defaultStores{documents: documents, metadata: metadata, snapshots: snapshots}
}

// NewBlobStores creates a context where snapshots are stored as blobs in the metadata store
func NewBlobStores(documents, metadata storage.Store) Stores {
	return NewStores(documents, metadata, snapshot.NewBlobStore(metadata))
}

// Documents yields the storage for live documents
func (c *defaultStores) Documents() storage.Store {
	return c.documents
}

// SetDocuments sets the context storage for live documents
func (c *defaultStores) SetDocuments(documents storage.Store) {
	c.documents = documents
}

// Metadata yields the storage for head markers and branch descriptors
func (c *defaultStores) Metadata() storage.Store {
	return c.metadata
}

// SetMetadata sets the context storage for head markers and branch descriptors
func (c *defaultStores) SetMetadata(metadata storage.Store) {
	c.metadata = metadata
}

// Snapshots yields the snapshot store
func (c *defaultStores) Snapshots() snapshot.Store {
	return c.snapshots
}

// SetSnapshots sets the snapshot store
func (c *defaultStores) SetSnapshots(snapshots snapshot.Store) {
	c.snapshots = snapshots
}

func (c *defaultStores) Validate() error {
	switch {
	case c.documents == nil:
		return status.ErrValidation.WrapMessage("context has no documents store")
	case c.metadata == nil:
		return status.ErrValidation.WrapMessage("context has no metadata store")
	case c.snapshots == nil:
		return status.ErrValidation.WrapMessage("context has no snapshot store")
	default:
		return nil
	}
}

func (c *defaultStores) String() string {
	return fmt.Sprintf("documents: %q, metadata: %q, snapshots: %q",
		describe(c.documents), describe(c.metadata), describe(c.snapshots))
}

func describe(s fmt.Stringer) string {
	if s == nil {
		return "<none>"
	}
	return s.String()
}
