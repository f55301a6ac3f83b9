// Copyright © 2018 One Concern

// Package memory provides an in-memory snapshot store, indexed by a radix tree.
//
// This store is safe for concurrent use. It is mostly useful for tests and transient workspaces.
package memory

import (
	"context"
	"sort"
	"sync"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/snapshot"
)

var _ snapshot.Store = &Store{}

const sep = "\x00"

// Store keeps snapshots in an immutable radix tree keyed by {identity}\x00{version}
type Store struct {
	mx   sync.RWMutex
	tree *iradix.Tree
}

// New in-memory snapshot store
func New() *Store {
	return &Store{tree: iradix.New()}
}

func key(identity model.Identity, version string) []byte {
	return []byte(identity.String() + sep + version)
}

func (s *Store) String() string {
	return "memory"
}

// Put a snapshot
func (s *Store) Put(_ context.Context, identity model.Identity, snap *model.Snapshot) (model.VersionEntry, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	version := snap.Entry.Version
	k := key(identity, version)
	if _, found := s.tree.Get(k); found {
		return model.VersionEntry{}, snapshot.ErrVersionExists(identity, version)
	}

	var count uint64
	s.tree.Root().WalkPrefix([]byte(identity.String()+sep), func(_ []byte, _ interface{}) bool {
		count++
		return false
	})

	prepared := snapshot.Prepare(snap, count+1)
	s.tree, _, _ = s.tree.Insert(k, prepared)
	return prepared.Entry, nil
}

// Get a snapshot
func (s *Store) Get(_ context.Context, identity model.Identity, version string) (*model.Snapshot, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	v, found := s.tree.Get(key(identity, version))
	if !found {
		return nil, snapshot.ErrVersionNotFound(identity, version)
	}
	return v.(*model.Snapshot).Clone(), nil
}

// Has a snapshot
func (s *Store) Has(_ context.Context, identity model.Identity, version string) (bool, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	_, found := s.tree.Get(key(identity, version))
	return found, nil
}

// List version entries of a document
func (s *Store) List(_ context.Context, identity model.Identity) (model.VersionEntries, error) {
	s.mx.RLock()
	tree := s.tree
	s.mx.RUnlock()

	entries := make(model.VersionEntries, 0, 10)
	tree.Root().WalkPrefix([]byte(identity.String()+sep), func(_ []byte, v interface{}) bool {
		entries = append(entries, v.(*model.Snapshot).Entry)
		return false
	})
	sort.Sort(entries)
	return entries, nil
}
