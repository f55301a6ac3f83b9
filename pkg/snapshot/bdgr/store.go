// Copyright © 2018 One Concern

// Package bdgr provides a snapshot store embedded in a badger key-value database.
package bdgr

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/badger/v3"
	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/snapshot"
	"github.com/oneconcern/docmon/pkg/status"
)

var _ snapshot.Store = &Store{}

const (
	snapshotPrefix = "s/"
	sep            = "\x00"
	retryInterval  = 10 * time.Millisecond
)

// Store keeps snapshots in a badger DB, keyed by s/{identity}\x00{version}
type Store struct {
	db   *badger.DB
	path string
}

type options struct {
	path     string
	inMemory bool
}

// Option for the badger snapshot store
type Option func(*options)

// Path sets the directory of the badger DB
func Path(pth string) Option {
	return func(o *options) {
		o.path = pth
	}
}

// InMemory runs the badger DB without persistence
func InMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// Open a badger snapshot store. The caller is responsible for closing it.
func Open(opts ...Option) (*Store, error) {
	o := options{}
	for _, apply := range opts {
		apply(&o)
	}

	var dbOpts badger.Options
	if o.inMemory {
		dbOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if o.path == "" {
			return nil, status.ErrValidation.WrapMessage("badger snapshot store requires a path")
		}
		if err := os.MkdirAll(o.path, 0700); err != nil {
			return nil, fmt.Errorf("open snapshot store: mkdir: %w", err)
		}
		dbOpts = badger.LSMOnlyOptions(o.path)
	}

	db, err := badger.Open(dbOpts.WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return &Store{db: db, path: o.path}, nil
}

// Close the underlying DB
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) String() string {
	if s.path == "" {
		return "badger:memory"
	}
	return "badger:" + s.path
}

func identityPrefix(identity model.Identity) []byte {
	return []byte(snapshotPrefix + identity.String() + sep)
}

func key(identity model.Identity, version string) []byte {
	return append(identityPrefix(identity), version...)
}

// Put a snapshot. The existence check, the sequence count and the write happen in a single transaction.
func (s *Store) Put(_ context.Context, identity model.Identity, snap *model.Snapshot) (model.VersionEntry, error) {
	version := snap.Entry.Version
	k := key(identity, version)
	var entry model.VersionEntry

	err := backoff.Retry(func() error {
		return s.db.Update(func(txn *badger.Txn) error {
			_, err := txn.Get(k)
			if err == nil {
				return backoff.Permanent(snapshot.ErrVersionExists(identity, version))
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return backoff.Permanent(err)
			}

			count := countPrefix(txn, identityPrefix(identity))
			prepared := snapshot.Prepare(snap, count+1)
			payload, err := snapshot.Marshal(prepared)
			if err != nil {
				return backoff.Permanent(status.ErrValidation.Wrap(err))
			}

			if err = txn.Set(k, payload); err != nil {
				if errors.Is(err, badger.ErrConflict) {
					return err // retry
				}
				return backoff.Permanent(err)
			}
			entry = prepared.Entry
			return nil
		})
	},
		backoff.NewConstantBackOff(retryInterval),
	)
	if err != nil {
		return model.VersionEntry{}, unwrapPermanent(err)
	}
	return entry, nil
}

func countPrefix(txn *badger.Txn, prefix []byte) uint64 {
	iterator := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: false,
		Prefix:         prefix,
	})
	defer iterator.Close()

	var count uint64
	for iterator.Rewind(); iterator.ValidForPrefix(prefix); iterator.Next() {
		count++
	}
	return count
}

// Get a snapshot
func (s *Store) Get(_ context.Context, identity model.Identity, version string) (*model.Snapshot, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, e := txn.Get(key(identity, version))
		if e != nil {
			return e
		}
		value, e = item.ValueCopy(nil)

		return e
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, snapshot.ErrVersionNotFound(identity, version)
		}
		return nil, err
	}
	return snapshot.Unmarshal(value)
}

// Has a snapshot
func (s *Store) Has(_ context.Context, identity model.Identity, version string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, e := txn.Get(key(identity, version))

		return e
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}

		// some technical error occurred: interrupt
		return false, err
	}

	return true, nil
}

// List version entries of a document
func (s *Store) List(_ context.Context, identity model.Identity) (model.VersionEntries, error) {
	prefix := identityPrefix(identity)
	entries := make(model.VersionEntries, 0, 10)

	err := s.db.View(func(txn *badger.Txn) error {
		iterator := txn.NewIterator(badger.IteratorOptions{
			PrefetchSize:   100,
			PrefetchValues: true,
			Prefix:         prefix,
		})
		defer iterator.Close()

		for iterator.Rewind(); iterator.ValidForPrefix(prefix); iterator.Next() {
			item := iterator.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			snap, err := snapshot.Unmarshal(value)
			if err != nil {
				return status.ErrValidation.WrapMessage("corrupted snapshot %s", item.KeyCopy(nil)).Wrap(err)
			}
			entries = append(entries, snap.Entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(entries)
	return entries, nil
}

func unwrapPermanent(err error) error {
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}
