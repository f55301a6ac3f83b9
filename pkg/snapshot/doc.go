// Copyright © 2018 One Concern

// Package snapshot persists immutable document snapshots, addressed by document identity and version.
//
// Implementations:
//   - a blob store, over any storage.Store (e.g. the local file system)
//   - an in-memory store (package memory)
//   - an embedded badger store (package bdgr)
//
// All implementations guarantee that a snapshot is written atomically and never overwritten.
package snapshot
