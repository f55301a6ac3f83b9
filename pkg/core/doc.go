// Copyright © 2018 One Concern

// Package core implements document versioning for docmon.
//
// The Manager creates, lists and compares versions of documents, rolls documents back, manages branches,
// and reconciles concurrent edits with three-way merges.
//
// A Manager operates on a set of stores:
//   - the documents store holds live documents, keyed by identity
//   - the metadata store holds head markers and branch descriptors
//   - the snapshot store holds immutable versions
//
// Operations on independent identities may run concurrently. Operations on the same identity are not
// serialized: callers detect concurrent writers with DetectConcurrentModification and reconcile with merges.
package core
