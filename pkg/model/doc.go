// Copyright © 2018 One Concern

// Package model describes the base objects manipulated by docmon.
//
// The object model for docmon is composed of:
//
//  Documents:
//    A versioned document holds an ordered metadata map and free-form text content.
//    A document may be bound to an identity (a stable location), or be transient.
//
//  Version entries:
//    A version entry records one explicit versioning action: it tags an immutable snapshot
//    of the document with a semantic version. Entries are append-only.
//
//  Snapshots:
//    A snapshot is an immutable stored copy of a document's metadata and content at a tagged version.
//
//  Branches:
//    A branch is an independent document identity seeded from some version of a source document,
//    with its own version history. A branch may later be merged back into a target document.
package model
