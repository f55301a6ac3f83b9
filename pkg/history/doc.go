// Copyright © 2018 One Concern

// Package history models the version history of documents as a directed acyclic graph.
//
// Each node is a version of a document identity. Edges point from a version to the versions it derives from:
// the previous version of the same document, the source version of a branch, or both heads of a merge.
package history
