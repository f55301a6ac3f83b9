// Copyright © 2018 One Concern

// Package merge implements the three-way merge of documents.
//
// Given a common ancestor (base) and two divergent edits (local and remote), Detect computes the
// conflicting metadata fields and the conflicting content regions. When there is no conflict,
// AutoMerge combines both edits. Otherwise, a Session tracks the manual resolution of each conflict,
// either through the API or by rendering a conflict artifact for a human to edit.
//
// Conflict markers are:
//
//   <<<<<<< LOCAL
//   local text
//   =======
//   remote text
//   >>>>>>> REMOTE
package merge
