// Copyright © 2018 One Concern

// Package codec reads and writes the on-disk representation of documents.
//
// A document is rendered as a YAML metadata block delimited by "---" lines, followed by the text content:
//
//   ---
//   title: Plan
//   version: 1.0.0
//   ---
//   # Plan
//
// Metadata keys keep their order through a parse and render cycle.
package codec
