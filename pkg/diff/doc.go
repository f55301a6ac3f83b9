// Copyright © 2018 One Concern

// Package diff computes line-level edit scripts and field-level metadata changes between documents.
//
// Edit scripts are produced by a longest-common-subsequence line matcher. Line ranges are
// half-open [I1, I2) intervals over the lines of the original text.
package diff
