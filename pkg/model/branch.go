// Copyright © 2018 One Concern

package model

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

var branchNameRex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// BranchDescriptor describes a branch of a document
type BranchDescriptor struct {
	Name          string    `json:"name" yaml:"name"`
	Source        Identity  `json:"source" yaml:"source"`
	Identity      Identity  `json:"identity" yaml:"identity"`
	BaseVersion   string    `json:"base_version" yaml:"base_version"`
	Created       time.Time `json:"created" yaml:"created"`
	MergedInto    Identity  `json:"merged_into,omitempty" yaml:"merged_into,omitempty"`
	MergedAt      time.Time `json:"merged_at,omitempty" yaml:"merged_at,omitempty"`
	MergedVersion string    `json:"merged_version,omitempty" yaml:"merged_version,omitempty"`
	_             struct{}
}

// IsMerged tells if the branch has been merged, in which case it is no longer authoritative
func (b BranchDescriptor) IsMerged() bool {
	return b.MergedInto != ""
}

// ValidateBranchName checks a branch name
func ValidateBranchName(name string) error {
	if !branchNameRex.MatchString(name) {
		return fmt.Errorf("invalid branch name %q: must start with a letter or digit and contain only letters, digits, '-' or '_'", name)
	}
	return nil
}

// BranchIdentity yields the identity of branch name of a document.
//
// The branch name is inserted before the extension: notes/plan.md becomes notes/plan.{name}.md.
func BranchIdentity(source Identity, name string) Identity {
	dir, file := path.Split(source.String())
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	return Identity(dir + stem + "." + name + ext)
}
