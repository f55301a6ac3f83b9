// Copyright © 2018 One Concern

package model

import (
	"fmt"
	"strings"
	"time"
)

// ParentRef points to a version of some document, which a version entry derives from.
type ParentRef struct {
	Identity Identity `json:"identity" yaml:"identity"`
	Version  string   `json:"version" yaml:"version"`
	_        struct{}
}

func (p ParentRef) String() string {
	return p.Identity.String() + "@" + p.Version
}

// ParseParentRef reads a parent reference in the form {identity}@{version}
func ParseParentRef(s string) (ParentRef, error) {
	pos := strings.LastIndex(s, "@")
	if pos <= 0 || pos == len(s)-1 {
		return ParentRef{}, fmt.Errorf("invalid parent reference %q: expected {identity}@{version}", s)
	}
	return ParentRef{Identity: Identity(s[:pos]), Version: s[pos+1:]}, nil
}

// VersionEntry records one explicit versioning action.
//
// A version entry is created exactly once and is immutable thereafter.
type VersionEntry struct {
	Version     string      `json:"version" yaml:"version"`
	Timestamp   time.Time   `json:"timestamp" yaml:"timestamp"`
	Author      string      `json:"author,omitempty" yaml:"author,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Snapshot    string      `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Parents     []ParentRef `json:"parents,omitempty" yaml:"parents,omitempty"`
	Sequence    uint64      `json:"sequence" yaml:"sequence"`
	_           struct{}
}

// ToMetadata renders this entry as a metadata mapping, as recorded in the version_history field.
func (e VersionEntry) ToMetadata() *Metadata {
	m := NewMetadata().
		Set("version", e.Version).
		Set("timestamp", e.Timestamp.UTC().Format(time.RFC3339))
	if e.Author != "" {
		m.Set("author", e.Author)
	}
	if e.Description != "" {
		m.Set("description", e.Description)
	}
	if e.Snapshot != "" {
		m.Set("snapshot", e.Snapshot)
	}
	if len(e.Parents) > 0 {
		parents := make([]interface{}, 0, len(e.Parents))
		for _, p := range e.Parents {
			parents = append(parents, p.String())
		}
		m.Set("parents", parents)
	}
	return m
}

// EntryFromMetadata reads a version entry from a version_history mapping
func EntryFromMetadata(m *Metadata) (VersionEntry, error) {
	entry := VersionEntry{
		Version:     m.String("version"),
		Author:      m.String("author"),
		Description: m.String("description"),
		Snapshot:    m.String("snapshot"),
	}
	if entry.Version == "" {
		return VersionEntry{}, fmt.Errorf("version entry without a version")
	}

	switch ts := m.Value("timestamp").(type) {
	case string:
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return VersionEntry{}, fmt.Errorf("invalid timestamp in version entry %s: %v", entry.Version, err)
		}
		entry.Timestamp = t
	case time.Time:
		entry.Timestamp = ts
	}

	parents, _ := m.Value("parents").([]interface{})
	for _, raw := range parents {
		p, err := ParseParentRef(fmt.Sprint(raw))
		if err != nil {
			return VersionEntry{}, err
		}
		entry.Parents = append(entry.Parents, p)
	}
	return entry, nil
}

// VersionEntries is a collection of version entries, in storage order
type VersionEntries []VersionEntry

func (ve VersionEntries) Len() int           { return len(ve) }
func (ve VersionEntries) Less(i, j int) bool { return ve[i].Sequence < ve[j].Sequence }
func (ve VersionEntries) Swap(i, j int)      { ve[i], ve[j] = ve[j], ve[i] }

// Versions yields the version strings of these entries
func (ve VersionEntries) Versions() []string {
	versions := make([]string, 0, len(ve))
	for _, e := range ve {
		versions = append(versions, e.Version)
	}
	return versions
}

// Find a version entry
func (ve VersionEntries) Find(version string) (VersionEntry, bool) {
	for _, e := range ve {
		if e.Version == version {
			return e, true
		}
	}
	return VersionEntry{}, false
}

// Last entry, if any
func (ve VersionEntries) Last() (VersionEntry, bool) {
	if len(ve) == 0 {
		return VersionEntry{}, false
	}
	return ve[len(ve)-1], true
}
