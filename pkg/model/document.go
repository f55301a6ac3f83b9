// Copyright © 2018 One Concern

package model

import (
	"fmt"
	"time"

	"github.com/oneconcern/docmon/pkg/semver"
)

// Identity is the stable location of a document, e.g. a path relative to the workspace root.
//
// The zero value denotes a transient document.
type Identity string

func (i Identity) String() string {
	return string(i)
}

// IsZero tells if this identity is empty
func (i Identity) IsZero() bool {
	return i == ""
}

// Document is a versioned document: an ordered metadata map and free-form text content
type Document struct {
	Metadata *Metadata
	Content  string
	Identity Identity
	_        struct{}
}

// NewDocument builds a document. A nil metadata map is replaced by an empty one.
func NewDocument(identity Identity, meta *Metadata, content string) *Document {
	if meta == nil {
		meta = NewMetadata()
	}
	return &Document{
		Metadata: meta,
		Content:  content,
		Identity: identity,
	}
}

// Clone performs a deep copy of the document
func (d *Document) Clone() *Document {
	return &Document{
		Metadata: d.Metadata.Clone(),
		Content:  d.Content,
		Identity: d.Identity,
	}
}

func (d *Document) meta() *Metadata {
	if d.Metadata == nil {
		d.Metadata = NewMetadata()
	}
	return d.Metadata
}

// Version of the document. A document without a version is at 0.0.0.
func (d *Document) Version() string {
	v := d.Metadata.Value(FieldVersion)
	if v == nil {
		return semver.Zero
	}
	s := fmt.Sprint(v)
	if s == "" {
		return semver.Zero
	}
	return s
}

// HasVersion tells if the document carries an explicit version field
func (d *Document) HasVersion() bool {
	return d.Metadata.Has(FieldVersion)
}

// SetVersion sets the version field, which must be a valid semantic version
func (d *Document) SetVersion(version string) error {
	if _, err := semver.Parse(version); err != nil {
		return err
	}
	d.meta().Set(FieldVersion, version)
	return nil
}

// BumpVersion increments the version of the document and updates its updated_at field.
func (d *Document) BumpVersion(kind semver.Kind) (string, error) {
	next, err := semver.Next(d.Version(), kind)
	if err != nil {
		return "", err
	}
	d.meta().Set(FieldVersion, next)
	d.Touch(time.Now())
	return next, nil
}

// Touch sets the updated_at field
func (d *Document) Touch(now time.Time) {
	d.meta().Set(FieldUpdatedAt, now.Format(DateFormat))
}

// Title of the document
func (d *Document) Title() string {
	return d.Metadata.String(FieldTitle)
}

// Author of the document
func (d *Document) Author() string {
	return d.Metadata.String(FieldAuthor)
}

// Tags of the document
func (d *Document) Tags() []string {
	list, _ := d.Metadata.Value(FieldTags).([]interface{})
	tags := make([]string, 0, len(list))
	for _, t := range list {
		tags = append(tags, fmt.Sprint(t))
	}
	return tags
}

// HasTag tells if the document is tagged with tag
func (d *Document) HasTag(tag string) bool {
	for _, t := range d.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag adds a tag, unless already present
func (d *Document) AddTag(tag string) {
	if d.HasTag(tag) {
		return
	}
	d.setTags(append(d.Tags(), tag))
}

// RemoveTag removes a tag. The tags field is removed when no tag remains.
func (d *Document) RemoveTag(tag string) {
	tags := d.Tags()
	kept := tags[:0]
	for _, t := range tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		d.meta().Delete(FieldTags)
		return
	}
	d.setTags(kept)
}

func (d *Document) setTags(tags []string) {
	d.meta().Set(FieldTags, tags)
}

// History yields the version entries recorded in the document's version_history field
func (d *Document) History() ([]VersionEntry, error) {
	raw := d.Metadata.Value(FieldVersionHistory)
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected %s to be a list, got %T", FieldVersionHistory, raw)
	}
	entries := make([]VersionEntry, 0, len(list))
	for i, item := range list {
		m, ok := item.(*Metadata)
		if !ok {
			return nil, fmt.Errorf("expected %s entry #%d to be a mapping, got %T", FieldVersionHistory, i, item)
		}
		entry, err := EntryFromMetadata(m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AppendHistory appends a version entry to the version_history field.
//
// Existing entries are carried over untouched.
func (d *Document) AppendHistory(entry VersionEntry) {
	list, _ := d.Metadata.Value(FieldVersionHistory).([]interface{})
	appended := make([]interface{}, len(list), len(list)+1)
	copy(appended, list)
	appended = append(appended, entry.ToMetadata())
	d.meta().Set(FieldVersionHistory, appended)
}
