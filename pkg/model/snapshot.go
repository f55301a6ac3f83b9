// Copyright © 2018 One Concern

package model

// Snapshot is an immutable stored copy of a document's metadata and content at a tagged version
type Snapshot struct {
	Entry    VersionEntry `json:"entry" yaml:"entry"`
	Metadata *Metadata    `json:"metadata" yaml:"metadata"`
	Content  string       `json:"content" yaml:"content"`
	_        struct{}
}

// NewSnapshot captures the current state of a document
func NewSnapshot(entry VersionEntry, doc *Document) *Snapshot {
	return &Snapshot{
		Entry:    entry,
		Metadata: doc.Metadata.Clone(),
		Content:  doc.Content,
	}
}

// Document materializes the snapshot as a document bound to identity
func (s *Snapshot) Document(identity Identity) *Document {
	return NewDocument(identity, s.Metadata.Clone(), s.Content)
}

// Clone performs a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Metadata = s.Metadata.Clone()
	if s.Entry.Parents != nil {
		c.Entry.Parents = append([]ParentRef(nil), s.Entry.Parents...)
	}
	return &c
}
