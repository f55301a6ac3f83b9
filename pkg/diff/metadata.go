// Copyright © 2018 One Concern

package diff

import (
	"github.com/oneconcern/docmon/pkg/model"
)

// ChangeKind qualifies a metadata field change
type ChangeKind string

// Metadata field changes
const (
	Added   ChangeKind = "added"
	Removed ChangeKind = "removed"
	Changed ChangeKind = "changed"
)

// FieldChange describes the change of one metadata field
type FieldChange struct {
	Field string      `json:"field" yaml:"field"`
	Kind  ChangeKind  `json:"kind" yaml:"kind"`
	Old   interface{} `json:"old,omitempty" yaml:"old,omitempty"`
	New   interface{} `json:"new,omitempty" yaml:"new,omitempty"`
}

// Metadata compares two metadata maps field by field.
//
// Changes are reported in the order of the fields of a, followed by fields only present in b.
func Metadata(a, b *model.Metadata) []FieldChange {
	changes := make([]FieldChange, 0)
	for _, k := range a.Keys() {
		oldValue := a.Value(k)
		newValue, ok := b.Get(k)
		switch {
		case !ok:
			changes = append(changes, FieldChange{Field: k, Kind: Removed, Old: oldValue})
		case !model.Equal(oldValue, newValue):
			changes = append(changes, FieldChange{Field: k, Kind: Changed, Old: oldValue, New: newValue})
		}
	}
	for _, k := range b.Keys() {
		if !a.Has(k) {
			changes = append(changes, FieldChange{Field: k, Kind: Added, New: b.Value(k)})
		}
	}
	return changes
}

// Comparison is the structural difference between two versions of a document
type Comparison struct {
	From     string        `json:"from" yaml:"from"`
	To       string        `json:"to" yaml:"to"`
	Metadata []FieldChange `json:"metadata" yaml:"metadata"`
	Content  []Op          `json:"content" yaml:"content"`
}

// IsEmpty tells if both versions are identical
func (c Comparison) IsEmpty() bool {
	return len(c.Metadata) == 0 && len(c.Content) == 0
}

// Compare two documents, labeled with their versions
func Compare(fromVersion string, from *model.Document, toVersion string, to *model.Document) Comparison {
	return Comparison{
		From:     fromVersion,
		To:       toVersion,
		Metadata: Metadata(from.Metadata, to.Metadata),
		Content:  EditScript(SplitLines(from.Content), SplitLines(to.Content)),
	}
}
