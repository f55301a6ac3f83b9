// Copyright © 2018 One Concern

package merge

import (
	"github.com/oneconcern/docmon/pkg/diff"
	"github.com/oneconcern/docmon/pkg/model"
)

// MetadataConflict records a metadata field changed differently on both sides
type MetadataConflict struct {
	Field  string      `json:"field" yaml:"field"`
	Base   interface{} `json:"base" yaml:"base"`
	Local  interface{} `json:"local" yaml:"local"`
	Remote interface{} `json:"remote" yaml:"remote"`
}

// ContentConflict records overlapping local and remote edits.
//
// The region [Start, End) is expressed in base line coordinates.
type ContentConflict struct {
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Base   string `json:"base" yaml:"base"`
	Local  string `json:"local" yaml:"local"`
	Remote string `json:"remote" yaml:"remote"`
}

// ConflictSet holds all conflicts between a local and a remote edit of a document
type ConflictSet struct {
	Metadata []MetadataConflict `json:"metadata_conflicts" yaml:"metadata_conflicts"`
	Content  []ContentConflict  `json:"content_conflicts" yaml:"content_conflicts"`
}

// HasConflicts tells if any conflict remains
func (c *ConflictSet) HasConflicts() bool {
	return len(c.Metadata) > 0 || len(c.Content) > 0
}

// Field yields the conflict recorded for a metadata field
func (c *ConflictSet) Field(field string) (MetadataConflict, bool) {
	for _, mc := range c.Metadata {
		if mc.Field == field {
			return mc, true
		}
	}
	return MetadataConflict{}, false
}

// Fields yields the names of conflicting metadata fields
func (c *ConflictSet) Fields() []string {
	fields := make([]string, 0, len(c.Metadata))
	for _, mc := range c.Metadata {
		fields = append(fields, mc.Field)
	}
	return fields
}

// region is a cluster of transitively overlapping local and remote operations
type region struct {
	start, end int
	local      []diff.Op
	remote     []diff.Op
}

// contains tells if a zero-width insertion at pos lies strictly inside the region
func (r region) contains(pos int) bool {
	return r.start < pos && pos < r.end
}

// side applies the operations of one side to the base lines covered by the region
func (r region) side(base []string, ops []diff.Op) []string {
	lines := make([]string, r.end-r.start)
	copy(lines, base[r.start:r.end])
	shifted := make([]diff.Op, len(ops))
	for i, op := range ops {
		op.I1 -= r.start
		op.I2 -= r.start
		shifted[i] = op
	}
	return diff.Apply(lines, shifted)
}

func (r region) conflict(base []string) ContentConflict {
	return ContentConflict{
		Start:  r.start,
		End:    r.end,
		Base:   join(base[r.start:r.end]),
		Local:  join(r.side(base, r.local)),
		Remote: join(r.side(base, r.remote)),
	}
}

// documentLines holds the lines of the three documents of a merge
type documentLines struct {
	base, local, remote []string
}

func splitDocuments(base, local, remote *model.Document) documentLines {
	return documentLines{
		base:   diff.SplitLines(base.Content),
		local:  diff.SplitLines(local.Content),
		remote: diff.SplitLines(remote.Content),
	}
}

func join(lines []string) string {
	return diff.JoinLines(lines, false)
}
