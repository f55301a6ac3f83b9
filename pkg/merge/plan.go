// Copyright © 2018 One Concern

package merge

import (
	"sort"

	"github.com/oneconcern/docmon/pkg/diff"
	"github.com/oneconcern/docmon/pkg/model"
)

// edit is an accepted operation, in base coordinates
type edit struct {
	start, end int
	lines      []string
	local      bool
}

// acceptedEdits yields all operations from both sides which do not belong to a conflict region,
// sorted by base position. Local edits come first at equal positions.
//
// A zero-width insertion falling strictly inside an edit of the other side is moved after that edit.
// Identical insertions made by both sides at the same position are kept once.
func acceptedEdits(local, remote []diff.Op, regions []region) []edit {
	edits := make([]edit, 0, len(local)+len(remote))
	collect := func(ops, others []diff.Op, isLocal bool) {
	NEXT:
		for _, op := range ops {
			for _, r := range regions {
				if r.owns(op) {
					continue NEXT
				}
			}
			e := edit{start: op.I1, end: op.I2, lines: op.Lines, local: isLocal}
			if op.I1 == op.I2 {
				for _, other := range others {
					if other.I1 < op.I1 && op.I1 < other.I2 {
						e.start, e.end = other.I2, other.I2
						break
					}
				}
			}
			edits = append(edits, e)
		}
	}
	collect(local, remote, true)
	collect(remote, local, false)

	deduped := make([]edit, 0, len(edits))
NEXT:
	for _, e := range edits {
		if !e.local && e.start == e.end {
			for _, l := range edits {
				if l.local && l.start == l.end && l.start == e.start && equalLines(l.lines, e.lines) {
					continue NEXT
				}
			}
		}
		deduped = append(deduped, e)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end < b.end
		}
		return a.local && !b.local
	})
	return deduped
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mergeMetadata starts from the local metadata and adopts every field changed remotely but not locally.
//
// Conflicting fields keep their local value. System fields are left untouched.
func mergeMetadata(base, local, remote *model.Metadata, conflicts []MetadataConflict) *model.Metadata {
	merged := local.Clone()
	for _, field := range fieldsOf(base, local, remote) {
		if model.IsSystemField(field) {
			continue
		}
		if _, isConflict := (&ConflictSet{Metadata: conflicts}).Field(field); isConflict {
			continue
		}
		b, l := base.Value(field), local.Value(field)
		r, inRemote := remote.Get(field)
		if !model.Equal(l, b) || model.Equal(r, b) {
			continue
		}
		if inRemote && r != nil {
			merged.Set(field, r)
		} else {
			merged.Delete(field)
		}
	}
	return merged
}

// trailingNewline decides if merged content ends with a line terminator
func trailingNewline(base, local, remote *model.Document) bool {
	for _, doc := range []*model.Document{local, remote, base} {
		if doc.Content != "" {
			return diff.HasTrailingNewline(doc.Content)
		}
	}
	return false
}
