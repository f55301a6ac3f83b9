// Copyright © 2018 One Concern

package merge

import (
	"sort"

	"github.com/oneconcern/docmon/pkg/diff"
	"github.com/oneconcern/docmon/pkg/model"
)

// Detect computes the conflicts between a local and a remote edit of base.
//
// A metadata field conflicts when both sides changed it from base to different values.
// System fields never conflict. Content edits conflict when their base line ranges overlap,
// or when both sides insert different lines at the same base position.
func Detect(base, local, remote *model.Document, opts ...Option) *ConflictSet {
	o := defaultOptions(opts)
	lines := splitDocuments(base, local, remote)
	localOps := diff.EditScript(lines.base, lines.local)
	remoteOps := diff.EditScript(lines.base, lines.remote)

	set := &ConflictSet{
		Metadata: detectMetadata(base.Metadata, local.Metadata, remote.Metadata),
		Content:  make([]ContentConflict, 0),
	}
	if o.pairwise {
		set.Content = pairwiseConflicts(lines.base, localOps, remoteOps)
		return set
	}
	for _, r := range coalesce(localOps, remoteOps) {
		set.Content = append(set.Content, r.conflict(lines.base))
	}
	return set
}

// fieldsOf yields the union of the fields of several metadata maps, in order of appearance
func fieldsOf(maps ...*model.Metadata) []string {
	seen := make(map[string]struct{})
	fields := make([]string, 0)
	for _, m := range maps {
		for _, k := range m.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			fields = append(fields, k)
		}
	}
	return fields
}

func detectMetadata(base, local, remote *model.Metadata) []MetadataConflict {
	conflicts := make([]MetadataConflict, 0)
	for _, field := range fieldsOf(local, remote) {
		if model.IsSystemField(field) {
			continue
		}
		b, l, r := base.Value(field), local.Value(field), remote.Value(field)
		if !model.Equal(l, b) && !model.Equal(r, b) && !model.Equal(l, r) {
			conflicts = append(conflicts, MetadataConflict{Field: field, Base: b, Local: l, Remote: r})
		}
	}
	return conflicts
}

func pairwiseConflicts(base []string, local, remote []diff.Op) []ContentConflict {
	conflicts := make([]ContentConflict, 0)
	for _, l := range local {
		for _, r := range remote {
			if !collide(l, r) {
				continue
			}
			start, end := minInt(l.I1, r.I1), maxInt(l.I2, r.I2)
			conflicts = append(conflicts, ContentConflict{
				Start:  start,
				End:    end,
				Base:   join(base[start:end]),
				Local:  join(l.Lines),
				Remote: join(r.Lines),
			})
		}
	}
	return conflicts
}

// coalesce groups transitively overlapping local and remote operations into disjoint regions.
//
// Zero-width insertions strictly inside a region belong to that region. Insertions at the
// boundaries of a region remain outside, unless the region is itself a pair of divergent insertions.
func coalesce(local, remote []diff.Op) []region {
	n := len(local)
	parent := make([]int, n+len(remote))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	linked := make([]bool, len(parent))
	for i, l := range local {
		for j, r := range remote {
			if collide(l, r) {
				parent[find(i)] = find(n + j)
				linked[i], linked[n+j] = true, true
			}
		}
	}

	opAt := func(idx int) diff.Op {
		if idx < n {
			return local[idx]
		}
		return remote[idx-n]
	}

	spans := make(map[int]*region)
	for idx := range parent {
		if !linked[idx] {
			continue
		}
		op, root := opAt(idx), find(idx)
		r, ok := spans[root]
		if !ok {
			spans[root] = &region{start: op.I1, end: op.I2}
			continue
		}
		r.start, r.end = minInt(r.start, op.I1), maxInt(r.end, op.I2)
	}

	regions := make([]region, 0, len(spans))
	for _, r := range spans {
		regions = append(regions, *r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].start < regions[j].start })

	for i := range regions {
		r := &regions[i]
		for _, op := range local {
			if r.owns(op) {
				r.local = append(r.local, op)
			}
		}
		for _, op := range remote {
			if r.owns(op) {
				r.remote = append(r.remote, op)
			}
		}
	}
	return regions
}

// collide tells if a local and a remote operation cannot both be applied
func collide(l, r diff.Op) bool {
	if l.Overlaps(r) {
		return true
	}
	return l.I1 == l.I2 && r.I1 == r.I2 && l.I1 == r.I1 && !equalLines(l.Lines, r.Lines)
}

// owns tells if an operation belongs to the region
func (r region) owns(op diff.Op) bool {
	if op.I1 == op.I2 {
		return r.contains(op.I1) || (r.start == r.end && op.I1 == r.start)
	}
	return diff.Overlap(op.I1, op.I2, r.start, r.end)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
