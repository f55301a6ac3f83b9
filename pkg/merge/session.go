// Copyright © 2018 One Concern

package merge

import (
	"fmt"

	"github.com/oneconcern/docmon/pkg/diff"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/segmentio/ksuid"
)

// State of a resolution session
type State uint8

// Session states
const (
	// Detected means conflicts were found and none has been resolved yet
	Detected State = iota + 1
	// PartiallyResolved means some conflicts remain after at least one resolution
	PartiallyResolved
	// Resolved means no conflict remains: the session may be finished
	Resolved
)

func (s State) String() string {
	switch s {
	case Detected:
		return "detected"
	case PartiallyResolved:
		return "partially-resolved"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// segment is a run of merged lines, or an unresolved content conflict
type segment struct {
	lines    []string
	conflict *pendingConflict
}

type pendingConflict struct {
	ContentConflict
	base, local, remote []string
}

// Session tracks the resolution of the conflicts between a local and a remote edit.
//
// The merged document starts with every non-conflicting change from both sides. Each resolution
// splices the chosen alternative into it. Conflicting metadata fields hold their local value
// until resolved. Content conflicts are always coalesced into disjoint regions.
//
// A Session is not safe for concurrent use.
type Session struct {
	id       string
	base     *model.Document
	local    *model.Document
	remote   *model.Document
	metadata *model.Metadata
	fields   []MetadataConflict
	segments []*segment
	pending  []*pendingConflict
	resolved int
	newline  bool
	opts     options
}

// NewSession detects the conflicts between local and remote, relative to base, and starts their resolution
func NewSession(base, local, remote *model.Document, opts ...Option) *Session {
	o := defaultOptions(opts)
	lines := splitDocuments(base, local, remote)
	localOps := diff.EditScript(lines.base, lines.local)
	remoteOps := diff.EditScript(lines.base, lines.remote)
	regions := coalesce(localOps, remoteOps)
	fields := detectMetadata(base.Metadata, local.Metadata, remote.Metadata)

	s := &Session{
		id:       ksuid.New().String(),
		base:     base,
		local:    local,
		remote:   remote,
		metadata: mergeMetadata(base.Metadata, local.Metadata, remote.Metadata, fields),
		fields:   fields,
		newline:  trailingNewline(base, local, remote),
		opts:     o,
	}
	s.build(lines.base, acceptedEdits(localOps, remoteOps, regions), regions)
	return s
}

// build lays out the merged content as a sequence of segments over base
func (s *Session) build(base []string, edits []edit, regions []region) {
	pos := 0
	emit := func(lines []string) {
		if len(lines) > 0 {
			s.segments = append(s.segments, &segment{lines: lines})
		}
	}
	i, j := 0, 0
	for i < len(edits) || j < len(regions) {
		if j >= len(regions) || (i < len(edits) && edits[i].start <= regions[j].start) {
			e := edits[i]
			emit(base[pos:e.start])
			emit(e.lines)
			pos = e.end
			i++
			continue
		}
		r := regions[j]
		emit(base[pos:r.start])
		p := &pendingConflict{
			ContentConflict: r.conflict(base),
			base:            base[r.start:r.end],
			local:           r.side(base, r.local),
			remote:          r.side(base, r.remote),
		}
		s.pending = append(s.pending, p)
		s.segments = append(s.segments, &segment{conflict: p})
		pos = r.end
		j++
	}
	emit(base[pos:])
}

// ID uniquely identifies this session
func (s *Session) ID() string {
	return s.id
}

// State of the session
func (s *Session) State() State {
	switch {
	case !s.HasConflicts():
		return Resolved
	case s.resolved > 0:
		return PartiallyResolved
	default:
		return Detected
	}
}

// HasConflicts tells if some conflict remains unresolved
func (s *Session) HasConflicts() bool {
	return len(s.fields) > 0 || len(s.pending) > 0
}

// BaseVersion is the version of the common ancestor
func (s *Session) BaseVersion() string { return s.base.Version() }

// LocalVersion is the version of the local document
func (s *Session) LocalVersion() string { return s.local.Version() }

// RemoteVersion is the version of the remote document
func (s *Session) RemoteVersion() string { return s.remote.Version() }

// Local document of the merge
func (s *Session) Local() *model.Document { return s.local }

// Conflicts yields the remaining conflicts.
//
// Content conflicts are listed in base order: the index of a content conflict is its position in this list.
func (s *Session) Conflicts() *ConflictSet {
	set := &ConflictSet{
		Metadata: append(make([]MetadataConflict, 0, len(s.fields)), s.fields...),
		Content:  make([]ContentConflict, 0, len(s.pending)),
	}
	for _, p := range s.pending {
		set.Content = append(set.Content, p.ContentConflict)
	}
	return set
}

// ResolveMetadata resolves the conflict on a metadata field.
//
// Choosing an absent value removes the field from the merged document.
func (s *Session) ResolveMetadata(field string, choice Choice) error {
	idx := -1
	for i, mc := range s.fields {
		if mc.Field == field {
			idx = i
			break
		}
	}
	if idx < 0 {
		return status.ErrNotFound.WrapMessage("no conflict recorded for metadata field %q", field)
	}
	mc := s.fields[idx]
	value := choice.pick(mc.Base, mc.Local, mc.Remote)
	if value == nil {
		s.metadata.Delete(field)
	} else {
		s.metadata.Set(field, value)
	}
	s.fields = append(s.fields[:idx], s.fields[idx+1:]...)
	s.resolved++
	return nil
}

// ResolveContent resolves the content conflict at index in the list of remaining content conflicts.
//
// Resolving a conflict shifts the index of the following ones down by one.
func (s *Session) ResolveContent(index int, choice Choice) error {
	if index < 0 || index >= len(s.pending) {
		return status.ErrValidation.WrapMessage("invalid content conflict index %d: %d conflicts remain", index, len(s.pending))
	}
	p := s.pending[index]

	var lines []string
	switch choice.kind {
	case ChooseBase:
		lines = p.base
	case ChooseLocal:
		lines = p.local
	case ChooseRemote:
		lines = p.remote
	default:
		text, ok := choice.value.(string)
		if !ok {
			return status.ErrValidation.WrapMessage("content conflicts are resolved with text, got %T", choice.value)
		}
		lines = diff.SplitLines(text)
	}

	for _, seg := range s.segments {
		if seg.conflict == p {
			seg.conflict = nil
			seg.lines = append([]string(nil), lines...)
			break
		}
	}
	s.pending = append(s.pending[:index], s.pending[index+1:]...)
	s.resolved++
	return nil
}

// Merged yields the merged document so far.
//
// Unresolved content regions show the local text and unresolved metadata fields their local value.
func (s *Session) Merged() *model.Document {
	return model.NewDocument(s.local.Identity, s.metadata.Clone(), s.content(func(p *pendingConflict) []string {
		return p.local
	}))
}

func (s *Session) content(unresolved func(*pendingConflict) []string) string {
	lines := make([]string, 0)
	for _, seg := range s.segments {
		if seg.conflict != nil {
			lines = append(lines, unresolved(seg.conflict)...)
			continue
		}
		lines = append(lines, seg.lines...)
	}
	return diff.JoinLines(lines, s.newline)
}

// Finish completes a resolved session.
//
// The merged document gets a fresh updated_at field and the version of the merge result.
// Finish fails with a conflict error while some conflict remains.
func (s *Session) Finish() (*Result, error) {
	if s.State() != Resolved {
		return nil, status.ErrConflict.WrapMessage("cannot finish merge in state %s: %d metadata and %d content conflicts remain",
			s.State(), len(s.fields), len(s.pending))
	}
	doc := s.Merged()
	if err := stamp(doc.Metadata, s.LocalVersion(), s.RemoteVersion(), s.opts.now()); err != nil {
		return nil, err
	}
	parents := make([]model.ParentRef, 0, 2)
	for _, side := range []*model.Document{s.local, s.remote} {
		if !side.Identity.IsZero() && side.HasVersion() {
			parents = append(parents, model.ParentRef{Identity: side.Identity, Version: side.Version()})
		}
	}
	return &Result{
		doc:           doc,
		parents:       parents,
		BaseVersion:   s.BaseVersion(),
		LocalVersion:  s.LocalVersion(),
		RemoteVersion: s.RemoteVersion(),
	}, nil
}

// AutoMerge merges local and remote edits of base, when they do not conflict.
//
// Every change from both sides is carried over. It fails with a conflict error when any conflict exists.
func AutoMerge(base, local, remote *model.Document, opts ...Option) (*Result, error) {
	s := NewSession(base, local, remote, opts...)
	if s.HasConflicts() {
		return nil, status.ErrConflict.WrapMessage("cannot auto-merge document: found %d metadata conflicts and %d content conflicts",
			len(s.fields), len(s.pending))
	}
	return s.Finish()
}
