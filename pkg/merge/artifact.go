// Copyright © 2018 One Concern

package merge

import (
	"strings"

	"github.com/oneconcern/docmon/pkg/codec"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
)

// Conflict markers
const (
	MarkerLocal     = "<<<<<<< LOCAL"
	MarkerSeparator = "======="
	MarkerRemote    = ">>>>>>> REMOTE"
)

// HasMarkers tells if text still holds conflict markers.
//
// Only the opening and closing markers are looked for: a separator line alone is ordinary text.
func HasMarkers(text string) bool {
	return strings.Contains(text, MarkerLocal) || strings.Contains(text, MarkerRemote)
}

func markerBlock(local, remote []string) []string {
	block := make([]string, 0, len(local)+len(remote)+3)
	block = append(block, MarkerLocal)
	block = append(block, local...)
	block = append(block, MarkerSeparator)
	block = append(block, remote...)
	return append(block, MarkerRemote)
}

func metadataMarker(mc MetadataConflict) string {
	return strings.Join(markerBlock(
		[]string{model.FormatValue(mc.Local)},
		[]string{model.FormatValue(mc.Remote)},
	), "\n")
}

// Artifact renders the merged document so far as a conflict artifact, for a human to resolve.
//
// Each unresolved metadata field holds a marker block with its local and remote values. Each unresolved
// content region is replaced by a marker block with the local and remote text. The system fields already
// carry the values of the merge result.
func (s *Session) Artifact() (string, error) {
	meta := s.metadata.Clone()
	for _, mc := range s.fields {
		meta.Set(mc.Field, metadataMarker(mc))
	}
	if err := stamp(meta, s.LocalVersion(), s.RemoteVersion(), s.opts.now()); err != nil {
		return "", err
	}
	content := s.content(func(p *pendingConflict) []string {
		return markerBlock(p.local, p.remote)
	})
	return codec.Render(meta, content)
}

// ParseArtifact reads a resolved conflict artifact.
//
// It fails with a conflict error while any conflict marker remains.
func ParseArtifact(identity model.Identity, text string) (*Result, error) {
	if HasMarkers(text) {
		return nil, status.ErrConflict.WrapMessage("conflict artifact still has unresolved conflicts")
	}
	doc, err := codec.ParseDocument(identity, text)
	if err != nil {
		return nil, err
	}
	return &Result{doc: doc}, nil
}
