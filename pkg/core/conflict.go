// Copyright © 2018 One Concern

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/merge"
	"github.com/oneconcern/docmon/pkg/metrics"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/oneconcern/docmon/pkg/storage"
	storagestatus "github.com/oneconcern/docmon/pkg/storage/status"
	"go.uber.org/zap"
)

// CheckForConflicts starts a three-way merge of two live documents.
//
// When baseVersion is empty, the common ancestor of both documents is resolved from their histories.
// An explicit base version refers to a version of the local document.
func (m *Manager) CheckForConflicts(ctx context.Context, local, remote model.Identity, baseVersion string) (*merge.Session, error) {
	localDoc, err := m.Load(ctx, local)
	if err != nil {
		return nil, err
	}
	remoteDoc, err := m.Load(ctx, remote)
	if err != nil {
		return nil, err
	}
	return m.checkDocuments(ctx, localDoc, remoteDoc, baseVersion)
}

func (m *Manager) checkDocuments(ctx context.Context, localDoc, remoteDoc *model.Document, baseVersion string) (*merge.Session, error) {
	ancestor := model.ParentRef{Identity: localDoc.Identity, Version: baseVersion}
	if baseVersion == "" {
		var err error
		ancestor, err = m.CommonAncestor(ctx,
			model.ParentRef{Identity: localDoc.Identity, Version: localDoc.Version()},
			model.ParentRef{Identity: remoteDoc.Identity, Version: remoteDoc.Version()},
		)
		if err != nil {
			return nil, err
		}
	}

	baseDoc, err := m.baseDocument(ctx, ancestor)
	if err != nil {
		return nil, err
	}

	session := merge.NewSession(baseDoc, localDoc, remoteDoc, merge.WithClock(m.now))
	conflicts := session.Conflicts()
	if m.MetricsEnabled() {
		m.m.Merges.Conflicted(len(conflicts.Metadata), "metadata")
		m.m.Merges.Conflicted(len(conflicts.Content), "content")
		for _, c := range conflicts.Content {
			m.m.Merges.ConflictLines(c.End - c.Start)
		}
	}
	m.l.Info("checked for conflicts",
		zap.Stringer("local", localDoc.Identity),
		zap.Stringer("remote", remoteDoc.Identity),
		zap.Stringer("base", ancestor),
		zap.String("session", session.ID()),
		zap.Int("metadata_conflicts", len(conflicts.Metadata)),
		zap.Int("content_conflicts", len(conflicts.Content)),
	)
	return session, nil
}

// AutoMergeDocuments merges two live documents and saves the result at output (defaults to local).
//
// It fails with a conflict error when conflicts exist: nothing is saved then.
func (m *Manager) AutoMergeDocuments(ctx context.Context, local, remote, output model.Identity, baseVersion string) (doc *model.Document, err error) {
	defer func(t0 time.Time) {
		m.usage(t0, "AutoMergeDocuments")(err)
		m.mergeOutcome(t0, err)
	}(time.Now())

	session, err := m.CheckForConflicts(ctx, local, remote, baseVersion)
	if err != nil {
		return nil, err
	}
	result, err := session.Finish()
	if err != nil {
		return nil, err
	}
	if output.IsZero() {
		output = local
	}
	return m.SaveMerged(ctx, result, output)
}

func (m *Manager) mergeOutcome(start time.Time, err error) {
	if !m.MetricsEnabled() {
		return
	}
	switch {
	case err == nil:
		m.m.Merges.Merged(start, metrics.OutcomeMerged)
	case errors.Is(err, status.ErrConflict):
		m.m.Merges.Merged(start, metrics.OutcomeConflicts)
	default:
		m.m.Merges.Merged(start, metrics.OutcomeFailed)
	}
}

// SaveMerged stores the result of a merge as a new version of output, which becomes the live document.
//
// The version is the one of the merge result, or its first free patch increment when output has it already.
// The stored sides of the merge are recorded as parents of the new version, next to the head of output.
// Only a fully resolved merge yields a result: a merge with remaining conflicts cannot be saved.
func (m *Manager) SaveMerged(ctx context.Context, result *merge.Result, output model.Identity) (*model.Document, error) {
	if result == nil {
		return nil, status.ErrConflict.WrapMessage("no resolved merge to save")
	}
	doc := result.Document()
	doc.Identity = output

	parents := make([]model.ParentRef, 0, 2)
	for _, p := range result.Parents() {
		has, err := m.stores.Snapshots().Has(ctx, p.Identity, p.Version)
		if err != nil {
			return nil, err
		}
		if has {
			parents = append(parents, p)
		}
	}
	description := fmt.Sprintf("Merge into %s", output)
	if len(parents) > 0 {
		description = fmt.Sprintf("Merge %s into %s", strings.Join(refStrings(parents), ", "), output)
	}

	entry, err := m.CreateVersion(ctx, doc,
		Version(m.freeVersion(ctx, output, result.Version())),
		Description(description),
		Parents(parents...),
	)
	if err != nil {
		return nil, err
	}
	m.l.Info("saved merged document", zap.Stringer("identity", output), zap.String("version", entry.Version))
	return doc, nil
}

// CreateConflictArtifact stores the textual artifact of a merge session at output, for manual resolution
func (m *Manager) CreateConflictArtifact(ctx context.Context, session *merge.Session, output model.Identity) error {
	if output.IsZero() {
		return status.ErrValidation.WrapMessage("conflict artifact requires an output identity")
	}
	text, err := session.Artifact()
	if err != nil {
		return err
	}
	if err = storage.PutBytes(ctx, m.stores.Documents(), output.String(), []byte(text), storage.OverWrite); err != nil {
		return err
	}
	m.l.Info("created conflict artifact",
		zap.Stringer("identity", output),
		zap.String("session", session.ID()),
		zap.Bool("conflicts", session.HasConflicts()),
	)
	return nil
}

// ResolveFromArtifact reads a hand-edited conflict artifact and saves the resolved document at output.
//
// It fails with a conflict error while the artifact still carries conflict markers.
func (m *Manager) ResolveFromArtifact(ctx context.Context, artifact, output model.Identity) (*model.Document, error) {
	buffer, err := storage.ReadAll(ctx, m.stores.Documents(), artifact.String())
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return nil, status.ErrNotFound.WrapMessage("conflict artifact %s", artifact)
		}
		return nil, err
	}
	if output.IsZero() {
		output = artifact
	}
	result, err := merge.ParseArtifact(output, string(buffer))
	if err != nil {
		return nil, err
	}
	return m.SaveMerged(ctx, result, output)
}
