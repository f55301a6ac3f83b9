// Copyright © 2018 One Concern

package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/merge"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/semver"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/oneconcern/docmon/pkg/storage"
	storagestatus "github.com/oneconcern/docmon/pkg/storage/status"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

// CreateBranch materializes an independent document seeded from a version of source.
//
// The version defaults to the latest one. The branch document lives at model.BranchIdentity(source, name),
// and starts with a version equal to the base version, recorded with the source version as parent.
func (m *Manager) CreateBranch(ctx context.Context, source model.Identity, name, baseVersion string) (desc model.BranchDescriptor, doc *model.Document, err error) {
	defer func(t0 time.Time) {
		m.usage(t0, "CreateBranch")(err)
	}(time.Now())

	if err = model.ValidateBranchName(name); err != nil {
		return model.BranchDescriptor{}, nil, status.ErrValidation.Wrap(err)
	}
	if baseVersion == "" {
		if baseVersion, err = m.latestVersion(ctx, source); err != nil {
			return model.BranchDescriptor{}, nil, err
		}
	}
	base, err := m.GetSnapshot(ctx, source, baseVersion)
	if err != nil {
		return model.BranchDescriptor{}, nil, err
	}

	identity := model.BranchIdentity(source, name)
	exists, err := m.stores.Documents().Has(ctx, identity.String())
	if err != nil {
		return model.BranchDescriptor{}, nil, err
	}
	if exists {
		return model.BranchDescriptor{}, nil, status.ErrValidation.WrapMessage("branch %s of %s: document %s exists already", name, source, identity)
	}

	now := m.now()
	entry := model.VersionEntry{
		Version:     baseVersion,
		Timestamp:   now.UTC(),
		Author:      m.author,
		Description: fmt.Sprintf("Branch %s from %s", name, model.ParentRef{Identity: source, Version: baseVersion}),
		Snapshot:    ksuid.New().String(),
		Parents:     []model.ParentRef{{Identity: source, Version: baseVersion}},
	}
	doc = base.Document(identity)
	doc.AppendHistory(entry)

	desc = model.BranchDescriptor{
		Name:        name,
		Source:      source,
		Identity:    identity,
		BaseVersion: baseVersion,
		Created:     now.UTC(),
	}
	if err = m.writeMetadata(ctx, model.GetArchivePathToBranch(source, name), storage.NoOverWrite, desc); err != nil {
		if errors.Is(err, storagestatus.ErrExists) {
			return model.BranchDescriptor{}, nil, status.ErrValidation.WrapMessage("branch %s of %s exists already", name, source)
		}
		return model.BranchDescriptor{}, nil, err
	}

	if _, err = m.stores.Snapshots().Put(ctx, identity, model.NewSnapshot(entry, doc)); err != nil {
		return model.BranchDescriptor{}, nil, err
	}
	if err = m.save(ctx, doc, storage.NoOverWrite); err != nil {
		return model.BranchDescriptor{}, nil, err
	}
	if err = m.writeHead(ctx, model.HeadDescriptor{Identity: identity, Version: baseVersion, Updated: now.UTC()}); err != nil {
		return model.BranchDescriptor{}, nil, err
	}

	m.l.Info("created branch",
		zap.Stringer("source", source),
		zap.String("branch", name),
		zap.Stringer("identity", identity),
		zap.String("base_version", baseVersion),
	)
	return desc, doc, nil
}

// latestVersion yields the head version of a document, or else its last stored version
func (m *Manager) latestVersion(ctx context.Context, identity model.Identity) (string, error) {
	head, found, err := m.readHead(ctx, identity)
	if err != nil {
		return "", err
	}
	if found {
		return head.Version, nil
	}
	entries, err := m.ListVersions(ctx, identity)
	if err != nil {
		return "", err
	}
	last, ok := entries.Last()
	if !ok {
		return "", status.ErrNotFound.WrapMessage("document %s has no version", identity)
	}
	return last.Version, nil
}

// GetBranch retrieves the descriptor of a branch
func (m *Manager) GetBranch(ctx context.Context, source model.Identity, name string) (model.BranchDescriptor, error) {
	var desc model.BranchDescriptor
	found, err := m.readMetadata(ctx, model.GetArchivePathToBranch(source, name), &desc)
	if err != nil {
		return model.BranchDescriptor{}, err
	}
	if !found {
		return model.BranchDescriptor{}, status.ErrNotFound.WrapMessage("branch %s of %s", name, source)
	}
	return desc, nil
}

// ListBranches yields the branches of a document, sorted by name
func (m *Manager) ListBranches(ctx context.Context, source model.Identity) ([]model.BranchDescriptor, error) {
	keys, err := storage.AllKeysPrefix(ctx, m.MetaStore(), model.GetArchivePathPrefixToBranches(source), "")
	if err != nil {
		return nil, err
	}
	branches := make([]model.BranchDescriptor, 0, len(keys))
	for _, key := range keys {
		apc, err := model.GetArchivePathComponents(key)
		if err != nil || apc.Identity != source || apc.BranchName == "" {
			// branches of nested identities share the prefix
			continue
		}
		desc, err := m.GetBranch(ctx, source, apc.BranchName)
		if err != nil {
			return nil, err
		}
		branches = append(branches, desc)
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

// findBranch looks up the descriptor of the branch living at identity, among the branches of target
func (m *Manager) findBranch(ctx context.Context, target, identity model.Identity) (model.BranchDescriptor, bool, error) {
	branches, err := m.ListBranches(ctx, target)
	if err != nil {
		return model.BranchDescriptor{}, false, err
	}
	for _, b := range branches {
		if b.Identity == identity {
			return b, true, nil
		}
	}
	return model.BranchDescriptor{}, false, nil
}

// MergeBranch merges the live branch document into the live target document, and stores the result
// as a new version of target, with both heads as parents.
//
// The branch is the remote side, the target the local side. The common ancestor is resolved from the
// version graph, or else from the base version of the branch, or else from version numbers.
// With backup, the current state of the target is stored as a new version before merging.
//
// It fails with a conflict error when the documents conflict: nothing is changed then.
func (m *Manager) MergeBranch(ctx context.Context, branch, target model.Identity, backup bool) (entry model.VersionEntry, err error) {
	defer func(t0 time.Time) {
		m.usage(t0, "MergeBranch")(err)
		m.mergeOutcome(t0, err)
	}(time.Now())

	localDoc, err := m.Load(ctx, target)
	if err != nil {
		return model.VersionEntry{}, err
	}
	remoteDoc, err := m.Load(ctx, branch)
	if err != nil {
		return model.VersionEntry{}, err
	}
	desc, isBranch, err := m.findBranch(ctx, target, branch)
	if err != nil {
		return model.VersionEntry{}, err
	}

	ancestor, err := m.branchAncestor(ctx, localDoc, remoteDoc, desc, isBranch)
	if err != nil {
		return model.VersionEntry{}, err
	}
	baseDoc, err := m.baseDocument(ctx, ancestor)
	if err != nil {
		return model.VersionEntry{}, err
	}

	if conflicts := merge.Detect(baseDoc, localDoc, remoteDoc); conflicts.HasConflicts() {
		if m.MetricsEnabled() {
			m.m.Merges.Conflicted(len(conflicts.Metadata), "metadata")
			m.m.Merges.Conflicted(len(conflicts.Content), "content")
		}
		return model.VersionEntry{}, status.ErrConflict.WrapMessage("cannot merge branch %s into %s: found %d metadata conflicts and %d content conflicts",
			branch, target, len(conflicts.Metadata), len(conflicts.Content))
	}

	if backup {
		if _, err = m.CreateVersion(ctx, localDoc, Description(fmt.Sprintf("Backup before merge of %s", branch))); err != nil {
			return model.VersionEntry{}, err
		}
	}

	result, err := merge.AutoMerge(baseDoc, localDoc, remoteDoc, merge.WithClock(m.now))
	if err != nil {
		return model.VersionEntry{}, err
	}
	merged := result.Document()
	merged.Identity = target

	// the merged version derives from the previous version of the merge result
	localRef := model.ParentRef{Identity: target, Version: localDoc.Version()}
	remoteRef := model.ParentRef{Identity: branch, Version: remoteDoc.Version()}
	entry, err = m.CreateVersion(ctx, merged,
		Version(m.freeVersion(ctx, target, result.Version())),
		Author(m.author),
		Description(fmt.Sprintf("Merge %s into %s", remoteRef, target)),
		Parents(localRef, remoteRef),
	)
	if err != nil {
		return model.VersionEntry{}, err
	}

	if isBranch {
		desc.MergedInto = target
		desc.MergedAt = m.now().UTC()
		desc.MergedVersion = entry.Version
		if err = m.writeMetadata(ctx, model.GetArchivePathToBranch(target, desc.Name), storage.OverWrite, desc); err != nil {
			return model.VersionEntry{}, err
		}
	}

	m.l.Info("merged branch",
		zap.Stringer("branch", branch),
		zap.Stringer("target", target),
		zap.Stringer("base", ancestor),
		zap.String("version", entry.Version),
	)
	return entry, nil
}

func (m *Manager) branchAncestor(ctx context.Context, localDoc, remoteDoc *model.Document, desc model.BranchDescriptor, isBranch bool) (model.ParentRef, error) {
	local := model.ParentRef{Identity: localDoc.Identity, Version: localDoc.Version()}
	remote := model.ParentRef{Identity: remoteDoc.Identity, Version: remoteDoc.Version()}

	if !m.linear {
		g, err := m.VersionGraph(ctx, local.Identity, remote.Identity)
		if err != nil {
			return model.ParentRef{}, err
		}
		if lca, ok := g.CommonAncestor(local, remote); ok && g.Has(local) && g.Has(remote) {
			return lca, nil
		}
	}
	if isBranch {
		return model.ParentRef{Identity: desc.Source, Version: desc.BaseVersion}, nil
	}
	return m.CommonAncestor(ctx, local, remote)
}

// freeVersion yields version, or its first free patch increment when it is already stored
func (m *Manager) freeVersion(ctx context.Context, identity model.Identity, version string) string {
	probe := model.NewDocument(identity, model.NewMetadata().Set(model.FieldVersion, version), "")
	has, err := m.stores.Snapshots().Has(ctx, identity, version)
	if err != nil || !has {
		return version
	}
	free, err := m.nextVersion(ctx, probe, versionSettings{kind: semver.Patch})
	if err != nil {
		return version
	}
	return free
}
