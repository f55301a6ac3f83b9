// Copyright © 2018 One Concern

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/oneconcern/docmon/pkg/diff"
	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/semver"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/oneconcern/docmon/pkg/storage"
	storagestatus "github.com/oneconcern/docmon/pkg/storage/status"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

// maxVersionProbes bounds the search for a free version when an increment lands on an existing one
const maxVersionProbes = 1000

// CreateVersion tags the current state of a document as a new version.
//
// Unless an explicit version is given, the version is the increment of the current one (patch by default).
// When that version exists already (e.g. after a rollback), the increment is repeated until a free version is found.
//
// The document gets its version, updated_at and version_history fields updated, is saved as the live document,
// and a snapshot is stored. The previous head of the document is recorded as parent of the new version.
//
// The live document is saved before the snapshot: when storing the snapshot fails, the live document is
// restored to its previous state. The head moves last, so a failure to write it leaves the stored version
// in place, to be picked up as the parent of the next version of the live document.
func (m *Manager) CreateVersion(ctx context.Context, doc *model.Document, opts ...VersionOption) (entry model.VersionEntry, err error) {
	defer func(t0 time.Time) {
		m.usage(t0, "CreateVersion")(err)
	}(time.Now())

	if doc == nil || doc.Identity.IsZero() {
		return model.VersionEntry{}, status.ErrValidation.WrapMessage("document must have an identity to be versioned")
	}
	settings := versionSettings{kind: semver.Patch}
	for _, apply := range opts {
		apply(&settings)
	}
	identity := doc.Identity

	version, err := m.nextVersion(ctx, doc, settings)
	if err != nil {
		return model.VersionEntry{}, err
	}

	parents, err := m.headParents(ctx, doc)
	if err != nil {
		return model.VersionEntry{}, err
	}
	for _, p := range settings.parents {
		if !containsRef(parents, p) && p != (model.ParentRef{Identity: identity, Version: version}) {
			parents = append(parents, p)
		}
	}

	author := settings.author
	if author == "" {
		author = doc.Author()
	}
	if author == "" {
		author = m.author
	}

	now := m.now()
	entry = model.VersionEntry{
		Version:     version,
		Timestamp:   now.UTC(),
		Author:      author,
		Description: settings.description,
		Snapshot:    ksuid.New().String(),
		Parents:     parents,
	}

	next := doc.Clone()
	if err = next.SetVersion(version); err != nil {
		return model.VersionEntry{}, err
	}
	next.Touch(now)
	next.AppendHistory(entry)

	previous, err := m.liveText(ctx, identity)
	if err != nil {
		return model.VersionEntry{}, err
	}
	if err = m.Save(ctx, next); err != nil {
		return model.VersionEntry{}, err
	}
	stored, err := m.stores.Snapshots().Put(ctx, identity, model.NewSnapshot(entry, next))
	if err != nil {
		m.restoreLive(ctx, identity, previous)
		return model.VersionEntry{}, err
	}
	if err = m.writeHead(ctx, model.HeadDescriptor{Identity: identity, Version: version, Updated: now.UTC()}); err != nil {
		return model.VersionEntry{}, err
	}

	doc.Metadata = next.Metadata
	if m.MetricsEnabled() {
		m.m.Volume.Versions.Inc("create")
		m.m.Volume.Versions.Size(int64(len(next.Content)), "create")
	}
	m.l.Info("created version",
		zap.Stringer("identity", identity),
		zap.String("version", version),
		zap.Strings("parents", refStrings(parents)),
		zap.Uint64("sequence", stored.Sequence),
	)
	return stored, nil
}

// liveText yields the stored text of a live document, or nil when it does not exist
func (m *Manager) liveText(ctx context.Context, identity model.Identity) ([]byte, error) {
	buffer, err := storage.ReadAll(ctx, m.stores.Documents(), identity.String())
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return nil, nil
		}
		return nil, err
	}
	return buffer, nil
}

// restoreLive puts back the text of a live document, as read by liveText
func (m *Manager) restoreLive(ctx context.Context, identity model.Identity, text []byte) {
	var err error
	if text == nil {
		err = m.stores.Documents().Delete(ctx, identity.String())
	} else {
		err = storage.PutBytes(ctx, m.stores.Documents(), identity.String(), text, storage.OverWrite)
	}
	if err != nil {
		m.l.Warn("could not restore live document", zap.Stringer("identity", identity), zap.Error(err))
	}
}

func (m *Manager) nextVersion(ctx context.Context, doc *model.Document, settings versionSettings) (string, error) {
	if settings.version != "" {
		if !semver.IsValid(settings.version) {
			return "", status.ErrValidation.WrapMessage("invalid version %q", settings.version)
		}
		return settings.version, nil
	}
	if !settings.kind.IsValid() {
		return "", status.ErrValidation.WrapMessage("invalid version increment %q", settings.kind)
	}

	version := doc.Version()
	for i := 0; i < maxVersionProbes; i++ {
		next, err := semver.Next(version, settings.kind)
		if err != nil {
			return "", err
		}
		has, err := m.stores.Snapshots().Has(ctx, doc.Identity, next)
		if err != nil {
			return "", err
		}
		if !has {
			return next, nil
		}
		version = next
	}
	return "", status.ErrValidation.WrapMessage("could not find a free %s increment of version %s for %s", settings.kind, doc.Version(), doc.Identity)
}

// headParents yields the parent of a new version of doc: the current head when one exists,
// or else the version the document declares, when it has been stored.
func (m *Manager) headParents(ctx context.Context, doc *model.Document) ([]model.ParentRef, error) {
	head, found, err := m.readHead(ctx, doc.Identity)
	if err != nil {
		return nil, err
	}
	if found {
		return []model.ParentRef{{Identity: doc.Identity, Version: head.Version}}, nil
	}
	if !doc.HasVersion() {
		return nil, nil
	}
	has, err := m.stores.Snapshots().Has(ctx, doc.Identity, doc.Version())
	if err != nil || !has {
		return nil, err
	}
	return []model.ParentRef{{Identity: doc.Identity, Version: doc.Version()}}, nil
}

// ListVersions yields the version entries of a document, in the order they were created.
//
// The storage order is not the semantic version order.
func (m *Manager) ListVersions(ctx context.Context, identity model.Identity) (model.VersionEntries, error) {
	entries, err := m.stores.Snapshots().List(ctx, identity)
	if err != nil {
		return nil, err
	}
	m.l.Debug("listed versions", zap.Stringer("identity", identity), zap.Int("count", len(entries)))
	return entries, nil
}

// GetSnapshot retrieves a stored version of a document, with its version entry
func (m *Manager) GetSnapshot(ctx context.Context, identity model.Identity, version string) (*model.Snapshot, error) {
	return m.stores.Snapshots().Get(ctx, identity, version)
}

// GetVersion retrieves a stored version of a document.
//
// It fails with a not found error when the version does not exist.
func (m *Manager) GetVersion(ctx context.Context, identity model.Identity, version string) (*model.Document, error) {
	snapshot, err := m.GetSnapshot(ctx, identity, version)
	if err != nil {
		return nil, err
	}
	return snapshot.Document(identity), nil
}

// CompareVersions yields the structural difference between two stored versions of a document
func (m *Manager) CompareVersions(ctx context.Context, identity model.Identity, v1, v2 string) (diff.Comparison, error) {
	from, err := m.GetVersion(ctx, identity, v1)
	if err != nil {
		return diff.Comparison{}, err
	}
	to, err := m.GetVersion(ctx, identity, v2)
	if err != nil {
		return diff.Comparison{}, err
	}
	return diff.Compare(v1, from, v2, to), nil
}

// Rollback overwrites the live document with the metadata and content of a stored version.
//
// With backup, the current state of the live document is stored as a new version first.
// The head of the document moves to the restored version, so that further versions derive from it.
func (m *Manager) Rollback(ctx context.Context, identity model.Identity, version string, backup bool) (doc *model.Document, err error) {
	defer func(t0 time.Time) {
		m.usage(t0, "Rollback")(err)
	}(time.Now())

	target, err := m.GetVersion(ctx, identity, version)
	if err != nil {
		return nil, err
	}

	if backup {
		current, e := m.Load(ctx, identity)
		if e != nil {
			return nil, e
		}
		if _, e = m.CreateVersion(ctx, current, Description(fmt.Sprintf("Backup before rollback to %s", version))); e != nil {
			return nil, e
		}
	}

	if err = m.Save(ctx, target); err != nil {
		return nil, err
	}
	if err = m.writeHead(ctx, model.HeadDescriptor{Identity: identity, Version: version, Updated: m.now().UTC()}); err != nil {
		return nil, err
	}
	m.l.Info("rolled back document", zap.Stringer("identity", identity), zap.String("version", version), zap.Bool("backup", backup))
	return target, nil
}

func containsRef(refs []model.ParentRef, ref model.ParentRef) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}

func refStrings(refs []model.ParentRef) []string {
	strs := make([]string, 0, len(refs))
	for _, r := range refs {
		strs = append(strs, r.String())
	}
	return strs
}
