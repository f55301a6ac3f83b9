// Copyright © 2018 One Concern

package core

import (
	"context"

	"github.com/oneconcern/docmon/pkg/history"
	"github.com/oneconcern/docmon/pkg/model"
	"go.uber.org/zap"
)

// maxGraphIdentities bounds the number of documents explored when loading a version graph
const maxGraphIdentities = 100

// VersionGraph loads the version graph of some documents, following parent links to other documents
// (e.g. from a branch to its source).
func (m *Manager) VersionGraph(ctx context.Context, identities ...model.Identity) (*history.Graph, error) {
	g := history.NewGraph()
	loaded := make(map[model.Identity]struct{}, len(identities))
	pending := append([]model.Identity(nil), identities...)

	for len(pending) > 0 && len(loaded) < maxGraphIdentities {
		identity := pending[0]
		pending = pending[1:]
		if _, ok := loaded[identity]; ok {
			continue
		}
		loaded[identity] = struct{}{}

		entries, err := m.stores.Snapshots().List(ctx, identity)
		if err != nil {
			return nil, err
		}
		g.AddEntries(identity, entries)

		for _, missing := range g.MissingIdentities() {
			if _, ok := loaded[missing]; !ok {
				pending = append(pending, missing)
			}
		}
	}
	return g, nil
}

// CommonAncestor resolves the common ancestor of two versions.
//
// The lowest common ancestor in the version graph is used whenever parent links are recorded for these versions.
// Otherwise, the highest version of a's document strictly lower than both versions is picked, which only holds
// for linear histories. This heuristic defaults to 0.0.0.
func (m *Manager) CommonAncestor(ctx context.Context, a, b model.ParentRef) (model.ParentRef, error) {
	if !m.linear {
		g, err := m.VersionGraph(ctx, a.Identity, b.Identity)
		if err != nil {
			return model.ParentRef{}, err
		}
		if g.Has(a) && g.Has(b) && (g.HasParents(a.Identity) || g.HasParents(b.Identity)) {
			if lca, ok := g.CommonAncestor(a, b); ok {
				m.l.Debug("common ancestor from version graph",
					zap.Stringer("a", a), zap.Stringer("b", b), zap.Stringer("ancestor", lca))
				return lca, nil
			}
		}
	}

	entries, err := m.stores.Snapshots().List(ctx, a.Identity)
	if err != nil {
		return model.ParentRef{}, err
	}
	ancestor := model.ParentRef{
		Identity: a.Identity,
		Version:  history.LinearAncestor(entries.Versions(), a.Version, b.Version),
	}
	m.l.Debug("common ancestor from version numbers",
		zap.Stringer("a", a), zap.Stringer("b", b), zap.Stringer("ancestor", ancestor))
	return ancestor, nil
}

// baseDocument fetches the snapshot of a common ancestor.
//
// When the ancestor was never stored, an empty document at that version stands for the base.
func (m *Manager) baseDocument(ctx context.Context, ancestor model.ParentRef) (*model.Document, error) {
	has, err := m.stores.Snapshots().Has(ctx, ancestor.Identity, ancestor.Version)
	if err != nil {
		return nil, err
	}
	if !has {
		m.l.Debug("no snapshot for common ancestor: using an empty base", zap.Stringer("ancestor", ancestor))
		meta := model.NewMetadata().
			Set(model.FieldTitle, "Base Document").
			Set(model.FieldVersion, ancestor.Version)
		return model.NewDocument(ancestor.Identity, meta, ""), nil
	}
	return m.GetVersion(ctx, ancestor.Identity, ancestor.Version)
}
