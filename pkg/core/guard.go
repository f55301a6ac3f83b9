// Copyright © 2018 One Concern

package core

import (
	"context"
	"fmt"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
	"go.uber.org/zap"
)

// DetectConcurrentModification tells if a document has been modified elsewhere.
//
// The latest version of the document is its head marker, or else its latest_version field, or else its version.
// The expected version defaults to the version of the live document.
//
// This check is advisory: it never locks anything. A document which cannot be read is assumed unmodified.
func (m *Manager) DetectConcurrentModification(ctx context.Context, identity model.Identity, expected string) bool {
	doc, err := m.Load(ctx, identity)
	if err != nil {
		m.l.Debug("concurrent modification check: cannot read document", zap.Stringer("identity", identity), zap.Error(err))
		return false
	}

	current := doc.Version()
	if expected == "" {
		expected = current
	}

	latest := current
	head, found, err := m.readHead(ctx, identity)
	switch {
	case err != nil:
		m.l.Debug("concurrent modification check: cannot read head", zap.Stringer("identity", identity), zap.Error(err))
		return false
	case found:
		latest = head.Version
	case doc.Metadata.Has(model.FieldLatestVersion):
		latest = fmt.Sprint(doc.Metadata.Value(model.FieldLatestVersion))
	}

	modified := latest != expected
	m.l.Debug("concurrent modification check",
		zap.Stringer("identity", identity),
		zap.String("expected", expected),
		zap.String("latest", latest),
		zap.Bool("modified", modified),
	)
	return modified
}

// SaveIfUnchanged saves the live document unless it has been modified since expected version.
//
// It fails with a conflict error when a concurrent modification is detected: callers should merge first.
func (m *Manager) SaveIfUnchanged(ctx context.Context, doc *model.Document, expected string) error {
	if m.DetectConcurrentModification(ctx, doc.Identity, expected) {
		return status.ErrConflict.WrapMessage("document %s was modified since version %s", doc.Identity, expected)
	}
	return m.Save(ctx, doc)
}
