// Copyright © 2018 One Concern

package core

import (
	"context"
	"time"

	context2 "github.com/oneconcern/docmon/pkg/context"
	"github.com/oneconcern/docmon/pkg/codec"
	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/metrics"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/oneconcern/docmon/pkg/storage"
	storagestatus "github.com/oneconcern/docmon/pkg/storage/status"
	"go.uber.org/zap"
)

// Manager manages versions, branches and merges of documents
type Manager struct {
	metaObject
	metrics.Enable

	stores context2.Stores
	l      *zap.Logger
	now    func() time.Time
	linear bool
	author string
	m      *M
	_      struct{}
}

func defaultManager(stores context2.Stores) *Manager {
	return &Manager{
		metaObject: defaultMetaObject(stores.Metadata()),
		stores:     stores,
		l:          zap.NewNop(),
		now:        time.Now,
	}
}

// NewManager builds a manager operating on a complete set of stores
func NewManager(stores context2.Stores, opts ...Option) (*Manager, error) {
	if stores == nil {
		return nil, status.ErrValidation.WrapMessage("manager requires stores")
	}
	if err := stores.Validate(); err != nil {
		return nil, err
	}

	m := defaultManager(stores)
	for _, apply := range opts {
		apply(m)
	}

	if m.MetricsEnabled() {
		m.m = m.EnsureMetrics("core", &M{}).(*M)
	}
	return m, nil
}

// Stores used by this manager
func (m *Manager) Stores() context2.Stores {
	return m.stores
}

func (m *Manager) usage(start time.Time, method string) func(error) {
	return func(err error) {
		if m.MetricsEnabled() {
			m.m.Usage.UsedAll(start, method)(err)
		}
	}
}

// Load the live document at identity
func (m *Manager) Load(ctx context.Context, identity model.Identity) (*model.Document, error) {
	if identity.IsZero() {
		return nil, status.ErrValidation.WrapMessage("document has no identity")
	}
	buffer, err := storage.ReadAll(ctx, m.stores.Documents(), identity.String())
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return nil, status.ErrNotFound.WrapMessage("document %s", identity)
		}
		return nil, err
	}
	doc, err := codec.ParseDocument(identity, string(buffer))
	if err != nil {
		return nil, err
	}
	m.l.Debug("loaded document", zap.Stringer("identity", identity), zap.String("version", doc.Version()))
	return doc, nil
}

// Save the live document, overwriting any previous content
func (m *Manager) Save(ctx context.Context, doc *model.Document) error {
	return m.save(ctx, doc, storage.OverWrite)
}

// Create a new live document, with default metadata.
//
// It fails with a validation error if a document exists already at identity.
func (m *Manager) Create(ctx context.Context, identity model.Identity, meta *model.Metadata, content string) (*model.Document, error) {
	doc := codec.NewDocument(identity, meta, content)
	if m.author != "" && doc.Author() == "" {
		doc.Metadata.Set(model.FieldAuthor, m.author)
	}
	if err := m.save(ctx, doc, storage.NoOverWrite); err != nil {
		if errors.Is(err, storagestatus.ErrExists) {
			return nil, status.ErrValidation.WrapMessage("document %s exists already", identity)
		}
		return nil, err
	}
	m.l.Info("created document", zap.Stringer("identity", identity))
	return doc, nil
}

func (m *Manager) save(ctx context.Context, doc *model.Document, exclusive bool) error {
	if doc.Identity.IsZero() {
		return status.ErrValidation.WrapMessage("document has no identity")
	}
	text, err := codec.RenderDocument(doc)
	if err != nil {
		return err
	}
	if err = storage.PutBytes(ctx, m.stores.Documents(), doc.Identity.String(), []byte(text), exclusive); err != nil {
		return err
	}
	if m.MetricsEnabled() {
		m.m.Volume.Documents.Inc("save")
		m.m.Volume.Documents.Size(int64(len(text)), "save")
	}
	m.l.Debug("saved document", zap.Stringer("identity", doc.Identity), zap.String("version", doc.Version()))
	return nil
}
