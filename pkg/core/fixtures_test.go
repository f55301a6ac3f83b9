// Copyright © 2018 One Concern

package core

import (
	"context"
	"testing"
	"time"

	context2 "github.com/oneconcern/docmon/pkg/context"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/snapshot/memory"
	"github.com/oneconcern/docmon/pkg/storage"
	"github.com/oneconcern/docmon/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time { return time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC) }

const fiveLines = "line 1\nline 2\nline 3\nline 4\nline 5\n"

func testStores(t testing.TB) context2.Stores {
	meta, err := localfs.NewAtomic(afero.NewMemMapFs())
	require.NoError(t, err)
	return context2.NewStores(localfs.New(afero.NewMemMapFs()), meta, memory.New())
}

func testManager(t testing.TB, opts ...Option) *Manager {
	m, err := NewManager(testStores(t), append([]Option{Clock(testClock)}, opts...)...)
	require.NoError(t, err)
	return m
}

func createDoc(t testing.TB, m *Manager, identity model.Identity, content string, kv ...interface{}) *model.Document {
	meta := model.NewMetadata()
	for i := 0; i+1 < len(kv); i += 2 {
		meta.Set(kv[i].(string), kv[i+1])
	}
	doc, err := m.Create(context.Background(), identity, meta, content)
	require.NoError(t, err)
	return doc
}

// edit loads a live document, applies some change and saves it
func edit(t testing.TB, m *Manager, identity model.Identity, change func(*model.Document)) *model.Document {
	ctx := context.Background()
	doc, err := m.Load(ctx, identity)
	require.NoError(t, err)
	change(doc)
	require.NoError(t, m.Save(ctx, doc))
	return doc
}

func version(t testing.TB, m *Manager, identity model.Identity, opts ...VersionOption) model.VersionEntry {
	ctx := context.Background()
	doc, err := m.Load(ctx, identity)
	require.NoError(t, err)
	entry, err := m.CreateVersion(ctx, doc, opts...)
	require.NoError(t, err)
	return entry
}

func writeText(t testing.TB, m *Manager, identity model.Identity, text string) {
	require.NoError(t, storage.PutBytes(context.Background(), m.Stores().Documents(), identity.String(), []byte(text), storage.OverWrite))
}

func readText(t testing.TB, m *Manager, identity model.Identity) string {
	buffer, err := storage.ReadAll(context.Background(), m.Stores().Documents(), identity.String())
	require.NoError(t, err)
	return string(buffer)
}

func ref(identity, version string) model.ParentRef {
	return model.ParentRef{Identity: model.Identity(identity), Version: version}
}
