// Copyright © 2018 One Concern

package core

import (
	"context"
	"strings"
	"testing"

	"github.com/oneconcern/docmon/pkg/diff"
	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/semver"
	"github.com/oneconcern/docmon/pkg/snapshot"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVersion(t *testing.T) {
	type testCase struct {
		name     string
		opts     []VersionOption
		expected string
		err      error
	}

	for _, toPin := range []testCase{
		{name: "default patch", expected: "0.0.1"},
		{name: "minor", opts: []VersionOption{Bump(semver.Minor)}, expected: "0.1.0"},
		{name: "major", opts: []VersionOption{Bump(semver.Major)}, expected: "1.0.0"},
		{name: "explicit", opts: []VersionOption{Version("2.3.4")}, expected: "2.3.4"},
		{name: "invalid explicit", opts: []VersionOption{Version("v-x")}, err: status.ErrValidation},
		{name: "invalid increment", opts: []VersionOption{Bump(semver.Kind("huge"))}, err: status.ErrValidation},
	} {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			ctx := context.Background()
			m := testManager(t)
			createDoc(t, m, "plan.md", fiveLines)
			doc, err := m.Load(ctx, "plan.md")
			require.NoError(t, err)

			entry, err := m.CreateVersion(ctx, doc, testCase.opts...)
			if testCase.err != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, testCase.err)

				versions, erl := m.ListVersions(ctx, "plan.md")
				require.NoError(t, erl)
				assert.Empty(t, versions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, entry.Version)
			assert.Equal(t, uint64(1), entry.Sequence)
			assert.NotEmpty(t, entry.Snapshot)
			assert.Empty(t, entry.Parents)
			assert.Equal(t, testClock(), entry.Timestamp)

			// the caller's document is updated in place
			assert.Equal(t, testCase.expected, doc.Version())

			live, err := m.Load(ctx, "plan.md")
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, live.Version())
			assert.Equal(t, "2020-01-02", live.Metadata.String(model.FieldUpdatedAt))
			history, err := live.History()
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, testCase.expected, history[0].Version)

			head, found, err := m.readHead(ctx, "plan.md")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, testCase.expected, head.Version)
		})
	}
}

func TestCreateVersionParents(t *testing.T) {
	ctx := context.Background()
	m := testManager(t, DefaultAuthor("bob"))
	createDoc(t, m, "plan.md", fiveLines)

	first := version(t, m, "plan.md", Author("alice"), Description("first draft"))
	assert.Equal(t, "alice", first.Author)
	assert.Equal(t, "first draft", first.Description)

	edit(t, m, "plan.md", func(d *model.Document) { d.Content += "line 6\n" })
	second := version(t, m, "plan.md", Parents(ref("other.md", "1.0.0"), ref("plan.md", "0.0.1")))
	assert.Equal(t, "0.0.2", second.Version)
	assert.Equal(t, "bob", second.Author)
	assert.Equal(t, uint64(2), second.Sequence)
	assert.Equal(t, []model.ParentRef{ref("plan.md", "0.0.1"), ref("other.md", "1.0.0")}, second.Parents)

	live, err := m.Load(ctx, "plan.md")
	require.NoError(t, err)
	history, err := live.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, []string{"0.0.1", "0.0.2"}, []string{history[0].Version, history[1].Version})

	entries, err := m.ListVersions(ctx, "plan.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"0.0.1", "0.0.2"}, entries.Versions())

	older, err := m.GetVersion(ctx, "plan.md", "0.0.1")
	require.NoError(t, err)
	assert.Equal(t, fiveLines, older.Content)
	assert.Equal(t, "0.0.1", older.Version())
	assert.Equal(t, model.Identity("plan.md"), older.Identity)
}

func TestCreateVersionErrors(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)

	_, err := m.CreateVersion(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrValidation)

	_, err = m.CreateVersion(ctx, model.NewDocument("", nil, "transient"))
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrValidation)

	createDoc(t, m, "plan.md", fiveLines)
	version(t, m, "plan.md", Version("1.0.0"))

	doc, err := m.Load(ctx, "plan.md")
	require.NoError(t, err)
	before := readText(t, m, "plan.md")
	doc.Content = "rejected\n"
	_, err = m.CreateVersion(ctx, doc, Version("1.0.0"))
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrValidation)
	assert.Equal(t, before, readText(t, m, "plan.md"))
}

// failingSnapshots refuses to store any snapshot
type failingSnapshots struct {
	snapshot.Store
}

func (failingSnapshots) Put(context.Context, model.Identity, *model.Snapshot) (model.VersionEntry, error) {
	return model.VersionEntry{}, errors.New("snapshot store unavailable")
}

func TestCreateVersionSnapshotFailure(t *testing.T) {
	ctx := context.Background()
	stores := testStores(t)
	stores.SetSnapshots(failingSnapshots{Store: stores.Snapshots()})
	m, err := NewManager(stores, Clock(testClock))
	require.NoError(t, err)

	createDoc(t, m, "plan.md", fiveLines)
	before := readText(t, m, "plan.md")

	doc, err := m.Load(ctx, "plan.md")
	require.NoError(t, err)
	doc.Content = "edited\n"
	_, err = m.CreateVersion(ctx, doc)
	require.Error(t, err)

	// the live document is left as it was, without a dangling version
	assert.Equal(t, before, readText(t, m, "plan.md"))
	entries, err := m.ListVersions(ctx, "plan.md")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, "0.0.0", doc.Version())

	// a document which did not exist is not left behind
	_, err = m.CreateVersion(ctx, model.NewDocument("new.md", nil, "transient\n"))
	require.Error(t, err)
	exists, err := stores.Documents().Has(ctx, "new.md")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetVersionNotFound(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)
	createDoc(t, m, "plan.md", fiveLines)

	_, err := m.GetVersion(ctx, "plan.md", "0.0.1")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotFound)

	_, err = m.CompareVersions(ctx, "plan.md", "0.0.1", "0.0.2")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestCompareVersions(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)
	createDoc(t, m, "plan.md", fiveLines)
	version(t, m, "plan.md")

	edit(t, m, "plan.md", func(d *model.Document) {
		d.Content = strings.Replace(d.Content, "line 2", "line two", 1)
		d.AddTag("reviewed")
	})
	version(t, m, "plan.md")

	comparison, err := m.CompareVersions(ctx, "plan.md", "0.0.1", "0.0.2")
	require.NoError(t, err)
	assert.Equal(t, "0.0.1", comparison.From)
	assert.Equal(t, "0.0.2", comparison.To)
	assert.False(t, comparison.IsEmpty())

	var fields []string
	for _, change := range comparison.Metadata {
		fields = append(fields, change.Field)
	}
	assert.Contains(t, fields, model.FieldTags)
	assert.Contains(t, fields, model.FieldVersion)
	require.Len(t, comparison.Content, 1)
	op := comparison.Content[0]
	assert.Equal(t, diff.Replace, op.Tag)
	assert.Equal(t, 1, op.I1)
	assert.Equal(t, 2, op.I2)
	assert.Equal(t, []string{"line two"}, op.Lines)
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)
	createDoc(t, m, "plan.md", "first\n")
	version(t, m, "plan.md")

	edit(t, m, "plan.md", func(d *model.Document) { d.Content = "second\n" })
	version(t, m, "plan.md")

	// unversioned edit
	edit(t, m, "plan.md", func(d *model.Document) { d.Content = "third\n" })

	t.Run("missing version", func(t *testing.T) {
		_, err := m.Rollback(ctx, "plan.md", "9.9.9", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, status.ErrNotFound)
		assert.Contains(t, readText(t, m, "plan.md"), "third\n")
	})

	restored, err := m.Rollback(ctx, "plan.md", "0.0.1", true)
	require.NoError(t, err)
	assert.Equal(t, "first\n", restored.Content)
	assert.Equal(t, "0.0.1", restored.Version())

	live, err := m.Load(ctx, "plan.md")
	require.NoError(t, err)
	assert.Equal(t, "first\n", live.Content)
	assert.Equal(t, "0.0.1", live.Version())

	// the unversioned edit was backed up
	backup, err := m.GetSnapshot(ctx, "plan.md", "0.0.3")
	require.NoError(t, err)
	assert.Equal(t, "third\n", backup.Content)
	assert.Equal(t, "Backup before rollback to 0.0.1", backup.Entry.Description)
	assert.Equal(t, []model.ParentRef{ref("plan.md", "0.0.2")}, backup.Entry.Parents)

	// further versions derive from the restored version
	next := version(t, m, "plan.md")
	assert.Equal(t, "0.0.4", next.Version)
	assert.Equal(t, []model.ParentRef{ref("plan.md", "0.0.1")}, next.Parents)

	entries, err := m.ListVersions(ctx, "plan.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"0.0.1", "0.0.2", "0.0.3", "0.0.4"}, entries.Versions())
}

func TestRollbackWithoutBackup(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)
	createDoc(t, m, "plan.md", "first\n")
	version(t, m, "plan.md")
	edit(t, m, "plan.md", func(d *model.Document) { d.Content = "second\n" })

	_, err := m.Rollback(ctx, "plan.md", "0.0.1", false)
	require.NoError(t, err)

	entries, err := m.ListVersions(ctx, "plan.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"0.0.1"}, entries.Versions())
	assert.Contains(t, readText(t, m, "plan.md"), "first\n")
}
