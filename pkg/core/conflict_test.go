// Copyright © 2018 One Concern

package core

import (
	"context"
	"testing"

	"github.com/oneconcern/docmon/pkg/merge"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// divergedManager yields a manager with plan.md and its branch plan.alt.md, both edited on line 3 and on their title
func divergedManager(t testing.TB) *Manager {
	ctx := context.Background()
	m := testManager(t)
	createDoc(t, m, "plan.md", fiveLines)
	version(t, m, "plan.md")
	_, _, err := m.CreateBranch(ctx, "plan.md", "alt", "")
	require.NoError(t, err)

	edit(t, m, "plan.md", func(d *model.Document) {
		replaceLine("line 3", "line 3 (main)")(d)
		d.Metadata.Set(model.FieldTitle, "Main plan")
	})
	edit(t, m, "plan.alt.md", func(d *model.Document) {
		replaceLine("line 3", "line 3 (alt)")(d)
		d.Metadata.Set(model.FieldTitle, "Alternative plan")
	})
	return m
}

func TestCheckForConflicts(t *testing.T) {
	ctx := context.Background()
	m := divergedManager(t)

	session, err := m.CheckForConflicts(ctx, "plan.md", "plan.alt.md", "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID())
	assert.True(t, session.HasConflicts())
	assert.Equal(t, "0.0.1", session.BaseVersion())

	conflicts := session.Conflicts()
	assert.Equal(t, []string{model.FieldTitle}, conflicts.Fields())
	require.Len(t, conflicts.Content, 1)
	assert.Equal(t, "line 3", conflicts.Content[0].Base)
	assert.Equal(t, "line 3 (main)", conflicts.Content[0].Local)
	assert.Equal(t, "line 3 (alt)", conflicts.Content[0].Remote)

	_, err = m.CheckForConflicts(ctx, "plan.md", "missing.md", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestCheckForConflictsWithoutBaseSnapshot(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)
	createDoc(t, m, "a.md", "shared\n", model.FieldTitle, "A")
	createDoc(t, m, "b.md", "shared\n", model.FieldTitle, "B")

	// an explicit base version which was never stored stands for an empty document
	session, err := m.CheckForConflicts(ctx, "a.md", "b.md", "0.0.9")
	require.NoError(t, err)
	assert.Equal(t, "0.0.9", session.BaseVersion())

	mc, ok := session.Conflicts().Field(model.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, "Base Document", mc.Base)
	assert.Equal(t, "A", mc.Local)
	assert.Equal(t, "B", mc.Remote)
}

func TestAutoMergeDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("conflicts", func(t *testing.T) {
		m := divergedManager(t)
		before := readText(t, m, "plan.md")

		_, err := m.AutoMergeDocuments(ctx, "plan.md", "plan.alt.md", "", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, status.ErrConflict)
		assert.Equal(t, before, readText(t, m, "plan.md"))
	})

	t.Run("clean merge", func(t *testing.T) {
		m := testManager(t)
		createDoc(t, m, "plan.md", fiveLines)
		version(t, m, "plan.md")
		_, _, err := m.CreateBranch(ctx, "plan.md", "alt", "")
		require.NoError(t, err)
		edit(t, m, "plan.md", replaceLine("line 1", "line 1 (main)"))
		edit(t, m, "plan.alt.md", func(d *model.Document) {
			replaceLine("line 2", "line 2 (alt)")(d)
			d.AddTag("reviewed")
		})

		doc, err := m.AutoMergeDocuments(ctx, "plan.md", "plan.alt.md", "merged.md", "")
		require.NoError(t, err)
		assert.Equal(t, model.Identity("merged.md"), doc.Identity)
		assert.Equal(t, "0.0.2", doc.Version())

		live, err := m.Load(ctx, "merged.md")
		require.NoError(t, err)
		assert.Equal(t, "line 1 (main)\nline 2 (alt)\nline 3\nline 4\nline 5\n", live.Content)
		assert.True(t, live.HasTag("reviewed"))
		assert.Equal(t, "2020-01-02", live.Metadata.String(model.FieldUpdatedAt))

		// the local document is left untouched when merging into another output
		local, err := m.Load(ctx, "plan.md")
		require.NoError(t, err)
		assert.False(t, local.HasTag("reviewed"))

		// the merge is stored as a version deriving from both sides
		entries, err := m.ListVersions(ctx, "merged.md")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "0.0.2", entries[0].Version)
		assert.Equal(t, []model.ParentRef{ref("plan.md", "0.0.1"), ref("plan.alt.md", "0.0.1")}, entries[0].Parents)
		assert.False(t, m.DetectConcurrentModification(ctx, "merged.md", "0.0.2"))
	})

	t.Run("copies over an empty base", func(t *testing.T) {
		m := testManager(t)
		createDoc(t, m, "a.md", fiveLines)
		version(t, m, "a.md")
		writeText(t, m, "b.md", readText(t, m, "a.md"))
		edit(t, m, "a.md", replaceLine("line 2", "LOCAL"))
		edit(t, m, "b.md", replaceLine("line 5", "REMOTE"))
		before := readText(t, m, "a.md")

		session, err := m.CheckForConflicts(ctx, "a.md", "b.md", "")
		require.NoError(t, err)
		assert.Equal(t, "0.0.0", session.BaseVersion())
		conflicts := session.Conflicts()
		assert.Empty(t, conflicts.Metadata)
		require.Len(t, conflicts.Content, 1)
		assert.Equal(t, merge.ContentConflict{
			Local:  "line 1\nLOCAL\nline 3\nline 4\nline 5",
			Remote: "line 1\nline 2\nline 3\nline 4\nREMOTE",
		}, conflicts.Content[0])

		_, err = m.AutoMergeDocuments(ctx, "a.md", "b.md", "", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, status.ErrConflict)
		assert.Equal(t, before, readText(t, m, "a.md"))
	})
}

func TestManualResolution(t *testing.T) {
	ctx := context.Background()
	m := divergedManager(t)

	session, err := m.CheckForConflicts(ctx, "plan.md", "plan.alt.md", "")
	require.NoError(t, err)

	_, err = session.Finish()
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrConflict)

	_, err = m.SaveMerged(ctx, nil, "plan.md")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrConflict)

	require.NoError(t, session.ResolveMetadata(model.FieldTitle, merge.TakeRemote()))
	require.NoError(t, session.ResolveContent(0, merge.Literal("line 3 (both)")))
	result, err := session.Finish()
	require.NoError(t, err)

	doc, err := m.SaveMerged(ctx, result, "plan.md")
	require.NoError(t, err)
	assert.Equal(t, "Alternative plan", doc.Title())

	live, err := m.Load(ctx, "plan.md")
	require.NoError(t, err)
	assert.Equal(t, "line 1\nline 2\nline 3 (both)\nline 4\nline 5\n", live.Content)
	assert.Equal(t, "Alternative plan", live.Title())
	assert.Equal(t, "0.0.2", live.Version())

	snapshot, err := m.GetSnapshot(ctx, "plan.md", "0.0.2")
	require.NoError(t, err)
	assert.Equal(t, "line 1\nline 2\nline 3 (both)\nline 4\nline 5\n", snapshot.Content)
	assert.Equal(t, "Merge plan.md@0.0.1, plan.alt.md@0.0.1 into plan.md", snapshot.Entry.Description)

	// saving the same result again lands on the next free version
	doc, err = m.SaveMerged(ctx, result, "plan.md")
	require.NoError(t, err)
	assert.Equal(t, "0.0.3", doc.Version())
}

func TestConflictArtifact(t *testing.T) {
	ctx := context.Background()
	m := divergedManager(t)

	session, err := m.CheckForConflicts(ctx, "plan.md", "plan.alt.md", "")
	require.NoError(t, err)

	require.Error(t, m.CreateConflictArtifact(ctx, session, ""))
	require.NoError(t, m.CreateConflictArtifact(ctx, session, "plan.conflict.md"))

	text := readText(t, m, "plan.conflict.md")
	assert.True(t, merge.HasMarkers(text))
	assert.Contains(t, text, merge.MarkerLocal+"\nline 3 (main)\n"+merge.MarkerSeparator+"\nline 3 (alt)\n"+merge.MarkerRemote+"\n")

	_, err = m.ResolveFromArtifact(ctx, "plan.conflict.md", "plan.md")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrConflict)

	_, err = m.ResolveFromArtifact(ctx, "nowhere.md", "plan.md")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotFound)

	// a human edits out the markers
	writeText(t, m, "plan.conflict.md", "---\ntitle: Resolved plan\nversion: 0.0.2\n---\nline 1\nline 3 (resolved)\n")

	doc, err := m.ResolveFromArtifact(ctx, "plan.conflict.md", "plan.md")
	require.NoError(t, err)
	assert.Equal(t, model.Identity("plan.md"), doc.Identity)

	live, err := m.Load(ctx, "plan.md")
	require.NoError(t, err)
	assert.Equal(t, "Resolved plan", live.Title())
	assert.Equal(t, "0.0.2", live.Version())
	assert.Equal(t, "line 1\nline 3 (resolved)\n", live.Content)
	assert.False(t, m.DetectConcurrentModification(ctx, "plan.md", "0.0.2"))

	entries, err := m.ListVersions(ctx, "plan.md")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []model.ParentRef{ref("plan.md", "0.0.1")}, entries[1].Parents)

	// output defaults to the artifact itself
	doc, err = m.ResolveFromArtifact(ctx, "plan.conflict.md", "")
	require.NoError(t, err)
	assert.Equal(t, model.Identity("plan.conflict.md"), doc.Identity)
}

func TestCommonAncestor(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)
	createDoc(t, m, "plan.md", fiveLines)
	version(t, m, "plan.md")
	version(t, m, "plan.md")
	_, _, err := m.CreateBranch(ctx, "plan.md", "alt", "0.0.1")
	require.NoError(t, err)
	version(t, m, "plan.alt.md")

	ancestor, err := m.CommonAncestor(ctx, ref("plan.md", "0.0.2"), ref("plan.alt.md", "0.0.2"))
	require.NoError(t, err)
	assert.Equal(t, ref("plan.md", "0.0.1"), ancestor)

	linear := testManager(t, LinearAncestry())
	createDoc(t, linear, "plan.md", fiveLines)
	version(t, linear, "plan.md")
	version(t, linear, "plan.md")
	version(t, linear, "plan.md")

	ancestor, err = linear.CommonAncestor(ctx, ref("plan.md", "0.0.3"), ref("plan.md", "0.0.3"))
	require.NoError(t, err)
	assert.Equal(t, ref("plan.md", "0.0.2"), ancestor)

	ancestor, err = linear.CommonAncestor(ctx, ref("plan.md", "0.0.1"), ref("other.md", "1.0.0"))
	require.NoError(t, err)
	assert.Equal(t, ref("plan.md", "0.0.0"), ancestor)

	g, err := m.VersionGraph(ctx, "plan.alt.md")
	require.NoError(t, err)
	// following parent links brings the source document along
	assert.True(t, g.Has(ref("plan.md", "0.0.1")))
	assert.True(t, g.Has(ref("plan.md", "0.0.2")))
	assert.True(t, g.Has(ref("plan.alt.md", "0.0.2")))
}
