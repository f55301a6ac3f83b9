// Copyright © 2018 One Concern

package core

import (
	"context"
	"testing"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectConcurrentModification(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)

	// unreadable documents are assumed unmodified
	assert.False(t, m.DetectConcurrentModification(ctx, "missing.md", "0.0.1"))

	createDoc(t, m, "plan.md", fiveLines)
	assert.False(t, m.DetectConcurrentModification(ctx, "plan.md", ""))
	assert.False(t, m.DetectConcurrentModification(ctx, "plan.md", "0.0.0"))
	assert.True(t, m.DetectConcurrentModification(ctx, "plan.md", "0.0.1"))

	// the latest_version field is used in the absence of a head
	edit(t, m, "plan.md", func(d *model.Document) { d.Metadata.Set(model.FieldLatestVersion, "0.0.5") })
	assert.True(t, m.DetectConcurrentModification(ctx, "plan.md", ""))
	assert.False(t, m.DetectConcurrentModification(ctx, "plan.md", "0.0.5"))

	// the head takes precedence
	version(t, m, "plan.md")
	assert.False(t, m.DetectConcurrentModification(ctx, "plan.md", "0.0.1"))
	assert.True(t, m.DetectConcurrentModification(ctx, "plan.md", "0.0.5"))

	// another writer versions the document
	version(t, m, "plan.md")
	assert.True(t, m.DetectConcurrentModification(ctx, "plan.md", "0.0.1"))
	assert.False(t, m.DetectConcurrentModification(ctx, "plan.md", ""))
}

func TestSaveIfUnchanged(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)
	createDoc(t, m, "plan.md", fiveLines)
	version(t, m, "plan.md")

	mine, err := m.Load(ctx, "plan.md")
	require.NoError(t, err)
	expected := mine.Version()

	mine.Content = "my edit\n"
	require.NoError(t, m.SaveIfUnchanged(ctx, mine, expected))
	assert.Contains(t, readText(t, m, "plan.md"), "my edit\n")

	// someone else tags a new version meanwhile
	version(t, m, "plan.md")

	mine.Content = "my second edit\n"
	err = m.SaveIfUnchanged(ctx, mine, expected)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrConflict)
	assert.NotContains(t, readText(t, m, "plan.md"), "my second edit\n")
}

func TestGuardAfterAutoMerge(t *testing.T) {
	ctx := context.Background()
	m := testManager(t)
	createDoc(t, m, "a.md", fiveLines)
	version(t, m, "a.md")
	writeText(t, m, "b.md", readText(t, m, "a.md"))
	edit(t, m, "b.md", replaceLine("line 4", "line 4 (b)"))

	merged, err := m.AutoMergeDocuments(ctx, "a.md", "b.md", "", "0.0.1")
	require.NoError(t, err)
	require.Equal(t, "0.0.2", merged.Version())

	// the merge moves the head along with the live document
	assert.False(t, m.DetectConcurrentModification(ctx, "a.md", ""))
	assert.False(t, m.DetectConcurrentModification(ctx, "a.md", merged.Version()))
	assert.True(t, m.DetectConcurrentModification(ctx, "a.md", "0.0.1"))

	merged.Content += "line 6\n"
	require.NoError(t, m.SaveIfUnchanged(ctx, merged, "0.0.2"))
	assert.Contains(t, readText(t, m, "a.md"), "line 4 (b)\nline 5\nline 6\n")

	entries, err := m.ListVersions(ctx, "a.md")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "0.0.2", entries[1].Version)
	// b.md@0.0.1 was never stored and is not recorded as parent
	assert.Equal(t, []model.ParentRef{ref("a.md", "0.0.1")}, entries[1].Parents)
}
