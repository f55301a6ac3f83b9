// Copyright © 2018 One Concern

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type archivePathFixture struct {
	name       string
	path       string
	wantsError bool
	expected   ArchivePathComponents
}

func archivePathTestCases() []archivePathFixture {
	return []archivePathFixture{
		{
			name: "snapshot",
			path: GetArchivePathToSnapshot("notes/plan.md", "1.2.3"),
			expected: ArchivePathComponents{
				Identity:        "notes/plan.md",
				Version:         "1.2.3",
				ArchiveFileName: "1.2.3.yaml",
			},
		},
		{
			name: "branch descriptor",
			path: GetArchivePathToBranch("plan.md", "draft"),
			expected: ArchivePathComponents{
				Identity:        "plan.md",
				BranchName:      "draft",
				ArchiveFileName: "draft.yaml",
			},
		},
		{
			name: "head marker",
			path: GetArchivePathToHead("a/b/c.md"),
			expected: ArchivePathComponents{
				Identity:        "a/b/c.md",
				ArchiveFileName: "c.md.yaml",
				IsHead:          true,
			},
		},
		{
			name:       "not a descriptor",
			path:       "snapshots/plan.md/1.0.0.json",
			wantsError: true,
		},
		{
			name:       "missing identity",
			path:       "snapshots/1.0.0.yaml",
			wantsError: true,
		},
		{
			name:       "unknown prefix",
			path:       "labels/plan.md/1.0.0.yaml",
			wantsError: true,
		},
		{
			name:       "empty head",
			path:       "heads/.yaml",
			wantsError: true,
		},
	}
}

func TestGetArchivePathComponents(t *testing.T) {
	for _, toPin := range archivePathTestCases() {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			actual, err := GetArchivePathComponents(testCase.path)
			if testCase.wantsError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestArchivePrefixes(t *testing.T) {
	assert.Equal(t, "snapshots/plan.md/", GetArchivePathPrefixToSnapshots("plan.md"))
	assert.Equal(t, "branches/plan.md/", GetArchivePathPrefixToBranches("plan.md"))
}
