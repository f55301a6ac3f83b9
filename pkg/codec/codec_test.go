// Copyright © 2018 One Concern

package codec

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `---
title: Plan
version: 1.2.0
created_at: 2020-01-02
tags:
- a
- b
nested:
  z: 1
  a: true
---
# Plan

Some text.
`

func TestParse(t *testing.T) {
	meta, content, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "version", "created_at", "tags", "nested"}, meta.Keys())
	assert.Equal(t, "1.2.0", meta.Value("version"))
	assert.Equal(t, "2020-01-02", meta.Value("created_at"))
	assert.Equal(t, []interface{}{"a", "b"}, meta.Value("tags"))
	assert.Equal(t, []string{"z", "a"}, meta.Value("nested").(*model.Metadata).Keys())
	assert.Equal(t, "# Plan\n\nSome text.\n", content)
}

func TestRoundTrip(t *testing.T) {
	meta, content, err := Parse(sample)
	require.NoError(t, err)

	text, err := Render(meta, content)
	require.NoError(t, err)

	meta2, content2, err := Parse(text)
	require.NoError(t, err)
	assert.True(t, meta.Equal(meta2))
	assert.Equal(t, meta.Keys(), meta2.Keys())
	assert.Equal(t, content, content2)

	text2, err := Render(meta2, content2)
	require.NoError(t, err)
	assert.Equal(t, text, text2)
}

func TestParseEdgeCases(t *testing.T) {
	for _, toPin := range []struct {
		name            string
		text            string
		expectedKeys    []string
		expectedContent string
		wantsError      bool
	}{
		{name: "no metadata", text: "just text\n", expectedContent: "just text\n"},
		{name: "empty", text: ""},
		{name: "empty block", text: "---\n---\nbody", expectedContent: "body"},
		{name: "closing delimiter at end of text", text: "---\ntitle: x\n---", expectedKeys: []string{"title"}},
		{name: "windows line endings", text: "---\r\ntitle: x\r\n---\r\nbody\r\n", expectedKeys: []string{"title"}, expectedContent: "body\r\n"},
		{name: "unterminated block", text: "---\ntitle: x\n", wantsError: true},
		{name: "invalid yaml", text: "---\ntitle: [unclosed\n---\n", wantsError: true},
	} {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			meta, content, err := Parse(testCase.text)
			if testCase.wantsError {
				require.Error(t, err)
				assert.ErrorIs(t, err, status.ErrValidation)
				return
			}
			require.NoError(t, err)
			if len(testCase.expectedKeys) == 0 {
				assert.Equal(t, 0, meta.Len())
			} else {
				assert.Equal(t, testCase.expectedKeys, meta.Keys())
			}
			assert.Equal(t, testCase.expectedContent, content)
		})
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("notes/plan.md", model.NewMetadata().Set(model.FieldTitle, "Mine"), "body")
	assert.Equal(t, "Mine", doc.Title())
	assert.Equal(t, "0.0.0", doc.Version())
	_, err := uuid.Parse(doc.Metadata.String(model.FieldUUID))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Metadata.String(model.FieldCreatedAt))

	doc = NewDocument("notes/plan.md", nil, "")
	assert.Equal(t, "plan", doc.Title())
	assert.Equal(t, "Untitled", NewDocument("", nil, "").Title())

	text, err := RenderDocument(doc)
	require.NoError(t, err)
	parsed, err := ParseDocument("notes/plan.md", text)
	require.NoError(t, err)
	assert.True(t, doc.Metadata.Equal(parsed.Metadata))
}
