// Copyright © 2018 One Concern

package context

import (
	"testing"

	"github.com/oneconcern/docmon/pkg/errors"
	"github.com/oneconcern/docmon/pkg/snapshot/memory"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/oneconcern/docmon/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStores(t *testing.T) {
	s1 := localfs.New(afero.NewMemMapFs())
	s2 := localfs.New(afero.NewMemMapFs())
	s3 := memory.New()

	stores := NewStores(s1, s2, s3)
	assert.Same(t, s1, stores.Documents())
	assert.Same(t, s2, stores.Metadata())
	assert.Same(t, s3, stores.Snapshots())
	require.NoError(t, stores.Validate())

	blobs := NewBlobStores(s1, s2)
	require.NoError(t, blobs.Validate())
	assert.Contains(t, blobs.Snapshots().String(), "blob:")
}

func TestValidate(t *testing.T) {
	type testCase struct {
		name   string
		stores func() Stores
		valid  bool
	}

	for _, toPin := range []testCase{
		{
			name:   "empty",
			stores: New,
		},
		{
			name: "missing snapshots",
			stores: func() Stores {
				s := New()
				s.SetDocuments(localfs.New(afero.NewMemMapFs()))
				s.SetMetadata(localfs.New(afero.NewMemMapFs()))
				return s
			},
		},
		{
			name: "complete",
			stores: func() Stores {
				s := New()
				s.SetDocuments(localfs.New(afero.NewMemMapFs()))
				s.SetMetadata(localfs.New(afero.NewMemMapFs()))
				s.SetSnapshots(memory.New())
				return s
			},
			valid: true,
		},
	} {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.stores().Validate()
			if testCase.valid {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, status.ErrValidation))
		})
	}

	assert.Contains(t, New().(*defaultStores).String(), "<none>")
}
