// Copyright © 2018 One Concern

package snapshot

import (
	"context"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/status"
	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v2"
)

// Store persists and retrieves document snapshots
type Store interface {
	// Put stores a new snapshot of identity.
	//
	// The store assigns the snapshot reference and the sequence number of the entry, which is returned.
	// Storing a version which exists already fails with a validation error.
	Put(ctx context.Context, identity model.Identity, snapshot *model.Snapshot) (model.VersionEntry, error)

	// Get a snapshot. It fails with a not found error when the version does not exist.
	Get(ctx context.Context, identity model.Identity, version string) (*model.Snapshot, error)

	// Has tells if a snapshot exists
	Has(ctx context.Context, identity model.Identity, version string) (bool, error)

	// List the version entries of identity, in storage order
	List(ctx context.Context, identity model.Identity) (model.VersionEntries, error)

	String() string
}

// Prepare assigns the storage attributes of a new snapshot entry
func Prepare(snapshot *model.Snapshot, sequence uint64) *model.Snapshot {
	prepared := snapshot.Clone()
	prepared.Entry.Sequence = sequence
	if prepared.Entry.Snapshot == "" {
		prepared.Entry.Snapshot = ksuid.New().String()
	}
	return prepared
}

// Marshal a snapshot as a YAML payload
func Marshal(snapshot *model.Snapshot) ([]byte, error) {
	return yaml.Marshal(snapshot)
}

// Unmarshal a snapshot from a YAML payload
func Unmarshal(payload []byte) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := yaml.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}
	if snapshot.Metadata == nil {
		snapshot.Metadata = model.NewMetadata()
	}
	return &snapshot, nil
}

// ErrVersionExists builds the error returned when storing a version twice
func ErrVersionExists(identity model.Identity, version string) error {
	return status.ErrValidation.WrapMessage("version %s of %s exists already", version, identity)
}

// ErrVersionNotFound builds the error returned when a version does not exist
func ErrVersionNotFound(identity model.Identity, version string) error {
	return status.ErrNotFound.WrapMessage("version %s of %s", version, identity)
}
