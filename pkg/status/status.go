// Copyright © 2018 One Concern

// Package status exports the error kinds shared by docmon packages.
//
// Callers discriminate failures with errors.Is against these sentinels.
package status

import "github.com/oneconcern/docmon/pkg/errors"

var (
	// ErrConflict indicates unresolved conflicts: auto-merge attempted while conflicts exist,
	// save attempted while conflicts remain, or a resolution artifact still carrying markers.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates a missing version, snapshot, document, branch, field or conflict index.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates an invalid version string, field value, resolution choice or name.
	ErrValidation = errors.New("validation failed")
)
