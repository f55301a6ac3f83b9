// Copyright © 2018 One Concern

package merge

import (
	"time"

	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/semver"
)

// Result is a fully resolved merge, eligible for storage.
//
// A Result is only obtained from a successful AutoMerge, a finished Session or a resolved artifact.
type Result struct {
	doc           *model.Document
	parents       []model.ParentRef
	BaseVersion   string
	LocalVersion  string
	RemoteVersion string
}

// Document yields a copy of the merged document
func (r *Result) Document() *model.Document {
	return r.doc.Clone()
}

// Version of the merged document
func (r *Result) Version() string {
	return r.doc.Version()
}

// Parents yields the local and remote versions the merge derives from.
//
// A result parsed from a conflict artifact has no known parents.
func (r *Result) Parents() []model.ParentRef {
	return append([]model.ParentRef(nil), r.parents...)
}

// ResultVersion is the version of a merge: the patch increment of the higher of both sides.
//
// The result is strictly greater than both versions.
func ResultVersion(localVersion, remoteVersion string) (string, error) {
	highest, err := semver.Max(localVersion, remoteVersion)
	if err != nil {
		return "", err
	}
	return semver.NextPatch(highest)
}

// stamp sets the system fields of a merged document
func stamp(meta *model.Metadata, localVersion, remoteVersion string, now time.Time) error {
	version, err := ResultVersion(localVersion, remoteVersion)
	if err != nil {
		return err
	}
	meta.Set(model.FieldUpdatedAt, now.Format(model.DateFormat))
	meta.Set(model.FieldVersion, version)
	return nil
}
