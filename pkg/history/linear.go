// Copyright © 2018 One Concern

package history

import (
	"github.com/oneconcern/docmon/pkg/semver"
)

// LinearAncestor picks the highest version strictly lower than both v1 and v2.
//
// This assumes a totally ordered history and is only correct for linear histories.
// It defaults to 0.0.0 when no recorded version qualifies, or when v1 or v2 is not a valid version.
func LinearAncestor(versions []string, v1, v2 string) string {
	if !semver.IsValid(v1) || !semver.IsValid(v2) {
		return semver.Zero
	}
	ancestor := ""
	for _, v := range versions {
		if !semver.IsValid(v) || !semver.Less(v, v1) || !semver.Less(v, v2) {
			continue
		}
		if ancestor == "" || semver.Less(ancestor, v) {
			ancestor = v
		}
	}
	if ancestor == "" {
		return semver.Zero
	}
	return ancestor
}
