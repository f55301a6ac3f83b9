// Copyright © 2018 One Concern

// Package semver parses, compares and increments the three-component
// semantic versions used to tag document snapshots.
package semver

import (
	"sort"

	bsemver "github.com/blang/semver"
	"github.com/oneconcern/docmon/pkg/status"
)

// Zero is the version assumed for documents which do not declare any
const Zero = "0.0.0"

// Kind of version increment
type Kind string

const (
	// Major increments the major component and resets the others
	Major Kind = "major"
	// Minor increments the minor component and resets the patch component
	Minor Kind = "minor"
	// Patch increments the patch component
	Patch Kind = "patch"
)

// IsValid checks the value of an increment kind
func (k Kind) IsValid() bool {
	switch k {
	case Major, Minor, Patch:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a string into an increment kind. The empty string stands for Patch.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return Patch, nil
	}
	k := Kind(s)
	if !k.IsValid() {
		return "", status.ErrValidation.WrapMessage("invalid version increment %q: expect one of major, minor, patch", s)
	}
	return k, nil
}

// Parse a version string, which must be of the form X.Y.Z with optional pre-release and build suffixes
func Parse(v string) (bsemver.Version, error) {
	parsed, err := bsemver.Parse(v)
	if err != nil {
		return bsemver.Version{}, status.ErrValidation.WrapMessage("invalid semantic version %q", v).Wrap(err)
	}
	return parsed, nil
}

// IsValid tells if a version string is a valid semantic version
func IsValid(v string) bool {
	_, err := bsemver.Parse(v)
	return err == nil
}

// Compare two versions: -1 when a < b, 0 when a == b, +1 when a > b
func Compare(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// Max yields the highest of two versions
func Max(a, b string) (string, error) {
	c, err := Compare(a, b)
	if err != nil {
		return "", err
	}
	if c >= 0 {
		return a, nil
	}
	return b, nil
}

// Next computes the version following v for a given increment kind.
//
// Pre-release and build suffixes are dropped.
func Next(v string, kind Kind) (string, error) {
	if !kind.IsValid() {
		return "", status.ErrValidation.WrapMessage("invalid version increment %q", kind)
	}
	parsed, err := Parse(v)
	if err != nil {
		return "", err
	}
	next := bsemver.Version{Major: parsed.Major, Minor: parsed.Minor, Patch: parsed.Patch}
	switch kind {
	case Major:
		next.Major++
		next.Minor = 0
		next.Patch = 0
	case Minor:
		next.Minor++
		next.Patch = 0
	case Patch:
		next.Patch++
	}
	return next.String(), nil
}

// NextPatch is a shorthand for Next(v, Patch)
func NextPatch(v string) (string, error) {
	return Next(v, Patch)
}

// Sort a slice of versions in ascending order. Invalid versions sort first, in lexical order.
func Sort(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return Less(versions[i], versions[j])
	})
}

// Less compares two version strings, ordering invalid versions before valid ones
func Less(a, b string) bool {
	va, errA := bsemver.Parse(a)
	vb, errB := bsemver.Parse(b)
	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return true
	case errB != nil:
		return false
	default:
		return va.LT(vb)
	}
}
