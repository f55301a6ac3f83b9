// Copyright © 2018 One Concern

package merge

import "time"

// Option configures conflict detection and merges
type Option func(*options)

type options struct {
	pairwise bool
	now      func() time.Time
}

func defaultOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// PairwiseRegions reports one content conflict per overlapping pair of local and remote edits,
// instead of coalescing transitively overlapping edits into disjoint regions.
//
// The reported regions may overlap. This option only affects Detect: resolution sessions always
// work on coalesced regions.
func PairwiseRegions() Option {
	return func(o *options) {
		o.pairwise = true
	}
}

// WithClock sets the clock used to stamp the updated_at field of merge results
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
