// Copyright © 2018 One Concern

package metrics

import (
	"time"

	"go.opencensus.io/stats"
)

// DocumentMetrics is a common set of metrics reporting about document activity
type DocumentMetrics struct {
	Count *stats.Int64Measure `metric:"documentCount" description:"number of documents" extraviews:"sum" tags:"kind,operation"`
	Bytes *stats.Int64Measure `metric:"documentSize" unit:"bytes" description:"size of documents" extraviews:"sum" tags:"kind,operation"`
}

func (f *DocumentMetrics) tags(operation string) map[string]string {
	return map[string]string{"kind": "document", "operation": operation}
}

// Inc increments the counter for documents
func (f *DocumentMetrics) Inc(operation string) {
	Inc(f.Count, f.tags(operation))
}

// Size measures the size of a document. Zero sizes are not recorded.
func (f *DocumentMetrics) Size(size int64, operation string) {
	if size == 0 {
		return
	}
	Int64(f.Bytes, size, f.tags(operation))
}

// MergeMetrics is a common set of metrics reporting about three-way merges
type MergeMetrics struct {
	Count     *stats.Int64Measure   `metric:"mergeCount" description:"number of merges" tags:"kind,outcome"`
	Conflicts *stats.Int64Measure   `metric:"conflicts" description:"number of conflicts detected" extraviews:"sum" tags:"kind,scope"`
	Lines     *stats.Int64Measure   `metric:"conflictLines" unit:"lines" description:"base lines covered by a content conflict" tags:"kind"`
	Timing    *stats.Float64Measure `metric:"timing" unit:"milliseconds" description:"duration of a merge" tags:"kind,outcome"`
}

// Outcomes of a merge
const (
	OutcomeMerged    = "merged"
	OutcomeConflicts = "conflicts"
	OutcomeFailed    = "failed"
)

func (n *MergeMetrics) tags(key, value string) map[string]string {
	return map[string]string{"kind": "merge", key: value}
}

// Merged records a merge attempt and its outcome
func (n *MergeMetrics) Merged(start time.Time, outcome string) {
	Since(start, n.Timing, n.tags("outcome", outcome))
	Inc(n.Count, n.tags("outcome", outcome))
}

// Conflicted records the number of conflicts detected in some scope (metadata or content).
// Zero counts are not recorded.
func (n *MergeMetrics) Conflicted(count int, scope string) {
	if count == 0 {
		return
	}
	Int64(n.Conflicts, int64(count), n.tags("scope", scope))
}

// ConflictLines records the number of base lines spanned by a content conflict
func (n *MergeMetrics) ConflictLines(lines int) {
	Int64(n.Lines, int64(lines), map[string]string{"kind": "merge"})
}

// UsageMetrics is a common set of metrics reporting about usage
type UsageMetrics struct {
	Count    *stats.Int64Measure   `metric:"usageCount" description:"number of calls" tags:"kind,method"`
	Failures *stats.Int64Measure   `metric:"usageFailures" description:"number of failed calls" tags:"kind,method"`
	Timing   *stats.Float64Measure `metric:"timing" unit:"milliseconds" description:"duration of a call" tags:"kind,method"`
}

func (u *UsageMetrics) tags(method string) map[string]string {
	return map[string]string{"kind": "usage", "method": method}
}

// Inc records the usage of some method, without timings or failure reporting
func (u *UsageMetrics) Inc(method string) {
	Inc(u.Count, u.tags(method))
}

// Used records usage of some instrumented entry point.
//
// Example:
//
//	var myUsageMetrics = &UsageMetrics{}
//
//	func (m *myType) MyInstrumentedFunc() {
//	  defer myUsageMetrics.Used(time.Now(), "MyInstrumentedFunc")
//	  ...
//	  err := doSomeWork()
//	  if err != nil {
//	    myUsageMetrics.Failed()
//	    ...
//	  }
//	}
func (u *UsageMetrics) Used(start time.Time, method string) {
	Since(start, u.Timing, u.tags(method))
	Inc(u.Count, u.tags(method))
}

// UsedAll records usage of some instrumented entry point with failures, in one go.
//
// Example:
//
//	var myUsageMetrics = &UsageMetrics{}
//	var err error
//
//	func (m *myType) MyInstrumentedFunc() {
//	  defer func(start time.Time) {
//	    myUsageMetrics.UsedAll(start, "MyInstrumentedFunc")(err)
//	  }(time.Now())
//	  ...
//	  err = doSomeWork()
//	  if err != nil {
//	    return
//	  }
//	}
func (u *UsageMetrics) UsedAll(start time.Time, method string) func(error) {
	return func(err error) {
		Since(start, u.Timing, u.tags(method))
		Inc(u.Count, u.tags(method))
		if err != nil {
			Inc(u.Failures, u.tags(method))
			return
		}
	}
}

// Failed records a failure on some instrumented entry point
func (u *UsageMetrics) Failed(method string) {
	Inc(u.Failures, u.tags(method))
}
