// Copyright © 2018 One Concern

package metrics

import (
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

type exampleMetrics struct {
	Telemetry struct {
		UsageCounts   []DocumentMetrics     `group:"usage" description:""`    // ignored
		FailureCounts []*stats.Int64Measure `group:"failures" description:""` // ignored
		TestCount     *stats.Int64Measure   `metric:"testCount" description:"number of tests"`
	} `group:"telemetry" description:""`
	Volumetry struct {
		Documents DocumentMetrics `group:"documents" description:""`
	} `group:"volumetry" description:""`
	Merges struct {
		Merge MergeMetrics
	} `group:"merges" description:""`
	Usage UsageMetrics `group:"usage" description:""`
}

func (e *exampleMetrics) IncTest() {
	Inc(e.Telemetry.TestCount, map[string]string{"kind": "test"})
}

func testExporter() view.Exporter {
	return DefaultExporter(nil)
}
