// Copyright © 2018 One Concern

package core

import (
	"github.com/oneconcern/docmon/pkg/metrics"
)

// M describes metrics for the core package
type M struct {
	Volume struct {
		Documents metrics.DocumentMetrics `group:"documents" description:"metrics about live documents"`
		Versions  metrics.DocumentMetrics `group:"versions" description:"metrics about stored versions"`
	} `group:"volumetry" description:""`
	Merges metrics.MergeMetrics `group:"merges" description:"metrics about three-way merges"`
	Usage  metrics.UsageMetrics `group:"telemetry" description:"usage stats for the core package"`
}
