// Copyright © 2018 One Concern

package cmd

import (
	"time"

	"github.com/oneconcern/docmon/pkg/metrics"
)

type metricsFlags struct {
	m *M
}

// M describes metrics for the cmd package
type M struct {
	Usage metrics.UsageMetrics `group:"telemetry" description:"usage stats for docmon CLI"`
}

// cliUsage records a usage metric in the CLI context in a single go.
// This is intended to be used in some defer statement.
//
// Metrics are flushed as soon as the command is done.
func cliUsage(t0 time.Time, command string, err error) {
	if config != nil && config.Metrics && docmonFlags.metrics.m != nil {
		docmonFlags.metrics.m.Usage.UsedAll(t0, command)(err)
		metrics.Flush()
	}
}
