// Copyright © 2018 One Concern

package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
)

// Init sets up the global exporter for metrics collection.
//
// Only the first call matters: later calls are ignored.
// Metrics may be registered before or after Init.
func Init(opts ...Option) {
	initOnce.Do(func() {
		mp = newSettings(opts...)
	})
}

// Flush all collected metrics to the exporter
func Flush() {
	if mp == nil {
		return
	}
	mp.Flush()
}

// EnsureMetrics registers lazily a struct declaring metrics at some location of the metrics tree.
//
// Only the first registration at a location is retained, and returned by subsequent calls.
// It panics if m is not a pointer to a struct, or if a different type is registered at the same location.
//
// Metrics registered before Init are exported with the default settings.
func EnsureMetrics(location string, m interface{}) interface{} {
	Init()
	return mp.EnsureMetrics(location, m)
}

// Inc increments a counter-like metric
func Inc(counter *stats.Int64Measure, tags ...map[string]string) {
	record(counter.M(1), tags)
}

// Int64 records a value
func Int64(measure *stats.Int64Measure, value int64, tags ...map[string]string) {
	record(measure.M(value), tags)
}

// Since records the milliseconds elapsed since start
func Since(start time.Time, measure *stats.Float64Measure, tags ...map[string]string) {
	record(measure.M(float64(time.Since(start).Nanoseconds())/1e6), tags)
}

func record(measurement stats.Measurement, extras []map[string]string) {
	mutators := make([]tag.Mutator, 0, 4)
	for _, extra := range extras {
		for k, v := range extra {
			mutators = append(mutators, tag.Upsert(tag.MustNewKey(k), v))
		}
	}
	_ = stats.RecordWithTags(context.Background(), mutators, measurement)
}

// Enable equips a type with a switch to collect metrics.
//
// Sample usage:
//
//	type Manager struct {
//	  metrics.Enable
//	  m *M
//	}
//
//	func NewManager() *Manager {
//	  m := &Manager{}
//	  m.EnableMetrics(true)
//	  if m.MetricsEnabled() {
//	    m.m = m.EnsureMetrics("core", &M{}).(*M)
//	  }
//	  return m
//	}
type Enable struct {
	metricsEnabled bool
}

// MetricsEnabled tells whether metrics are enabled or not
func (e Enable) MetricsEnabled() bool {
	return e.metricsEnabled
}

// EnableMetrics toggles metrics collection
func (e *Enable) EnableMetrics(enabled bool) {
	e.metricsEnabled = enabled
}

// EnsureMetrics registers a struct describing metrics to the global metrics collection.
// See EnsureMetrics.
func (e *Enable) EnsureMetrics(name string, m interface{}) interface{} {
	return EnsureMetrics(name, m)
}
