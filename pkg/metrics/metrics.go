// Copyright © 2018 One Concern

// Package metrics declares opencensus measures and views from annotated structs,
// and records measurements for docmon operations.
package metrics

import (
	"path"
	"reflect"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/oneconcern/docmon/pkg/metrics/exporters/logger"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.uber.org/zap"
)

var (
	// global settings for metrics
	mp       *settings
	initOnce sync.Once

	int64Type   = reflect.TypeOf(&stats.Int64Measure{})
	float64Type = reflect.TypeOf(&stats.Float64Measure{})
)

// unitSpec tells how a unit declared in struct tags is measured and aggregated by default
type unitSpec struct {
	unit        string
	aggregation func() *view.Aggregation
	suffix      string
}

var knownUnits = map[string]unitSpec{
	"": {unit: stats.UnitDimensionless, aggregation: view.Count, suffix: "counter"},
	"milliseconds": {unit: stats.UnitMilliseconds, suffix: "in milliseconds", aggregation: func() *view.Aggregation {
		return view.Distribution(1, 5, 10, 50, 100, 300, 500, 700, 900, 1000, 2000, 5000, 10000)
	}},
	// documents are mostly small
	"bytes": {unit: stats.UnitBytes, suffix: "in bytes", aggregation: func() *view.Aggregation {
		return view.Distribution(100, 500, units.KiB, 5*units.KiB, 10*units.KiB, 50*units.KiB, 100*units.KiB, 500*units.KiB, units.MiB, 10*units.MiB)
	}},
	"lines": {unit: "lines", suffix: "in lines", aggregation: func() *view.Aggregation {
		return view.Distribution(1, 2, 5, 10, 20, 50, 100, 500, 1000)
	}},
}

var extraAggregations = map[string]func() *view.Aggregation{
	"count":     view.Count,
	"sum":       view.Sum,
	"lastvalue": view.LastValue,
}

type settings struct {
	basePath string
	exporter view.Exporter
	period   time.Duration

	mu       sync.Mutex
	modules  map[string]interface{}
	measures []stats.Measure
	views    []*view.View
}

// DefaultExporter returns a metrics exporter logging views to l at debug level
func DefaultExporter(l *zap.Logger) view.Exporter {
	return logger.NewExporter(l)
}

func newSettings(opts ...Option) *settings {
	s := &settings{modules: make(map[string]interface{})}
	for _, apply := range opts {
		apply(s)
	}
	if s.exporter == nil {
		s.exporter = DefaultExporter(nil)
	}

	view.RegisterExporter(s.exporter)
	if s.period >= time.Second {
		view.SetReportingPeriod(s.period)
	}
	return s
}

func (s *settings) EnsureMetrics(location string, m interface{}) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	location = path.Join(s.basePath, location)

	if existing, ok := s.modules[location]; ok {
		if reflect.TypeOf(existing) != reflect.TypeOf(m) {
			panic("metrics module " + location + " is already registered with a different type")
		}
		return existing
	}
	registerStruct(location, m, s.addMeasure)
	s.modules[location] = m
	return m
}

// Flush exports the current data of all registered views
func (s *settings) Flush() {
	now := time.Now()
	for _, v := range s.views {
		rows, err := view.RetrieveData(v.Name)
		if err != nil {
			continue
		}
		s.exporter.ExportView(&view.Data{View: v, Start: now, End: now, Rows: rows})
	}
}

// addMeasure allocates the measure for a tagged struct field and registers its views.
//
// The default view aggregates by unit: counters are counted, other units get a distribution.
// Extra views are declared with the extraviews tag, e.g. extraviews:"sum,lastvalue".
func (s *settings) addMeasure(field reflect.Value, group string, spec metricSpec) {
	name := path.Join(group, spec.name)
	u, ok := knownUnits[spec.unit]
	if !ok {
		u = knownUnits[""]
	}
	description := spec.description
	if description == "" {
		description = name + " " + u.suffix
	}

	var measure stats.Measure
	switch field.Type() {
	case int64Type:
		mi := stats.Int64(name, description, u.unit)
		field.Set(reflect.ValueOf(mi))
		measure = mi
	case float64Type:
		mf := stats.Float64(name, description, u.unit)
		field.Set(reflect.ValueOf(mf))
		measure = mf
	default:
		return
	}
	s.measures = append(s.measures, measure)

	keys := make([]tag.Key, 0, len(spec.tagKeys))
	for _, k := range spec.tagKeys {
		keys = append(keys, tag.MustNewKey(k))
	}

	s.addView(name, description, measure, u.aggregation(), keys)
	for _, extra := range spec.extraViews {
		if aggregation, ok := extraAggregations[extra]; ok {
			s.addView(name+" ["+extra+"]", description+" ["+extra+"]", measure, aggregation(), keys)
		}
	}
}

func (s *settings) addView(name, description string, measure stats.Measure, aggregation *view.Aggregation, keys []tag.Key) {
	v := &view.View{
		Name:        name,
		Description: description,
		Measure:     measure,
		Aggregation: aggregation,
		TagKeys:     keys,
	}
	s.views = append(s.views, v)
	// views registered twice under the same name are ignored by opencensus
	_ = view.Register(v)
}
