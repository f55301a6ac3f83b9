// Copyright © 2018 One Concern

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestExportView(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	exporter := NewExporter(zap.New(core))

	key := tag.MustNewKey("outcome")
	exporter.ExportView(&view.Data{
		View: &view.View{
			Name:    "merges",
			Measure: stats.Int64("merges", "merges", stats.UnitDimensionless),
		},
		Rows: []*view.Row{
			{Tags: []tag.Tag{{Key: key, Value: "merged"}}, Data: &view.CountData{Value: 2}},
		},
	})
	exporter.ExportView(nil)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "merges", fields["view"])
		assert.Equal(t, "merged", fields["outcome"])
	}

	assert.NotPanics(t, func() {
		NewExporter(nil).ExportView(&view.Data{View: &view.View{Name: "x"}})
	})
}
