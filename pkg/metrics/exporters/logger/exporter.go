// Copyright © 2018 One Concern

// Package logger exports opencensus views to a zap logger.
package logger

import (
	"go.opencensus.io/stats/view"
	"go.uber.org/zap"
)

var _ view.Exporter = &Exporter{}

// NewExporter builds an opencensus exporter logging view data at debug level.
//
// A nil logger exports nothing.
func NewExporter(l *zap.Logger) *Exporter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Exporter{
		l: l,
	}
}

// Exporter logs opencensus view data
type Exporter struct {
	l *zap.Logger
}

// ExportView logs the view data
func (e *Exporter) ExportView(viewData *view.Data) {
	if viewData == nil || viewData.View == nil {
		return
	}
	for _, row := range viewData.Rows {
		fields := make([]zap.Field, 0, len(row.Tags)+2)
		fields = append(fields, zap.String("view", viewData.View.Name))
		for _, t := range row.Tags {
			fields = append(fields, zap.String(t.Key.Name(), t.Value))
		}
		fields = append(fields, zap.Any("data", row.Data))
		e.l.Debug("metrics", fields...)
	}
}
