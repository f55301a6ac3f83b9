// Copyright © 2018 One Concern

package metrics

import (
	"fmt"
	"path"
	"reflect"
	"strings"
)

// metricSpec is decoded from the tags decorating a struct field:
//   - metric: the metric name. Fields without a metric tag are scanned for nested metrics
//   - group: an additional path to the metric (e.g. root/path/mymetrics/{metric})
//   - unit: milliseconds, bytes or lines. Metrics without a unit are counters
//   - description: the description of the metric and its views
//   - extraviews: additional views, among count, sum and lastvalue
//   - tags: the tag keys grouping the views
type metricSpec struct {
	name        string
	group       string
	unit        string
	description string
	extraViews  []string
	tagKeys     []string
}

func specOf(field reflect.StructField) metricSpec {
	return metricSpec{
		name:        field.Tag.Get("metric"),
		group:       field.Tag.Get("group"),
		unit:        field.Tag.Get("unit"),
		description: field.Tag.Get("description"),
		extraViews:  splitTag(field.Tag.Get("extraviews")),
		tagKeys:     splitTag(field.Tag.Get("tags")),
	}
}

func splitTag(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

type measureAdder func(field reflect.Value, group string, spec metricSpec)

// registerStruct allocates all measures declared in the struct pointed to by m
func registerStruct(location string, m interface{}, add measureAdder) {
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("metrics must be declared by a pointer to a struct, got: %T", m))
	}
	walkStruct(location, rv.Elem(), add)
}

// walkStruct visits an addressable struct. Slices and maps are ignored.
func walkStruct(parent string, v reflect.Value, add measureAdder) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		spec := specOf(t.Field(i))
		group := path.Join(parent, spec.group)

		switch {
		case spec.name != "" && field.Kind() == reflect.Ptr:
			add(field, group, spec)
		case spec.name != "":
			continue
		case field.Kind() == reflect.Struct:
			walkStruct(group, field, add)
		case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			walkStruct(group, field.Elem(), add)
		}
	}
}
