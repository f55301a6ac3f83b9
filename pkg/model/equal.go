// Copyright © 2018 One Concern

package model

import (
	"fmt"
	"reflect"
	"strings"
)

// Equal compares two metadata values.
//
// Numbers compare by value regardless of their concrete type, lists compare element-wise and
// nested maps compare regardless of the order of their keys. An absent value is nil.
func Equal(a, b interface{}) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}

	switch ta := a.(type) {
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	case []interface{}:
		tb, ok := b.([]interface{})
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !Equal(ta[i], tb[i]) {
				return false
			}
		}
		return true
	case *Metadata:
		tb, ok := b.(*Metadata)
		if !ok || ta.Len() != tb.Len() {
			return false
		}
		for _, k := range ta.Keys() {
			vb, ok := tb.Get(k)
			if !ok || !Equal(ta.Value(k), vb) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	if m, ok := v.(*Metadata); ok {
		return m == nil
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// FormatValue renders a metadata value in YAML flow style, e.g. [a, b] or {k: v}.
func FormatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case []interface{}:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Metadata:
		if t == nil {
			return "null"
		}
		parts := make([]string, 0, t.Len())
		for _, k := range t.Keys() {
			parts = append(parts, k+": "+FormatValue(t.Value(k)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}
