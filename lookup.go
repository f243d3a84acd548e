package gributil

import (
	"math"
	"reflect"

	"github.com/golang/glog"
)

// Lookup returns the value of key on m, or false if the message does not
// define it or it cannot be read. It never fails.
func Lookup(m Message, key string) (interface{}, bool) {
	v, err := m.Get(key)
	if err != nil {
		glog.V(2).Infof("lookup of %q failed: %v", key, err)
		return nil, false
	}
	return v, true
}

// cell returns the value of key for a summary table: nil when the lookup
// fails or the value is an array.
func cell(m Message, key string) interface{} {
	v, ok := Lookup(m, key)
	if !ok || isArray(v) {
		return nil
	}
	return v
}

func isArray(v interface{}) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// asInt64 converts integer kinds, and floats without a fractional part, to
// int64.
func asInt64(v interface{}) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == float64(int64(f)) {
			return int64(f), true
		}
	}
	return 0, false
}

func asFloat64(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// equalValues compares attribute values. Numbers compare by value whatever
// their Go type, and NaN equals NaN; everything else compares with
// reflect.DeepEqual.
func equalValues(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := asFloat64(a); ok {
		fb, ok := asFloat64(b)
		if !ok {
			return false
		}
		if math.IsNaN(fa) || math.IsNaN(fb) {
			return math.IsNaN(fa) && math.IsNaN(fb)
		}
		ia, aInt := asInt64(a)
		ib, bInt := asInt64(b)
		if aInt && bInt {
			return ia == ib
		}
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}
