package gributil

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// AttributeFilter maps attribute names to accepted values. A message passes
// when every entry matches. An AnyOf value, or any other slice except
// []byte, accepts a message whose attribute equals one of its elements; any
// other value must equal the attribute.
type AttributeFilter map[string]interface{}

// AnyOf is a set of accepted values for one attribute.
type AnyOf []interface{}

// Match reports whether m satisfies every entry of f. A message that lacks a
// filtered attribute does not match.
func (f AttributeFilter) Match(m Message) bool {
	keys := maps.Keys(f)
	slices.Sort(keys)
	for _, key := range keys {
		got, ok := Lookup(m, key)
		if !ok || !accepts(f[key], got) {
			return false
		}
	}
	return true
}

func accepts(want, got interface{}) bool {
	switch w := want.(type) {
	case AnyOf:
		for _, v := range w {
			if equalValues(v, got) {
				return true
			}
		}
		return false
	case []byte:
		return equalValues(w, got)
	}

	rv := reflect.ValueOf(want)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if equalValues(rv.Index(i).Interface(), got) {
				return true
			}
		}
		return false
	}
	return equalValues(want, got)
}

// Filter returns the messages that satisfy f, in their original order. An
// empty filter keeps every message. The result can be filtered again to
// narrow it further.
func Filter(msgs []Message, f AttributeFilter) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	glog.Infof("After filtering, %d of %d GRIB messages left.", len(out), len(msgs))
	return out
}

// ParseFilter builds a filter from expressions of the form key=value or
// key=v1,v2,... (any of the values). Values that parse as integers or floats
// are matched numerically, everything else as strings.
func ParseFilter(exprs []string) (AttributeFilter, error) {
	out := AttributeFilter{}
	for _, expr := range exprs {
		key, raw, ok := strings.Cut(expr, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Wrapf(ErrInvalidArgument, "filter %q is not of the form key=value", expr)
		}
		if _, dup := out[key]; dup {
			return nil, errors.Wrapf(ErrInvalidArgument, "filter key %q given more than once", key)
		}

		parts := strings.Split(raw, ",")
		if len(parts) == 1 {
			out[key] = parseScalar(parts[0])
			continue
		}
		set := make(AnyOf, 0, len(parts))
		for _, p := range parts {
			set = append(set, parseScalar(p))
		}
		out[key] = set
	}
	return out, nil
}

func parseScalar(s string) interface{} {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
