package catalog

import (
	"strconv"
	"time"
)

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// Raw is a decoded JSON object as received from the backend. Field access
// helpers coerce values to their expected primitive type and substitute a
// zero value when the field is missing, null, or of the wrong type, so an
// entity constructor never fails on a malformed record.
type Raw map[string]any

// Str returns the first present key as a string.
func (r Raw) Str(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return ""
}

// Float returns the first present key as a float64.
func (r Raw) Float(keys ...string) float64 {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return t
		case string:
			if f, err := strconv.ParseFloat(t, 64); err == nil {
				return f
			}
		case bool:
			if t {
				return 1
			}
			return 0
		}
	}
	return 0
}

// Int returns the first present key as an int.
func (r Raw) Int(keys ...string) int {
	return int(r.Float(keys...))
}

// Bool returns the first present key as a bool.
func (r Raw) Bool(keys ...string) bool {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t
		case string:
			return t == "true" || t == "1"
		case float64:
			return t != 0
		}
	}
	return false
}

// Time returns the first present key parsed as a timestamp. The backend has
// emitted several date formats over time; unparseable values yield the zero
// time rather than an error.
func (r Raw) Time(keys ...string) time.Time {
	for _, k := range keys {
		s := r.Str(k)
		if s == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// Objects returns the first present key as a slice of nested objects.
// Non-object elements are dropped.
func (r Raw) Objects(keys ...string) []Raw {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]Raw, 0, len(arr))
		for _, el := range arr {
			if m, ok := el.(map[string]any); ok {
				out = append(out, Raw(m))
			}
		}
		return out
	}
	return []Raw{}
}
