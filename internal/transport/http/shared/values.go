package shared

import "encoding/json"

// Accessors for normalized validation output. Schemas guarantee presence and
// type for their declared fields, so handlers use these to lift values out of
// the generic map without re-checking.

func Str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func Int64(m map[string]any, key string) (int64, bool) {
	switch n := m[key].(type) {
	case json.Number:
		v, err := n.Int64()
		return v, err == nil
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func Float64(m map[string]any, key string) (float64, bool) {
	switch n := m[key].(type) {
	case json.Number:
		v, err := n.Float64()
		return v, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
