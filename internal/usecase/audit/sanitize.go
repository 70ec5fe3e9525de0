package audit

import (
	"encoding/json"
	"reflect"
)

// Sanitize strips a context/details document down to what can be persisted:
// nil values, empty nested objects and empty arrays are removed recursively,
// and values the JSON encoder cannot represent (channels, functions, NaN ...)
// are dropped rather than failing the whole record. Returns nil when nothing
// survives so empty documents are stored as SQL NULL.
func Sanitize(doc map[string]any) map[string]any {
	cleaned, ok := sanitizeValue(doc)
	if !ok {
		return nil
	}
	m, ok := cleaned.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	return m
}

func sanitizeValue(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if cleaned, ok := sanitizeValue(inner); ok {
				out[k] = cleaned
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case []any:
		out := make([]any, 0, len(val))
		for _, inner := range val {
			if cleaned, ok := sanitizeValue(inner); ok {
				out = append(out, cleaned)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	default:
		// Typed nil pointers arrive as non-nil interfaces; treat them the
		// same as plain nil.
		rv := reflect.ValueOf(val)
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return nil, false
			}
			return sanitizeValue(rv.Elem().Interface())
		}
		if _, err := json.Marshal(val); err != nil {
			return nil, false
		}
		return val, true
	}
}
