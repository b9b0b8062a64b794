package views

import (
	"fmt"
	"strconv"
	"strings"
)

// FlattenPaths turns an arbitrarily nested object into a flat table of
// dot-joined key paths to display strings, built once per render. Maps are
// recursed into; scalars and arrays are leaves. Templates look values up by
// path and skip anything unmatched, which keeps the dashboard rendering
// decoupled from the exact shape of the analytics payload.
func FlattenPaths(data map[string]any) map[string]string {
	out := make(map[string]string)
	flattenInto(out, data, "")
	return out
}

func flattenInto(out map[string]string, obj map[string]any, prefix string) {
	for key, value := range obj {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			flattenInto(out, nested, fullKey)
			continue
		}
		out[fullKey] = leafString(value)
	}
}

func leafString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = leafString(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
