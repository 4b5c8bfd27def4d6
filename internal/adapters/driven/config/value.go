package config

import (
	"strconv"
	"strings"
)

// String returns v if it is a string, otherwise "".
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int converts v to an int. Floats are truncated and strings parsed.
// Returns 0 for anything else.
func Int(v any) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float converts v to a float64. Integers are widened and strings parsed.
// Returns 0 for anything else.
func Float(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Bool converts v to a bool. Strings accept the forms strconv.ParseBool
// does. Returns false for anything else.
func Bool(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}

// EnvName returns the environment variable that overrides key:
// prefix "SHEETROWS" and key "google.spreadsheet_id" give
// "SHEETROWS_GOOGLE_SPREADSHEET_ID".
func EnvName(prefix, key string) string {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}
