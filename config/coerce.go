package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-lasercut/logger"
)

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+(_\d+)*)?(\.\d+(_\d+)*)?([eE][+-]?\d+)?`)

// ParseFloat reads the longest numeric prefix of s, ignoring leading
// whitespace and underscores between digits. Text with no numeric prefix
// yields 0. clean reports whether the whole string was a number.
func ParseFloat(s string) (value float64, clean bool) {
	trimmed := strings.TrimSpace(s)
	prefix := leadingFloat.FindString(trimmed)
	if !strings.ContainsAny(prefix, "0123456789") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(prefix, "_", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, prefix == trimmed || prefix+"." == trimmed
}

// coerceFloat converts a raw option value into a float64. ok is false when
// the value had to fall back to zero or was not fully numeric.
func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
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
	case json.Number:
		return ParseFloat(n.String())
	case string:
		return ParseFloat(n)
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	default:
		return 0, false
	}
}

func coerceFloats(log logger.Logger, strict bool) func(map[string]any) (map[string]any, error) {
	return func(m map[string]any) (map[string]any, error) {
		var invalid []string
		for _, key := range floatFields {
			raw, ok := m[key]
			if !ok {
				continue
			}
			v, clean := coerceFloat(raw)
			if !clean {
				invalid = append(invalid, key)
				log.Warn("numeric option did not parse cleanly", "field", key, "value", raw, "coerced", v)
			}
			m[key] = v
		}
		if strict && len(invalid) > 0 {
			return nil, invalidNumericValue(invalid)
		}
		return m, nil
	}
}

// coerceScalars normalizes metadata and the string options. Values that
// cannot be represented are discarded so the defaults (or the required
// check) apply, matching how unknown units are handled.
func coerceScalars(log logger.Logger) func(map[string]any) (map[string]any, error) {
	return func(m map[string]any) (map[string]any, error) {
		if raw, ok := m[KeyMetadata]; ok {
			if b, ok := coerceBool(raw); ok {
				m[KeyMetadata] = b
			} else {
				log.Warn("discarding metadata option", "value", raw)
				delete(m, KeyMetadata)
			}
		}
		for _, key := range stringFields {
			raw, ok := m[key]
			if !ok {
				continue
			}
			if s, ok := coerceString(raw); ok {
				m[key] = s
			} else {
				log.Warn("discarding non scalar option", "field", key, "type", fmt.Sprintf("%T", raw))
				delete(m, key)
			}
		}
		return m, nil
	}
}

func coerceBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case *bool:
		if b == nil {
			return false, false
		}
		return *b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "t", "true", "y", "yes", "on":
			return true, true
		case "0", "f", "false", "n", "no", "off":
			return false, true
		}
	}
	return false, false
}

func coerceString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	case fmt.Stringer:
		return s.String(), true
	case bool, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(s), true
	default:
		return "", false
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
