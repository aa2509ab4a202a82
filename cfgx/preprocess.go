package cfgx

import (
	"fmt"
	"reflect"
)

// Preprocessor functions transform raw input before decoding begins.
type Preprocessor func(any) (any, error)

// MapStage lifts a map transformation into a Preprocessor. The input is
// converted to a shallow-cloned map[string]any first so stages never mutate
// the caller's data.
func MapStage(fn func(map[string]any) (map[string]any, error)) Preprocessor {
	return func(input any) (any, error) {
		m, err := toMap(input)
		if err != nil {
			return nil, err
		}
		return fn(m)
	}
}

func toMap(input any) (map[string]any, error) {
	if input == nil {
		return map[string]any{}, nil
	}
	if m, ok := input.(map[string]any); ok {
		return cloneMap(m), nil
	}
	val := reflect.ValueOf(input)
	if val.Kind() != reflect.Map {
		return nil, fmt.Errorf("cfgx: expected map input, got %T", input)
	}
	result := make(map[string]any, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key, ok := iter.Key().Interface().(string)
		if !ok {
			return nil, fmt.Errorf("cfgx: cannot convert map key %T to string", iter.Key().Interface())
		}
		result[key] = iter.Value().Interface()
	}
	return result, nil
}

func cloneMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		if nested, ok := v.(map[string]any); ok {
			dst[k] = cloneMap(nested)
			continue
		}
		dst[k] = v
	}
	return dst
}
