package cfgx

import (
	"encoding"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// DefaultDecodeHooks returns the standard hook set.
func DefaultDecodeHooks() []mapstructure.DecodeHookFunc {
	return []mapstructure.DecodeHookFunc{
		TextUnmarshalerHook(),
	}
}

// TextUnmarshalerHook lets string input populate encoding.TextUnmarshaler targets,
// such as units.System.
func TextUnmarshalerHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		result := reflect.New(to).Interface()
		unmarshaller, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return data, nil
		}

		dataVal := reflect.ValueOf(data)
		text := []byte(dataVal.String())
		if from.Kind() == to.Kind() {
			if marshaller, ok := dataVal.Interface().(encoding.TextMarshaler); ok {
				marshaled, err := marshaller.MarshalText()
				if err != nil {
					return nil, err
				}
				text = marshaled
			}
		}

		if err := unmarshaller.UnmarshalText(text); err != nil {
			return nil, err
		}
		return result, nil
	}
}
