package source

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-lasercut/config"
)

type StringTransformer func(string) (string, error)

func TrimSpace(value string) (string, error) {
	return strings.TrimSpace(value), nil
}

func ToLower(value string) (string, error) {
	return strings.ToLower(value), nil
}

func ToUpper(value string) (string, error) {
	return strings.ToUpper(value), nil
}

// DefaultTransformers normalizes the enumerated string options so that
// " letter " from a file or "IN" from the environment still match.
func DefaultTransformers() map[string][]StringTransformer {
	return map[string][]StringTransformer{
		config.KeyPageSize:   {TrimSpace, ToUpper},
		config.KeyUnits:      {TrimSpace, ToLower},
		config.KeyPageLayout: {TrimSpace, ToLower},
	}
}

func (l *Loader) applyTransformers(raw map[string]any) (map[string]any, error) {
	if len(l.transformers) == 0 {
		return raw, nil
	}

	for key, fns := range l.transformers {
		value, ok := raw[key].(string)
		if !ok {
			continue
		}
		out, err := runTransformers(key, value, fns)
		if err != nil {
			return nil, err
		}
		raw[key] = out
	}
	return raw, nil
}

func runTransformers(key, value string, fns []StringTransformer) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(fmt.Sprintf("transformer panic: %v", r), errors.CategoryOperation).
				WithTextCode("TRANSFORMER_PANIC").
				WithMetadata(map[string]any{
					"key": key,
				})
		}
	}()

	out = value
	for i, fn := range fns {
		out, err = fn(out)
		if err != nil {
			return "", errors.Wrap(err, errors.CategoryBadInput, "string transformer failed").
				WithTextCode("TRANSFORMER_FAILED").
				WithMetadata(map[string]any{
					"key":               key,
					"transformer_index": i,
				})
		}
	}
	return out, nil
}
