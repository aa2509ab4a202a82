package cfgx

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

const (
	stagePreprocess = "preprocess"
	stageDecode     = "decode"
	stageValidate   = "validate"
)

var (
	// ErrPreprocess wraps failures while executing preprocessors before decoding.
	ErrPreprocess = errors.New("cfgx: preprocess stage failed")
	// ErrDecode wraps mapstructure decode failures.
	ErrDecode = errors.New("cfgx: decode stage failed")
	// ErrValidate wraps validator-reported errors.
	ErrValidate = errors.New("cfgx: validate stage failed")
	// ErrOption indicates a misconfigured builder option (e.g., duplicate validator).
	ErrOption = errors.New("cfgx: option configuration failed")
)

// StageError describes a failure in a specific build stage along with contextual metadata.
type StageError struct {
	Stage string
	Base  error
	Err   error
	Meta  map[string]any
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether the target matches either the stage sentinel or wrapped error.
func (e *StageError) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if errors.Is(e.Base, target) {
		return true
	}
	return errors.Is(e.Err, target)
}

func stageError(stage string, base, err error, meta map[string]any) error {
	if err == nil {
		return nil
	}
	return &StageError{
		Stage: stage,
		Base:  base,
		Err:   err,
		Meta:  meta,
	}
}

type namedPreprocessor struct {
	name string
	fn   Preprocessor
}

type builder[T any] struct {
	input         any
	preprocessors []namedPreprocessor
	decoderConfig mapstructure.DecoderConfig
	validator     Validator[T]
	optionErr     error
}

func newBuilder[T any](input any) *builder[T] {
	return &builder[T]{
		input: input,
		decoderConfig: mapstructure.DecoderConfig{
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
		},
	}
}

// Build runs preprocessors, decode hooks, mapstructure decode and validation in that order.
// The returned error wraps one of the ErrPreprocess/ErrDecode/ErrValidate sentinels so callers
// can branch via errors.Is while still reaching StageError metadata via errors.As.
func Build[T any](input any, opts ...Option[T]) (T, error) {
	b := newBuilder[T](input)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.optionErr != nil {
		var zero T
		return zero, b.optionErr
	}
	return b.build()
}

func (b *builder[T]) setOptionError(format string, args ...any) {
	if b.optionErr != nil {
		return
	}
	err := fmt.Errorf(format, args...)
	b.optionErr = fmt.Errorf("%w: %w", ErrOption, err)
}

func (b *builder[T]) build() (T, error) {
	var result T

	current, err := b.applyPreprocessors(b.input)
	if err != nil {
		return result, err
	}

	if err := b.decode(current, &result); err != nil {
		var zero T
		return zero, err
	}

	if err := b.runValidator(&result); err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

func (b *builder[T]) applyPreprocessors(input any) (any, error) {
	current := input
	for idx, pre := range b.preprocessors {
		if pre.fn == nil {
			continue
		}
		next, err := pre.fn(current)
		if err != nil {
			meta := map[string]any{"preprocessor_index": idx}
			if pre.name != "" {
				meta["preprocessor"] = pre.name
			}
			return nil, stageError(stagePreprocess, ErrPreprocess, err, meta)
		}
		current = next
	}
	return current, nil
}

func (b *builder[T]) decode(input any, result *T) error {
	target := prepareDecodeTarget(result)

	config := b.decoderConfig
	config.Result = target
	config.DecodeHook = b.composeDecodeHooks()
	decoder, err := mapstructure.NewDecoder(&config)
	if err != nil {
		return stageError(stageDecode, ErrDecode, err, map[string]any{"reason": "decoder_config"})
	}
	if err := decoder.Decode(input); err != nil {
		return stageError(stageDecode, ErrDecode, err, nil)
	}
	return nil
}

func (b *builder[T]) composeDecodeHooks() mapstructure.DecodeHookFunc {
	hooks := DefaultDecodeHooks()
	switch len(hooks) {
	case 0:
		return nil
	case 1:
		return hooks[0]
	default:
		return mapstructure.ComposeDecodeHookFunc(hooks...)
	}
}

func prepareDecodeTarget[T any](result *T) any {
	val := reflect.ValueOf(result).Elem()
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return val.Interface()
	}
	return val.Addr().Interface()
}

func (b *builder[T]) runValidator(result *T) error {
	if b.validator == nil {
		return nil
	}
	if err := b.validator(result); err != nil {
		return stageError(stageValidate, ErrValidate, err, nil)
	}
	return nil
}
