package cfgx

// Option allows callers to tweak builder behavior before decoding a config struct.
type Option[T any] func(*builder[T])

// Validator represents the validation hook invoked after decoding completes.
type Validator[T any] func(*T) error

// WithStage registers a named preprocessor. The name is reported in StageError metadata.
func WithStage[T any](name string, pre Preprocessor) Option[T] {
	return func(b *builder[T]) {
		if pre == nil {
			return
		}
		b.preprocessors = append(b.preprocessors, namedPreprocessor{name: name, fn: pre})
	}
}

// WithWeakTyping toggles WeaklyTypedInput behavior.
func WithWeakTyping[T any](enabled bool) Option[T] {
	return func(b *builder[T]) {
		b.decoderConfig.WeaklyTypedInput = enabled
	}
}

// WithMatchName overrides how map keys are matched to field names. The
// mapstructure default folds case.
func WithMatchName[T any](match func(mapKey, fieldName string) bool) Option[T] {
	return func(b *builder[T]) {
		if match == nil {
			return
		}
		b.decoderConfig.MatchName = match
	}
}

// ExactMatch matches map keys to field names byte for byte.
func ExactMatch(mapKey, fieldName string) bool {
	return mapKey == fieldName
}

// WithTagName overrides the struct tag key mapstructure uses while decoding.
func WithTagName[T any](tag string) Option[T] {
	return func(b *builder[T]) {
		if tag == "" {
			return
		}
		b.decoderConfig.TagName = tag
	}
}

// WithValidator registers a validator function invoked after decoding. Only one validator is allowed.
func WithValidator[T any](validator Validator[T]) Option[T] {
	return func(b *builder[T]) {
		if validator == nil {
			return
		}
		if b.validator != nil {
			b.setOptionError("validator already registered")
			return
		}
		b.validator = validator
	}
}
