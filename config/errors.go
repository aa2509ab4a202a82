package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingOption marks required options that are absent.
	ErrMissingOption = errors.New("missing option")
	// ErrZeroValueNotAllowed marks dimensions that are present but zero.
	// Errors of this kind also match ErrMissingOption.
	ErrZeroValueNotAllowed = errors.New("zero value not allowed")
	// ErrInvalidNumericValue is returned by strict builds for numeric fields
	// that do not parse cleanly.
	ErrInvalidNumericValue = errors.New("invalid numeric value")
	// ErrUnknownPageSize is returned when page_size is not in the catalog.
	ErrUnknownPageSize = errors.New("unknown page size")
)

// OptionError reports every offending field of one kind in a single message.
type OptionError struct {
	Kind   error
	Fields []string
	msg    string
}

func newOptionError(kind error, fields []string, singular, plural string) *OptionError {
	verb := singular
	if len(fields) > 1 {
		verb = plural
	}
	return &OptionError{
		Kind:   kind,
		Fields: fields,
		msg:    fmt.Sprintf("%s %s", strings.Join(fields, ", "), verb),
	}
}

func (e *OptionError) Error() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Is makes a zero value error satisfy errors.Is(err, ErrMissingOption).
func (e *OptionError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == e.Kind {
		return true
	}
	return e.Kind == ErrZeroValueNotAllowed && target == ErrMissingOption
}

func missingOption(fields []string) error {
	return newOptionError(ErrMissingOption, fields,
		"is required, but missing.",
		"are required, but missing.")
}

func zeroValueNotAllowed(fields []string) error {
	return newOptionError(ErrZeroValueNotAllowed, fields,
		"is required, but is zero.",
		"are required, but is zero.")
}

func invalidNumericValue(fields []string) error {
	return newOptionError(ErrInvalidNumericValue, fields,
		"is not a valid number.",
		"are not valid numbers.")
}
