package models

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed    = errors.New("malformed payload")
	ErrMissingField = errors.New("missing required field")
	ErrTypeMismatch = errors.New("type mismatch")
)

// DecodeError is the only error the schema produces. Field holds the path of
// the offending value, e.g. "user_id" or "args[1].slot"; it is empty when the
// payload as a whole could not be parsed.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("models: decode: %v", e.Err)
	}
	return fmt.Sprintf("models: decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func malformed(err error) *DecodeError {
	return &DecodeError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
}

func missing(field string) *DecodeError {
	return &DecodeError{Field: field, Err: ErrMissingField}
}

func mismatch(field, want string) *DecodeError {
	return &DecodeError{Field: field, Err: fmt.Errorf("%w: want %s", ErrTypeMismatch, want)}
}

// nested re-roots a DecodeError produced for an inner record under prefix.
func nested(prefix string, err error) error {
	var de *DecodeError
	if !errors.As(err, &de) {
		return &DecodeError{Field: prefix, Err: err}
	}
	field := prefix
	if de.Field != "" {
		field = prefix + "." + de.Field
	}
	return &DecodeError{Field: field, Err: de.Err}
}
