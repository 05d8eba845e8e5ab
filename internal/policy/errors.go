package policy

import (
	"errors"
	"fmt"
)

// ShapeError reports a tensor whose shape violates the model contract.
type ShapeError struct {
	Op    string // "adapt" or "decode"
	Field string
	Got   []int
	Want  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s has shape %v, want %s", e.Op, e.Field, e.Got, e.Want)
}

// IsShapeError reports whether err (or anything it wraps) is a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

// MissingFieldError reports an absent required observation channel.
type MissingFieldError struct{ Field string }

func (e *MissingFieldError) Error() string { return "missing required field: " + e.Field }

// IsMissingField reports whether err indicates a missing required field.
func IsMissingField(err error) bool {
	var me *MissingFieldError
	return errors.As(err, &me)
}
