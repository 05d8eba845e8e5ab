// Package runtime abstracts the model runtime that turns a ModelInput into a
// raw ModelOutput. The runtime owns accelerator memory and may be slow; all
// calls take a context so callers can bound them.
package runtime

import (
	"context"
	"errors"
	"fmt"

	"policyd/internal/policy"
)

// Runtime is the opaque model call.
type Runtime interface {
	Infer(ctx context.Context, in policy.ModelInput) (policy.ModelOutput, error)
	// Healthy reports whether the runtime can currently serve Infer.
	Healthy(ctx context.Context) bool
}

// unavailableError signals that the runtime could not be reached at all.
type unavailableError struct{ err error }

func (e unavailableError) Error() string { return "runtime unavailable: " + e.err.Error() }
func (e unavailableError) Unwrap() error { return e.err }

// ErrUnavailable wraps err as a runtime-unavailable error.
func ErrUnavailable(err error) error { return unavailableError{err: err} }

// IsUnavailable reports whether err indicates an unreachable runtime.
func IsUnavailable(err error) bool {
	var ue unavailableError
	return errors.As(err, &ue)
}

// StatusError is returned when the runtime answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("runtime returned status %d: %s", e.Code, e.Body)
}

// ProtocolError is returned when the runtime answers 2xx with a body that is
// not a valid action matrix.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string { return "runtime protocol: " + e.Err.Error() }
func (e *ProtocolError) Unwrap() error { return e.Err }

// IsProtocolError reports whether err is a malformed runtime response.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
