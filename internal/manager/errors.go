package manager

import (
	"errors"

	"policyd/internal/runtime"
)

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ reason string }

func (e tooBusyError) Error() string { return "too busy: " + e.reason }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	var tb tooBusyError
	return errors.As(err, &tb)
}

// TooBusyReason returns the backpressure reason label, or "" if err is not
// a too-busy error.
func TooBusyReason(err error) string {
	var tb tooBusyError
	if errors.As(err, &tb) {
		return tb.reason
	}
	return ""
}

// dependencyUnavailableError signals a missing or unreachable model runtime
// so the HTTP layer can return 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed
// runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var de dependencyUnavailableError
	return errors.As(err, &de) || runtime.IsUnavailable(err)
}
