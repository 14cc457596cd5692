package loom

import (
	"errors"
	"fmt"
)

// ResolveError reports a resolution that no source could satisfy: no
// caller override, no declared default, no bound token in the
// parameter's chain, and no resolvable declared type.
//
// It carries the unresolved parameter's name and the type being
// constructed. A nested failure propagates as the same error through
// every recursive frame; intermediate frames add no wrapping.
type ResolveError struct {
	// Param is the name of the unresolved parameter, if the failure
	// occurred while resolving a constructor parameter.
	Param string

	// Target describes the type or key being resolved.
	Target string

	// Reason explains why resolution failed.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ResolveError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("loom: cannot resolve parameter %s for %s: %s", e.Param, e.Target, e.Reason)
	}

	return fmt.Sprintf("loom: cannot resolve %s: %s", e.Target, e.Reason)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// ErrNilFactory is returned when a nil factory is registered.
var ErrNilFactory = errors.New("loom: factory cannot be nil")
