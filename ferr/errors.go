// Package ferr defines the structured error taxonomy shared across the
// coupling runtime: every fault kind listed in the spec is a distinct,
// errors.Is-comparable sentinel, and every returned error identifies the
// offending component and slot.
package ferr

import (
	"errors"
	"fmt"
)

// Kind sentinels. Every *Error wraps exactly one of these via fmt.Errorf's
// %w verb, so errors.Is(err, ferr.KindStatus) (etc.) works regardless of how
// deeply the error has been wrapped further up the call stack.
var (
	// KindStatus indicates a lifecycle precondition was violated.
	KindStatus = errors.New("status error")

	// KindTime indicates a timestamp was non-monotone, or a pull time fell
	// outside the range an adapter with a cursor can serve.
	KindTime = errors.New("time error")

	// KindNoData indicates a pull before the first push, or before info
	// exchange completed. Tolerated locally during the connect loop; every
	// other context treats it as fatal.
	KindNoData = errors.New("no-data error")

	// KindMetadata indicates missing, incompatible, or post-exchange-changed
	// info.
	KindMetadata = errors.New("metadata error")

	// KindLink indicates an unconnected input, a double-set input source, or
	// a wrong source type.
	KindLink = errors.New("link error")

	// KindBranching indicates fan-out was detected below a no-branch adapter.
	KindBranching = errors.New("branching error")

	// KindConnectDeadlock indicates the connect loop made no progress across
	// an entire round while components remained unconnected.
	KindConnectDeadlock = errors.New("connect deadlock")
)

// Error is a structured failure carrying the fault kind plus enough
// provenance to localize it without re-reading logs: the offending
// component name, the offending slot name (input or output; empty if the
// failure isn't slot-scoped), and a human-readable detail.
type Error struct {
	Kind      error
	Component string
	Slot      string
	Detail    string
	cause     error
}

// New constructs an *Error of the given kind for component/slot, formatting
// detail with fmt.Sprintf semantics.
func New(kind error, component, slot, detail string, args ...any) *Error {
	return &Error{
		Kind:      kind,
		Component: component,
		Slot:      slot,
		Detail:    fmt.Sprintf(detail, args...),
	}
}

// Wrap is like New but additionally records cause so that errors.Unwrap
// reaches it (in addition to the Kind sentinel, reachable via errors.Is).
func Wrap(kind error, component, slot string, cause error, detail string, args ...any) *Error {
	e := New(kind, component, slot, detail, args...)
	e.cause = cause
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	loc := e.Component
	if e.Slot != "" {
		loc = fmt.Sprintf("%s.%s", e.Component, e.Slot)
	}
	if loc == "" {
		if e.cause != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.cause)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Kind, loc, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, loc, e.Detail)
}

// Unwrap exposes both the Kind sentinel (so errors.Is matches it) and any
// wrapped cause, via the multi-error Unwrap() []error form.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// IsNoData reports whether err is (or wraps) a no-data error. The connect
// loop uses this to decide whether a failed Connect attempt should be
// retried next round rather than treated as fatal.
func IsNoData(err error) bool {
	return errors.Is(err, KindNoData)
}
