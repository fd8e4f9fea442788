// Package operr defines the typed error surface shared by the codec, the
// object mutation service and the graph mutation service.
//
// Every failure crossing a service boundary is an *Error carrying a
// machine-readable Kind next to its message. Lookup failures additionally
// enumerate the valid alternatives so automated callers can self-correct
// without a second discovery round trip.
package operr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure for machine consumption.
type Kind int

const (
	// NotFound reports a missing field, node, pin, sink or type.
	NotFound Kind = iota
	// TypeMismatch reports a wire value whose shape does not fit the field.
	TypeMismatch
	// ReadOnly reports a write against a field not flagged editable.
	ReadOnly
	// UnsupportedOperation reports an operation the target cannot perform,
	// e.g. promoting a node type with no parameter counterpart.
	UnsupportedOperation
	// DepthExceeded reports a recursive traversal past the depth guard.
	DepthExceeded
	// HostRejected reports a value the host refused outright, as opposed to
	// clamping it on write.
	HostRejected
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case TypeMismatch:
		return "type_mismatch"
	case ReadOnly:
		return "read_only"
	case UnsupportedOperation:
		return "unsupported_operation"
	case DepthExceeded:
		return "depth_exceeded"
	case HostRejected:
		return "host_rejected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the concrete error type returned by all services in this module.
type Error struct {
	Kind Kind
	// Message is the human-readable description of the failure.
	Message string
	// Alternatives lists valid identifiers when Kind is NotFound and the
	// failed lookup has an enumerable value space (pins, fields, sinks).
	Alternatives []string
	// Err is the wrapped cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if len(e.Alternatives) > 0 {
		sb.WriteString(" (valid: ")
		sb.WriteString(strings.Join(e.Alternatives, ", "))
		sb.WriteString(")")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// NotFoundWith creates a NotFound error that enumerates valid alternatives.
func NotFoundWith(alternatives []string, format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...), Alternatives: alternatives}
}

// KindOf extracts the Kind from an error chain. The second return value is
// false when the chain contains no *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether the error chain contains an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
