// Package errs defines the typed error kinds shared by the HTTP surface,
// the orchestrator, and the background workers. Wrap and Wrapf pass the
// underlying error through github.com/pkg/errors before attaching a Kind
// here, so a stack trace survives alongside the kind switch. The store
// does not use them: its errors are plain fmt.Errorf values apart from
// its NotFound and Conflict kinds.
package errs

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

type Kind int

const (
	_ Kind = iota
	NotFound
	Conflict
	PrecondFail
	Unsupported
	PKIFailure
	RenderError
	CloudError
	Timeout
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case Conflict:
		return "Conflict"
	case PrecondFail:
		return "PrecondFail"
	case Unsupported:
		return "Unsupported"
	case PKIFailure:
		return "PKIFailure"
	case RenderError:
		return "RenderError"
	case CloudError:
		return "CloudError"
	case Timeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// Error is a typed error carrying a Kind that handlers and workers switch
// on instead of matching message strings.
type Error struct {
	Kind  Kind
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap lets the standard library's errors.As/errors.Is see through a
// Kind wrap to whatever it wrapped.
func (e *Error) Unwrap() error {
	return e.cause
}

// Cause lets github.com/pkg/errors.Cause see through a Kind wrap the same
// way, since that package predates Unwrap and doesn't look for it.
func (e *Error) Cause() error {
	return e.cause
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind to cause, first running cause through
// pkg/errors.WithStack so the adapter boundary that produced it keeps a
// stack trace even though the Kind wrap above it doesn't generate one.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, cause: pkgerrors.WithStack(cause)}
}

func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), cause: pkgerrors.WithStack(cause)}
}

// KindOf returns the Kind of err if it is, or wraps, an *Error, and ok=false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is, or wraps, an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
