// Package failure classifies the errors that terminate a run and exposes the
// cause chain and stack trace the error report prints.
package failure

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Kind tells the error report which output shape to use.
type Kind uint8

const (
	// KindRuntime is any failure while scanning, parsing or generating.
	KindRuntime Kind = iota
	// KindConfig is an invalid or missing setting the user can fix.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	default:
		return "runtime"
	}
}

// Error is a classified failure. Msg may be empty when the error only marks
// the kind of a cause it wraps.
type Error struct {
	Kind Kind
	Msg  string
	Err  error

	stack []byte
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the error's own message without its causes.
func (e *Error) Message() string {
	return e.Msg
}

// StackTrace returns the stack captured when the error was created.
func (e *Error) StackTrace() string {
	return string(e.stack)
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err, stack: captureStack()}
}

// Config returns a configuration failure.
func Config(format string, args ...any) error {
	return newError(KindConfig, fmt.Sprintf(format, args...), nil)
}

// Runtime returns a runtime failure.
func Runtime(format string, args ...any) error {
	return newError(KindRuntime, fmt.Sprintf(format, args...), nil)
}

// Wrap returns a failure of the given kind with msg and err as its cause.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return newError(kind, msg, err)
}

// Mark classifies err without adding a message of its own. An error that is
// already classified is returned unchanged.
func Mark(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return newError(kind, "", err)
}

// KindOf returns the kind of the outermost classified error in err's chain.
// Unclassified errors are runtime failures.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindRuntime
}

// IsConfig reports whether err is a configuration failure.
func IsConfig(err error) bool {
	return err != nil && KindOf(err) == KindConfig
}

// Chain returns the own message of every error in err's chain, outermost
// first. Nodes without a message of their own are skipped.
func Chain(err error) []string {
	var msgs []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		if msg := OwnMessage(e); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// OwnMessage returns the part of err's text that is not contributed by the
// error it wraps.
func OwnMessage(err error) string {
	if m, ok := err.(interface{ Message() string }); ok {
		return m.Message()
	}
	msg := err.Error()
	next := errors.Unwrap(err)
	if next == nil {
		return msg
	}
	inner := next.Error()
	if trimmed, ok := strings.CutSuffix(msg, ": "+inner); ok {
		return trimmed
	}
	if msg == inner {
		return ""
	}
	return msg
}

// Stack returns the deepest stack trace captured in err's chain. When no
// error in the chain carries one, the caller's stack is returned.
func Stack(err error) string {
	var trace string
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(interface{ StackTrace() string }); ok && st.StackTrace() != "" {
			trace = st.StackTrace()
		}
	}
	if trace == "" {
		trace = string(captureStack())
	}
	return strings.TrimRight(trace, "\n")
}

// captureStack returns the current goroutine's stack trace.
func captureStack() []byte {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, len(buf)*2)
	}
}
