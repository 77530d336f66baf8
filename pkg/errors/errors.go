package errors

import (
	stderrors "errors"
	"fmt"
)

// AccessError is the interface implemented by all property-access failures.
type AccessError interface {
	error // Embed the standard error interface
	Kind() string // e.g., "Type", "ProxyTrap", "InvalidKey"
	// Message returns the specific error message without kind info.
	// This might be useful if the caller wants to format the error differently.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// --- Concrete Error Types ---

// TypeError reports a non-writable or non-extensible violation surfaced in
// strict or define-only mode.
type TypeError struct {
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("TypeError: %s", e.Msg)
}
func (e *TypeError) Kind() string    { return "Type" }
func (e *TypeError) Message() string { return e.Msg }
func (e *TypeError) Unwrap() error   { return e.Cause }
func (e *TypeError) CausedBy(cause error) *TypeError {
	e.Cause = cause
	return e
}

// ProxyTrapError wraps a failure reported by a proxy trap. The trap's error is
// propagated unmodified as the cause.
type ProxyTrapError struct {
	Trap  string // "set" or "get"
	Msg   string
	Cause error
}

func (e *ProxyTrapError) Error() string {
	return fmt.Sprintf("ProxyTrap Error in '%s': %s", e.Trap, e.Msg)
}
func (e *ProxyTrapError) Kind() string    { return "ProxyTrap" }
func (e *ProxyTrapError) Message() string { return e.Msg }
func (e *ProxyTrapError) Unwrap() error   { return e.Cause }
func (e *ProxyTrapError) CausedBy(cause error) *ProxyTrapError {
	e.Cause = cause
	return e
}

// InvalidKeyError reports that key classification could not proceed. A
// well-formed key never produces this; it guards against invariant violations.
type InvalidKeyError struct {
	Msg   string
	Cause error
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("InvalidKey Error: %s", e.Msg)
}
func (e *InvalidKeyError) Kind() string    { return "InvalidKey" }
func (e *InvalidKeyError) Message() string { return e.Msg }
func (e *InvalidKeyError) Unwrap() error   { return e.Cause }
func (e *InvalidKeyError) CausedBy(cause error) *InvalidKeyError {
	e.Cause = cause
	return e
}

// --- Helpers for creating errors ---

func NewTypeError(format string, args ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

func NewProxyTrapError(trap string, cause error) *ProxyTrapError {
	msg := "trap failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &ProxyTrapError{Trap: trap, Msg: msg, Cause: cause}
}

func NewInvalidKeyError(format string, args ...any) *InvalidKeyError {
	return &InvalidKeyError{Msg: fmt.Sprintf(format, args...)}
}

// IsTypeError reports whether err is (or wraps) a TypeError.
func IsTypeError(err error) bool {
	var te *TypeError
	return stderrors.As(err, &te)
}

// IsProxyTrapError reports whether err is (or wraps) a ProxyTrapError.
func IsProxyTrapError(err error) bool {
	var pe *ProxyTrapError
	return stderrors.As(err, &pe)
}
