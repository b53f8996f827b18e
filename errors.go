// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

import "fmt"

// ErrorKind classifies a [MachineError].
type ErrorKind uint8

const (
	// UnhandledEffect means an effect was performed with no visible
	// handler willing to accept it.
	UnhandledEffect ErrorKind = iota
	// OneShotViolation means a captured continuation was resumed more
	// than once.
	OneShotViolation
	// InvariantViolation means the machine observed a state shape one of
	// its rules should never see. This always aborts the run immediately
	// — it does not propagate through K like the other kinds.
	InvariantViolation
	// HandlerUserError wraps an error value a handler or user program
	// raised deliberately (via [ProgError]).
	HandlerUserError
	// AsyncEscapeInSyncDriver means a program produced an async-escape
	// request while being driven by the synchronous driver loop.
	AsyncEscapeInSyncDriver
)

func (k ErrorKind) String() string {
	switch k {
	case UnhandledEffect:
		return "unhandled-effect"
	case OneShotViolation:
		return "one-shot-violation"
	case InvariantViolation:
		return "invariant-violation"
	case HandlerUserError:
		return "handler-user-error"
	case AsyncEscapeInSyncDriver:
		return "async-escape-in-sync-driver"
	default:
		return "unknown-error-kind"
	}
}

// MachineError is the error type the machine itself raises. Kind
// distinguishes the five categories of failure the core recognizes;
// Cause carries the underlying error for [HandlerUserError], and is nil
// otherwise.
type MachineError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *MachineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("kont: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("kont: %s: %s", e.Kind, e.Message)
}

// Unwrap exposes Cause so errors.Is/errors.As can see through a
// HandlerUserError to the original cause.
func (e *MachineError) Unwrap() error { return e.Cause }

func newUnhandledEffect(effect Effect) *MachineError {
	return &MachineError{Kind: UnhandledEffect, Message: "no visible handler for effect " + effectTag(effect)}
}

func newOneShotViolation(message string) *MachineError {
	return &MachineError{Kind: OneShotViolation, Message: message}
}

func newInvariantViolation(message string) *MachineError {
	return &MachineError{Kind: InvariantViolation, Message: message}
}

// NewHandlerUserError wraps cause as a HandlerUserError MachineError.
func NewHandlerUserError(cause error) *MachineError {
	return &MachineError{Kind: HandlerUserError, Message: "error raised by user or handler code", Cause: cause}
}

func effectTag(e Effect) string {
	if e == nil {
		return "<nil>"
	}
	return e.EffectTag()
}
