// Package hosterr defines the fatal host-error layer described in
// spec.md §7: errors no user program can intercept. A HostError always
// terminates the run — it is never caught by a try/catch.
package hosterr

import "fmt"

// Kind is one of the three host error kinds the spec names.
type Kind string

const (
	NameError  Kind = "NAME_ERROR"
	TypeError  Kind = "TYPE_ERROR"
	FaultError Kind = "FAULT_ERROR"
)

// HostError is returned (never panicked) by every layer of the evaluator
// that detects a fatal condition, and bubbles up through ordinary Go error
// propagation to the driver, which returns it to its caller.
type HostError struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
}

func (e *HostError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds a HostError with no position information attached yet; the
// evaluator fills Line/Column in from the node being evaluated when one
// bubbles past a frame boundary, mirroring how the teacher's Error object
// back-fills Line/Column in Evaluator.Eval (internal/evaluator/evaluator.go).
func New(kind Kind, format string, args ...any) *HostError {
	return &HostError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithPos returns a copy of err with position information attached, unless
// it already carries one (innermost position wins).
func WithPos(err *HostError, line, col int) *HostError {
	if err.Line != 0 {
		return err
	}
	cp := *err
	cp.Line, cp.Column = line, col
	return &cp
}
