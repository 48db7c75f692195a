// Package errs defines the pipeline's error taxonomy: structural failures
// are fatal and returned as an error; per-sample and per-entity anomalies
// are collected into Diagnostics and never abort the pipeline.
package errs

import "fmt"

// Kind enumerates the fatal error categories.
type Kind int

const (
	InputMissing Kind = iota
	NoCuttable
	ParameterInvalid
)

func (k Kind) String() string {
	switch k {
	case InputMissing:
		return "InputMissing"
	case NoCuttable:
		return "NoCuttable"
	case ParameterInvalid:
		return "ParameterInvalid"
	default:
		return "Unknown"
	}
}

// Error is a fatal pipeline error: one of the Kind values above, with a
// message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Diagnostics accumulates non-fatal anomalies as warning strings. The
// pipeline records dropped CAD entities and rings that could not be
// repaired into a polygon; cleared hierarchy cycles and velocity or
// derivative clamps are not recorded. Nothing in here aborts processing.
type Diagnostics struct {
	Warnings []string
}

func (d *Diagnostics) Warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
}
