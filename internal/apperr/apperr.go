// Package apperr defines the error taxonomy used across anonymizer-cli.
//
// Error taxonomy
//
//	UserError    – caused by missing or invalid user input (bad flag, missing
//	               file, …). The CLI prints only the message; usage help is
//	               NOT repeated. Exit code: 1.
//
//	ErrCancelled – the pipeline was aborted by a document-level cancellation
//	               signal before it finished. Exit code: 0 (not a failure).
//
//	InputError   – a fatal failure to read or parse the input document (corrupt
//	               archive, malformed XML, missing relationship). Names the
//	               offending document part. No outputs are written.
//
//	OutputError  – a fatal failure to write a result file. Partial files are
//	               removed.
//
// Pattern, NLP, and Apply failures are soft failures: they are never
// returned as errors from the pipeline. They are recorded as warnings (see
// PatternWarning, NlpWarning, ApplyWarning) and the run continues.
//
// Everything else is a plain Go error and is propagated with
// fmt.Errorf("context: %w", err) wrapping.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when a document-level cancellation signal aborts
// the pipeline before it produces output.
var ErrCancelled = errors.New("anonymization cancelled")

// UserError represents an error caused by invalid or missing user input.
// Cobra command handlers return this instead of a bare fmt.Errorf so that
// the root command can suppress repeated usage output and format the message
// in a user-friendly way.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}

// InputError wraps a fatal failure to read or parse one part of the input
// document.
type InputError struct {
	Part string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error in %s: %v", e.Part, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Input creates an InputError naming the offending document part.
func Input(part string, err error) error {
	return &InputError{Part: part, Err: err}
}

// OutputError wraps a fatal failure to write a result file.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("output error writing %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// Output creates an OutputError naming the path that failed to write.
func Output(path string, err error) error {
	return &OutputError{Path: path, Err: err}
}

// WarningKind classifies a soft-failure warning surfaced in the run report.
type WarningKind string

const (
	// PatternWarning marks a pattern-catalogue row that failed to compile.
	PatternWarning WarningKind = "pattern"
	// NlpWarning marks a per-block NLP call that timed out or failed.
	NlpWarning WarningKind = "nlp"
	// ApplyWarning marks a replacement plan that could not be applied.
	ApplyWarning WarningKind = "apply"
)

// Warning is a soft-failure record: something did not succeed, but the run
// continues. Warnings are collected and surfaced in the ledger rather than
// returned as errors.
type Warning struct {
	Kind    WarningKind
	Context string // block id, row index, endpoint, etc., depending on Kind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Context, w.Message)
}

// NewWarning builds a Warning with a formatted message.
func NewWarning(kind WarningKind, context, format string, args ...any) Warning {
	return Warning{Kind: kind, Context: context, Message: fmt.Sprintf(format, args...)}
}
