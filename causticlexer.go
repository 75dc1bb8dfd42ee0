/*
Package causticlexer is a grammar-definition language and the backtracking matcher that interprets it.

Consists of subpackages:
  - cmd/cagc: console utility compiling grammar descriptions and matching input against them;
  - grammar: node model (sequences, alternations, repetitions, literals, patterns, references, constants, commits) and rule graph;
  - pattern: regular expression engines used by pattern nodes;
  - capture: match result values and the rules assembling them;
  - matcher: recursive backtracking matcher producing capture values;
  - langdef: compiles textual grammar descriptions into grammar.Grammar using a self-hosted bootstrap grammar;
  - source: defines source file with line/column lookup used in diagnostics.

Typical usage is:

1. Describe grammar in the grammar-definition language (see langdef).

2. Compile description with langdef.Compile, or load a grammar serialized by cagc.

3. Create matcher for the grammar and match input against any rule.

4. Walk resulting capture.Value tree.
*/
package causticlexer

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	CompileErrors = 1   // used by langdef
	ConfigErrors  = 101 // used by grammar
	MatchErrors   = 201 // used by matcher
)

// Error is the error type used by causticlexer subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// Offset contains byte offset in source or -1.
	Offset int

	// Expected lists what the matcher was trying to match at Offset, empty for non-match errors.
	Expected []string

	// Fatal is set when the failure happened after a commit point.
	Fatal bool
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos implements this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
	// Offset returns byte offset.
	Offset() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name != "" {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		} else {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		}
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col, Offset: -1}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	e := NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
	e.Offset = pos.Offset()
	return e
}

// ErrorCode returns code of *Error found in err chain or 0.
func ErrorCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsFatal reports whether err is a match failure that happened after a commit point.
func IsFatal(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Fatal
}

// InClass reports whether err carries a code from the class starting at base.
func InClass(err error, base int) bool {
	code := ErrorCode(err)
	return code >= base && code < base+100
}
