package pattern

import (
	cl "github.com/CausticLang/CausticLexer"
)

// Error codes share the grammar configuration class; they never collide with grammar package codes.
const (
	UnknownEngineError = cl.ConfigErrors + 50 + iota
	WrongFlagError
	CompileError
	TimeoutError
)

func unknownEngineError(name string) *cl.Error {
	return cl.FormatError(UnknownEngineError, "unknown regexp engine %q", name)
}

func flagError(letter byte) *cl.Error {
	return cl.FormatError(WrongFlagError, "unknown regexp flag %q", string(letter))
}

func compileError(engine, expr string, e error) *cl.Error {
	return cl.FormatError(CompileError, "incorrect RegExp /%s/ (%s engine: %s)", expr, engine, e.Error())
}

func timeoutError(expr string, e error) *cl.Error {
	return cl.FormatError(TimeoutError, "RegExp /%s/ failed: %s", expr, e.Error())
}
