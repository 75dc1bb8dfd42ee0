package langdef

import (
	"errors"

	cl "github.com/CausticLang/CausticLexer"
	"github.com/CausticLang/CausticLexer/matcher"
	"github.com/CausticLang/CausticLexer/source"
)

const (
	SyntaxError = cl.CompileErrors + iota
	EscapeError
	WrongPatternError
	RuleDefinedError
	NumberError
	MalformedTreeError
)

// syntaxError converts failure of the bootstrap matcher to compile error, other errors are returned as is.
func syntaxError(e error) error {
	var me *cl.Error
	if !errors.As(e, &me) || (me.Code != matcher.MatchFailedError && me.Code != matcher.MatchFatalError) {
		return e
	}

	res := *me
	res.Code = SyntaxError
	res.Message = "syntax error: " + me.Message
	return &res
}

func escapeError(src *source.Source, pos int, ee *badEscape) *cl.Error {
	if ee.rune {
		return cl.FormatErrorPos(src.At(pos+ee.offset), EscapeError, "invalid code point in %q escape sequence", ee.seq)
	}
	return cl.FormatErrorPos(src.At(pos+ee.offset), EscapeError, "invalid escape sequence %q", ee.seq)
}

func wrongPatternError(src *source.Source, pos int, e error) *cl.Error {
	return cl.FormatErrorPos(src.At(pos), WrongPatternError, "%s", e.Error())
}

func ruleDefinedError(src *source.Source, pos int, name string) *cl.Error {
	return cl.FormatErrorPos(src.At(pos), RuleDefinedError, "rule %q already defined", name)
}

func numberError(src *source.Source, pos int, text string) *cl.Error {
	return cl.FormatErrorPos(src.At(pos), NumberError, "number %s is too large", text)
}

func malformedTreeError(src *source.Source, pos int, what string) *cl.Error {
	return cl.FormatErrorPos(src.At(pos), MalformedTreeError, "unexpected bootstrap result: %s", what)
}
