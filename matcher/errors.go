package matcher

import (
	"strings"

	cl "github.com/CausticLang/CausticLexer"
	"github.com/CausticLang/CausticLexer/source"
)

const (
	MatchFailedError = cl.MatchErrors + iota
	MatchFatalError
	UnknownEntryError
	DepthError
	CanceledError
	WrongSkipError
	PatternError
)

func unknownEntryError(name string) *cl.Error {
	return cl.FormatError(UnknownEntryError, "unknown rule %q", name)
}

func depthError(src *source.Source, pos, limit int) *cl.Error {
	return cl.FormatErrorPos(src.At(pos), DepthError, "rule nesting depth exceeds %d", limit)
}

func canceledError(src *source.Source, pos int, e error) *cl.Error {
	return cl.FormatErrorPos(src.At(pos), CanceledError, "matching interrupted: %s", e.Error())
}

func wrongSkipError(e error) *cl.Error {
	return cl.FormatError(WrongSkipError, "incorrect skip pattern: %s", e.Error())
}

func patternError(src *source.Source, pos int, e error) *cl.Error {
	return cl.FormatErrorPos(src.At(pos), PatternError, "%s", e.Error())
}

// matchError describes failure f; at is the reported position, it precedes f.pos
// only when input ends with insignificant text.
func matchError(src *source.Source, f failure, at int, fatal bool) *cl.Error {
	code := MatchFailedError
	if fatal {
		code = MatchFatalError
	}

	msg := "unexpected " + found(src.Content(), f.pos)
	if len(f.expected) > 0 {
		msg += ", expecting " + describe(f.expected)
	}

	e := cl.FormatErrorPos(src.At(at), code, "%s", msg)
	e.Expected = f.expected
	e.Fatal = fatal
	return e
}

func found(input []byte, pos int) string {
	if pos >= len(input) {
		return "end of input"
	}

	const maxLen = 10
	end := pos + maxLen
	if end > len(input) {
		end = len(input)
	}
	if i := strings.IndexByte(string(input[pos:end]), '\n'); i > 0 {
		end = pos + i
	} else if i == 0 {
		end = pos + 1
	}
	return `"` + strings.ReplaceAll(string(input[pos:end]), "\n", `\n`) + `"`
}

func describe(expected []string) string {
	if len(expected) == 1 {
		return expected[0]
	}
	return "one of " + strings.Join(expected, ", ")
}
