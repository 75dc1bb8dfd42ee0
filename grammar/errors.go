package grammar

import (
	"strings"

	cl "github.com/CausticLang/CausticLexer"
)

const (
	UnknownRuleError = cl.ConfigErrors + iota
	MixedCaptureError
	RangeBoundsError
	RecursionError
	CommitPlacementError
	EmptyLiteralError
	PatternGroupError
	WrongPatternError
	DuplicateRuleError
	EmptyNodeError
	UnknownKindError
	WrongCaptureError
	WrongNameError
	FormatError
)

func unknownRuleError(rule string, names []string) *cl.Error {
	return cl.FormatError(UnknownRuleError, "rule %q refers to undefined rules: %s", rule, strings.Join(names, ", "))
}

func mixedCaptureError(rule string, n *Node) *cl.Error {
	return cl.FormatError(MixedCaptureError, "rule %q: cannot mix named and anonymous captures in %s", rule, n)
}

func rangeBoundsError(rule string, n *Node) *cl.Error {
	return cl.FormatError(RangeBoundsError, "rule %q: incorrect repetition bounds in %s", rule, n)
}

func recursionError(names []string) *cl.Error {
	return cl.FormatError(RecursionError, "found left-recursive rules: %s", strings.Join(names, ", "))
}

func commitPlacementError(rule, msg string) *cl.Error {
	return cl.FormatError(CommitPlacementError, "rule %q: %s", rule, msg)
}

func emptyLiteralError(rule string) *cl.Error {
	return cl.FormatError(EmptyLiteralError, "rule %q: cannot use an empty literal", rule)
}

func patternGroupError(rule string, p *Pattern, groups int) *cl.Error {
	return cl.FormatError(PatternGroupError, "rule %q: pattern /%s/ has %d groups, group %d requested", rule, p.Expr, groups, p.Group)
}

func wrongPatternError(rule string, e error) *cl.Error {
	return cl.FormatError(WrongPatternError, "rule %q: %s", rule, e.Error())
}

func duplicateRuleError(name string) *cl.Error {
	return cl.FormatError(DuplicateRuleError, "rule %q already defined", name)
}

func emptyNodeError(rule, msg string) *cl.Error {
	return cl.FormatError(EmptyNodeError, "rule %q: %s", rule, msg)
}

func unknownKindError(kind string) *cl.Error {
	return cl.FormatError(UnknownKindError, "unknown node kind %q", kind)
}

func wrongCaptureError(prefix string) *cl.Error {
	return cl.FormatError(WrongCaptureError, "incorrect capture prefix %q", prefix)
}

func wrongNameError(name string) *cl.Error {
	return cl.FormatError(WrongNameError, "incorrect rule name %q", name)
}

func formatError(e error) *cl.Error {
	return cl.FormatError(FormatError, "cannot decode grammar: %s", e.Error())
}
