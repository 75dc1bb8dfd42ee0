package langdef

import (
	_ "embed"
	"sync"

	"github.com/CausticLang/CausticLexer/grammar"
	"github.com/CausticLang/CausticLexer/matcher"
	"github.com/CausticLang/CausticLexer/pattern"
)

// BootstrapSource is the description of the grammar description language written in itself.
// Compiling it yields a grammar equal to Bootstrap().
//
//go:embed grammar.cag
var BootstrapSource []byte

// BootstrapSkip matches text ignored by the grammar description language: whitespace and comments.
const BootstrapSkip = `(?:\s+|#[^\n]*)+`

// entry rule, statement tags and expressions of the bootstrap grammar
const (
	grammarRule    = "grammar"
	pragmaKind     = "pragma"
	statementKind  = "statement"
	namePattern    = `[A-Za-z_][A-Za-z_0-9]*(?:\.[A-Za-z_][A-Za-z_0-9]*)*`
	wordPattern    = `[A-Za-z_][A-Za-z_0-9]*`
	digitsPattern  = `[0-9]+`
	quotedPattern  = `"((?:[^\\"]|\\.)*)"`
	quoted1Pattern = `'((?:[^\\']|\\.)*)'`
	bodyPattern    = `((?:[^\\\/\n]|\\.)+)\/`
)

// node type tags produced by the term rules
const (
	groupType     = "group"
	groupWSType   = "group_ws_sensitive"
	unionType     = "union"
	rangeType     = "range"
	rangeWSType   = "range_ws_sensitive"
	stringType    = "string"
	patternType   = "pattern"
	stealerType   = "stealer"
	contextType   = "context"
	referenceType = "noderef"
	dropCapture   = "drop"
	anonCapture   = "anon"
)

var (
	bootstrapOnce    sync.Once
	bootstrapGrammar *grammar.Grammar
	bootstrapMatcher *matcher.Matcher
)

func initBootstrap() {
	bootstrapGrammar = grammar.MustNew(pattern.RE2{}, bootstrapRules()...)
	bootstrapMatcher = matcher.MustNew(bootstrapGrammar, matcher.WithSkip(BootstrapSkip))
}

// Bootstrap returns the hand-built grammar of the grammar description language. Entry rule is "grammar".
func Bootstrap() *grammar.Grammar {
	bootstrapOnce.Do(initBootstrap)
	return bootstrapGrammar
}

func getBootstrapMatcher() *matcher.Matcher {
	bootstrapOnce.Do(initBootstrap)
	return bootstrapMatcher
}

func bootstrapRules() []grammar.Rule {
	var (
		seq   = grammar.Seq
		seqWS = grammar.SeqWS
		alt   = grammar.Alt
		lit   = grammar.Lit
		ref   = grammar.Ref
		cnst  = grammar.Const
		pat   = func(expr string, group int) *grammar.Node { return grammar.Pat(expr, group, 0) }
		opt   = func(n *grammar.Node) *grammar.Node { return grammar.Rep(0, 1, n) }
		many  = func(n *grammar.Node) *grammar.Node { return grammar.Rep(0, grammar.Unbounded, n) }
	)

	block := func(open, typ, close string) *grammar.Node {
		return seq(
			lit(open),
			grammar.Commit(),
			cnst(typ).Named("type"),
			many(ref("expression")).Named("val"),
			lit(close),
		)
	}

	rangeOf := func(typ, op string) *grammar.Node {
		return seq(
			cnst(typ).Named("type"),
			seqWS(
				opt(pat(digitsPattern, -1)).Named("min"),
				lit(op),
				grammar.Commit(),
				opt(pat(digitsPattern, -1)).Named("max"),
				ref("expression").Named("node"),
			).Named("val"),
		)
	}

	return []grammar.Rule{
		{Name: grammarRule, Root: seq(many(alt(ref("pragma"), ref("statement"))).Anon())},
		{Name: "comment", Root: seq(pat(`#[^\n]*`, -1))},
		{Name: "pragma", Root: seq(seqWS(
			cnst(pragmaKind).Named("kind"),
			lit("$"),
			pat(wordPattern, -1).Named("type"),
			pat(`[ \t]*([^\n]*)`, 1).Named("arg"),
		).Anon())},
		{Name: "statement", Root: seq(
			cnst(statementKind).Named("kind"),
			ref("name").Named("name"),
			lit("="),
			grammar.Commit(),
			many(ref("expression")).Named("expr"),
			lit(";"),
		)},
		{Name: "name", Root: seq(pat(namePattern, -1).Anon())},
		{Name: "capture", Root: seq(alt(
			seqWS(lit("^:"), cnst(dropCapture).Anon()),
			seqWS(ref("name").Named("key"), lit(":")),
			seqWS(lit(":"), cnst(anonCapture).Anon()),
		).Anon())},
		{Name: "expression", Root: seq(
			opt(ref("capture")).Named("name"),
			ref("term").Named("node"),
		)},
		{Name: "term", Root: seq(alt(
			ref("group"), ref("group_ws"), ref("union"), ref("range"), ref("range_ws"),
			ref("string"), ref("pattern"), ref("stealer"), ref("context"), ref("reference"),
		).Anon())},
		{Name: "group", Root: block("(", groupType, ")")},
		{Name: "group_ws", Root: block("{", groupWSType, "}")},
		{Name: "union", Root: block("[", unionType, "]")},
		{Name: "range", Root: rangeOf(rangeType, "-")},
		{Name: "range_ws", Root: rangeOf(rangeWSType, "~")},
		{Name: "string", Root: seq(cnst(stringType).Named("type"), ref("quoted").Named("val"))},
		{Name: "quoted", Root: seq(alt(
			grammar.Pat(quotedPattern, 1, pattern.DotAll),
			grammar.Pat(quoted1Pattern, 1, pattern.DotAll),
		).Anon())},
		{Name: "pattern", Root: seq(
			cnst(patternType).Named("type"),
			seqWS(
				opt(pat(digitsPattern, -1)).Named("group"),
				lit("/"),
				grammar.Commit(),
				pat(bodyPattern, 1).Named("body"),
				pat(`[ims]*`, -1).Named("flags"),
			).Named("val"),
		)},
		{Name: "stealer", Root: seq(cnst(stealerType).Named("type"), lit("!"))},
		{Name: "context", Root: seq(
			lit("<"),
			grammar.Commit(),
			cnst(contextType).Named("type"),
			alt(
				seq(ref("quoted").Named("str")),
				seq(pat(`[A-Za-z_0-9]*`, -1).Named("raw")),
			).Named("val"),
			lit(">"),
		)},
		{Name: "reference", Root: seq(
			lit("@"),
			grammar.Commit(),
			cnst(referenceType).Named("type"),
			ref("name").Named("val"),
		)},
	}
}
