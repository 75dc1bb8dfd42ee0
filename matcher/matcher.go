// Package matcher matches input against grammar rules using recursive descent with full backtracking.
//
// Every node either matches (advancing the cursor and producing a capture.Value), fails
// (the caller may try alternatives), or fails fatally after a commit point; fatal failures
// are never recovered by alternations or repetitions. On failure the error reports
// the furthest input position reached and what was expected there.
package matcher

import (
	"context"

	"go.uber.org/zap"

	cl "github.com/CausticLang/CausticLexer"
	"github.com/CausticLang/CausticLexer/capture"
	"github.com/CausticLang/CausticLexer/grammar"
	"github.com/CausticLang/CausticLexer/pattern"
	"github.com/CausticLang/CausticLexer/source"
)

const (
	DefaultSkip     = `\s+`
	DefaultMaxDepth = 10000
)

type config struct {
	logger   *zap.Logger
	skip     string
	maxDepth int
}

type Option func(*config)

// WithLogger sets logger used for match tracing (Debug level).
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSkip sets expression matching insignificant text (whitespace, comments) skipped between
// sequence children and repetition items. Empty expression disables skipping.
func WithSkip(expr string) Option {
	return func(c *config) {
		c.skip = expr
	}
}

// WithMaxDepth limits rule nesting depth, non-positive value means DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// Matcher is immutable and safe for concurrent use.
type Matcher struct {
	grammar  *grammar.Grammar
	skip     pattern.Regexp
	maxDepth int
	logger   *zap.Logger
	trace    bool
}

// New creates matcher for g. Skip expression is compiled with grammar engine.
func New(g *grammar.Grammar, opts ...Option) (*Matcher, error) {
	c := config{skip: DefaultSkip, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	if c.maxDepth <= 0 {
		c.maxDepth = DefaultMaxDepth
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	m := &Matcher{
		grammar:  g,
		maxDepth: c.maxDepth,
		logger:   c.logger,
		trace:    c.logger.Core().Enabled(zap.DebugLevel),
	}

	if c.skip != "" {
		re, e := g.Engine().Compile(c.skip, 0)
		if e != nil {
			return nil, wrongSkipError(e)
		}
		if pattern.MatchesEmpty(re) {
			return nil, wrongSkipError(cl.FormatError(WrongSkipError, "/%s/ matches empty text", c.skip))
		}
		m.skip = re
	}

	return m, nil
}

// MustNew is like New but panics on error.
func MustNew(g *grammar.Grammar, opts ...Option) *Matcher {
	m, e := New(g, opts...)
	if e != nil {
		panic(e)
	}
	return m
}

func (m *Matcher) Grammar() *grammar.Grammar {
	return m.grammar
}

// Match matches whole input against rule.
func (m *Matcher) Match(ctx context.Context, rule string, input []byte) (capture.Value, error) {
	return m.MatchSource(ctx, rule, source.New("", input))
}

// MatchString is a shorthand for Match.
func (m *Matcher) MatchString(ctx context.Context, rule, input string) (capture.Value, error) {
	return m.MatchSource(ctx, rule, source.NewString("", input))
}

// MatchSource matches whole source content against rule; error positions refer to src.
// Unless rule root is whitespace-sensitive, insignificant text at both ends of input is skipped.
func (m *Matcher) MatchSource(ctx context.Context, rule string, src *source.Source) (capture.Value, error) {
	root := m.grammar.Rule(rule)
	if root == nil {
		return capture.Value{}, unknownEntryError(rule)
	}

	r := m.newRun(ctx, src)
	trim := !root.Sensitive
	pos := 0
	if trim {
		pos = r.skip(pos)
	}

	end, v, o := r.enter(rule, root, pos)
	if o != matched {
		return capture.Value{}, r.result(o)
	}

	if trim {
		end = r.skip(end)
	}
	if end < src.Len() {
		r.far.add(end, "end of input")
		return capture.Value{}, r.result(failed)
	}

	return v, nil
}

// MatchPrefix matches rule at the start of input and returns the number of consumed bytes.
// Nothing is skipped before or after the match.
func (m *Matcher) MatchPrefix(ctx context.Context, rule string, input []byte) (capture.Value, int, error) {
	return m.MatchSourcePrefix(ctx, rule, source.New("", input))
}

// MatchSourcePrefix is like MatchPrefix, error positions refer to src.
func (m *Matcher) MatchSourcePrefix(ctx context.Context, rule string, src *source.Source) (capture.Value, int, error) {
	root := m.grammar.Rule(rule)
	if root == nil {
		return capture.Value{}, 0, unknownEntryError(rule)
	}

	r := m.newRun(ctx, src)
	end, v, o := r.enter(rule, root, 0)
	if o != matched {
		return capture.Value{}, 0, r.result(o)
	}
	return v, end, nil
}
