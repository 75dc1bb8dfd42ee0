package langdef

import (
	"context"

	"go.uber.org/zap"

	"github.com/CausticLang/CausticLexer/grammar"
	"github.com/CausticLang/CausticLexer/pattern"
	"github.com/CausticLang/CausticLexer/source"
)

// Pragma is a "$type argument" line. Pragmas have no meaning for the compiler, they are passed to the caller.
type Pragma struct {
	Type string
	Arg  string
	Line int
	Col  int
}

// Result holds compiled grammar and pragmas in source order. Results must not be modified.
type Result struct {
	Grammar *grammar.Grammar
	Pragmas []Pragma
}

// Pragma returns the last pragma of given type.
func (r *Result) Pragma(typ string) (Pragma, bool) {
	for i := len(r.Pragmas) - 1; i >= 0; i-- {
		if r.Pragmas[i].Type == typ {
			return r.Pragmas[i], true
		}
	}
	return Pragma{}, false
}

// PragmasOf returns all pragmas of given type.
func (r *Result) PragmasOf(typ string) []Pragma {
	res := make([]Pragma, 0)
	for _, p := range r.Pragmas {
		if p.Type == typ {
			res = append(res, p)
		}
	}
	return res
}

type config struct {
	ctx    context.Context
	engine pattern.Engine
	logger *zap.Logger
}

type Option func(*config)

// WithEngine sets regexp engine for pattern nodes of compiled grammar (pattern.Default by default).
func WithEngine(engine pattern.Engine) Option {
	return func(c *config) {
		c.engine = engine
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithContext sets context checked while matching grammar description.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

func newConfig(opts []Option) config {
	c := config{ctx: context.Background(), engine: pattern.Default, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// CompileString compiles grammar description held in a string, name is used in error messages.
func CompileString(name, content string, opts ...Option) (*Result, error) {
	return Compile(source.NewString(name, content), opts...)
}

// CompileBytes compiles grammar description held in a byte slice, name is used in error messages.
func CompileBytes(name string, content []byte, opts ...Option) (*Result, error) {
	return Compile(source.New(name, content), opts...)
}

// MustCompile is like CompileString but panics on error.
func MustCompile(name, content string, opts ...Option) *Result {
	r, e := CompileString(name, content, opts...)
	if e != nil {
		panic(e)
	}
	return r
}

// ScanPragmas returns pragmas of grammar description without building its rules,
// so callers may configure compilation (e.g. select regexp engine) before Compile.
func ScanPragmas(src *source.Source, opts ...Option) ([]Pragma, error) {
	c := newConfig(opts)
	tree, e := getBootstrapMatcher().MatchSource(c.ctx, grammarRule, src)
	if e != nil {
		return nil, syntaxError(e)
	}

	b := &builder{src: src}
	for _, entry := range tree.Items() {
		if field(entry, "kind").Text() == pragmaKind {
			b.addPragma(entry)
		}
	}
	return b.pragmas, nil
}

// Compile parses grammar description using the bootstrap grammar and builds grammar.Grammar.
// Errors are *causticlexer.Error: SyntaxError and other codes of this package for malformed descriptions,
// grammar package codes for invalid rule graphs (e.g. undefined rule references).
func Compile(src *source.Source, opts ...Option) (*Result, error) {
	c := newConfig(opts)

	tree, e := getBootstrapMatcher().MatchSource(c.ctx, grammarRule, src)
	if e != nil {
		return nil, syntaxError(e)
	}

	b := &builder{src: src, engine: c.engine, index: make(map[string]bool)}
	var res *Result
	e = b.build(tree, e)
	res, e = b.result(e)
	if e != nil {
		return nil, e
	}

	for _, p := range res.Pragmas {
		c.logger.Debug("pragma", zap.String("source", src.Name()), zap.String("type", p.Type), zap.String("arg", p.Arg), zap.Int("line", p.Line))
	}
	c.logger.Debug("grammar compiled",
		zap.String("source", src.Name()),
		zap.Int("rules", res.Grammar.Len()),
		zap.Int("pragmas", len(res.Pragmas)),
		zap.String("engine", c.engine.Name()),
	)
	return res, nil
}
