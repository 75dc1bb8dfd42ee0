package langdef

import (
	"strconv"
	"strings"

	"github.com/CausticLang/CausticLexer/capture"
	"github.com/CausticLang/CausticLexer/grammar"
	"github.com/CausticLang/CausticLexer/pattern"
	"github.com/CausticLang/CausticLexer/source"
)

// builder converts the value produced by the bootstrap grammar into rules.
type builder struct {
	src     *source.Source
	engine  pattern.Engine
	rules   []grammar.Rule
	pragmas []Pragma
	index   map[string]bool
}

func field(v capture.Value, key string) capture.Value {
	res, _ := v.Get(key)
	return res
}

func (b *builder) build(tree capture.Value, e error) error {
	if e != nil {
		return e
	}

	for _, entry := range tree.Items() {
		switch kind := field(entry, "kind").Text(); kind {
		case pragmaKind:
			b.addPragma(entry)
		case statementKind:
			if e = b.addStatement(entry); e != nil {
				return e
			}
		default:
			return malformedTreeError(b.src, entry.Pos(), "entry kind "+strconv.Quote(kind))
		}
	}
	return nil
}

func (b *builder) result(e error) (*Result, error) {
	if e != nil {
		return nil, e
	}

	g, e := grammar.New(b.engine, b.rules...)
	if e != nil {
		return nil, e
	}
	return &Result{Grammar: g, Pragmas: b.pragmas}, nil
}

func (b *builder) addPragma(entry capture.Value) {
	line, col := b.src.LineCol(entry.Pos())
	b.pragmas = append(b.pragmas, Pragma{
		Type: field(entry, "type").Text(),
		Arg:  strings.TrimRight(field(entry, "arg").Text(), " \t\r"),
		Line: line,
		Col:  col,
	})
}

func (b *builder) addStatement(entry capture.Value) error {
	nameValue := field(entry, "name")
	name := nameValue.Text()
	if b.index[name] {
		return ruleDefinedError(b.src, nameValue.Pos(), name)
	}
	b.index[name] = true

	children, e := b.compileList(field(entry, "expr"))
	if e != nil {
		return e
	}
	b.rules = append(b.rules, grammar.Rule{Name: name, Root: grammar.Seq(children...)})
	return nil
}

func (b *builder) compileList(list capture.Value) ([]*grammar.Node, error) {
	res := make([]*grammar.Node, 0, list.Len())
	for _, item := range list.Items() {
		n, e := b.compileExpr(item)
		if e != nil {
			return nil, e
		}
		res = append(res, n)
	}
	return res, nil
}

func (b *builder) compileExpr(expr capture.Value) (*grammar.Node, error) {
	term := field(expr, "node")
	val := field(term, "val")
	var (
		n *grammar.Node
		e error
	)

	switch typ := field(term, "type").Text(); typ {
	case groupType, groupWSType, unionType:
		var children []*grammar.Node
		children, e = b.compileList(val)
		switch typ {
		case groupType:
			n = grammar.Seq(children...)
		case groupWSType:
			n = grammar.SeqWS(children...)
		default:
			n = grammar.Alt(children...)
		}

	case rangeType, rangeWSType:
		n, e = b.compileRange(val, typ == rangeWSType)

	case stringType:
		var text []byte
		text, e = b.decode(val)
		n = grammar.Lit(string(text))

	case patternType:
		n, e = b.compilePattern(val)

	case stealerType:
		n = grammar.Commit()

	case contextType:
		if raw, found := val.Get("raw"); found {
			n = grammar.Const(raw.Text())
		} else {
			var text []byte
			text, e = b.decode(field(val, "str"))
			n = grammar.Const(string(text))
		}

	case referenceType:
		n = grammar.Ref(val.Text())

	default:
		return nil, malformedTreeError(b.src, term.Pos(), "node type "+strconv.Quote(typ))
	}

	if e != nil {
		return nil, e
	}
	return n.WithCapture(b.capture(field(expr, "name"))), nil
}

func (b *builder) capture(prefix capture.Value) grammar.Capture {
	if prefix.Len() == 0 {
		return grammar.Capture{}
	}

	c := prefix.Index(0)
	if c.Kind() == capture.Mapping {
		return grammar.Capture{Mode: grammar.NamedCapture, Name: field(c, "key").Text()}
	}
	if c.Text() == dropCapture {
		return grammar.Capture{Mode: grammar.DropCapture}
	}
	return grammar.Capture{Mode: grammar.AnonCapture}
}

func (b *builder) compileRange(val capture.Value, sensitive bool) (*grammar.Node, error) {
	min, e := b.number(field(val, "min"), 0)
	if e != nil {
		return nil, e
	}
	max, e := b.number(field(val, "max"), grammar.Unbounded)
	if e != nil {
		return nil, e
	}
	item, e := b.compileExpr(field(val, "node"))
	if e != nil {
		return nil, e
	}

	if sensitive {
		return grammar.RepWS(min, max, item), nil
	}
	return grammar.Rep(min, max, item), nil
}

func (b *builder) compilePattern(val capture.Value) (*grammar.Node, error) {
	group, e := b.number(field(val, "group"), -1)
	if e != nil {
		return nil, e
	}

	flags, e := pattern.ParseFlags(field(val, "flags").Text())
	if e != nil {
		return nil, malformedTreeError(b.src, field(val, "flags").Pos(), e.Error())
	}

	body := field(val, "body")
	p, e := grammar.NewPattern(b.engine, body.Text(), group, flags)
	if e != nil {
		return nil, wrongPatternError(b.src, body.Pos(), e)
	}
	return grammar.PatNode(p), nil
}

// number converts optional digits (a sequence of 0 or 1 scalars) to int.
func (b *builder) number(opt capture.Value, def int) (int, error) {
	if opt.Len() == 0 {
		return def, nil
	}

	digits := opt.Index(0)
	res, e := strconv.Atoi(digits.Text())
	if e != nil {
		return 0, numberError(b.src, digits.Pos(), digits.Text())
	}
	return res, nil
}

func (b *builder) decode(v capture.Value) ([]byte, error) {
	res, ee := decodeEscapes(v.Bytes())
	if ee != nil {
		return nil, escapeError(b.src, v.Pos(), ee)
	}
	return res, nil
}
