package matcher

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/CausticLang/CausticLexer/capture"
	"github.com/CausticLang/CausticLexer/grammar"
	"github.com/CausticLang/CausticLexer/pattern"
	"github.com/CausticLang/CausticLexer/source"
)

type outcome uint8

const (
	matched outcome = iota
	failed
	fatal
)

// how often (in rule entries) the context is polled
const ctxCheckPeriod = 256

// run holds state of a single match call.
type run struct {
	m       *Matcher
	ctx     context.Context
	src     *source.Source
	input   []byte
	text    *pattern.Input
	depth   int
	lastEnd int // end of the furthest consumed text
	entries int
	far     failure
	err     error
}

func (m *Matcher) newRun(ctx context.Context, src *source.Source) *run {
	return &run{m: m, ctx: ctx, src: src, input: src.Content(), text: pattern.NewInput(src.Content())}
}

// result converts unsuccessful outcome to error.
func (r *run) result(o outcome) error {
	if r.err != nil {
		return r.err
	}
	at := r.far.pos
	if at >= len(r.input) && r.lastEnd < at {
		at = r.lastEnd
	}
	return matchError(r.src, r.far, at, o == fatal)
}

// abort stores hard error; all pending matches unwind as fatal.
func (r *run) abort(e error) (int, capture.Value, outcome) {
	if r.err == nil {
		r.err = e
	}
	return 0, capture.Value{}, fatal
}

func (r *run) consumed(end int) {
	if end > r.lastEnd {
		r.lastEnd = end
	}
}

func (r *run) skip(pos int) int {
	if r.m.skip == nil || pos >= len(r.input) {
		return pos
	}
	m, ok, e := r.m.skip.MatchAt(r.text, pos, 0)
	if !ok || e != nil {
		return pos
	}
	return pos + m.Size
}

func (r *run) enter(name string, n *grammar.Node, pos int) (int, capture.Value, outcome) {
	r.entries++
	if r.entries%ctxCheckPeriod == 0 {
		if e := r.ctx.Err(); e != nil {
			return r.abort(canceledError(r.src, pos, e))
		}
	}

	if r.depth >= r.m.maxDepth {
		return r.abort(depthError(r.src, pos, r.m.maxDepth))
	}

	if r.m.trace {
		r.m.logger.Debug("enter rule", zap.String("rule", name), zap.Int("pos", pos), zap.Int("depth", r.depth))
	}

	r.depth++
	end, v, o := r.match(n, pos)
	r.depth--

	if r.m.trace && o != matched {
		r.m.logger.Debug("rule failed", zap.String("rule", name), zap.Int("pos", pos), zap.Bool("fatal", o == fatal))
	}
	return end, v, o
}

func (r *run) match(n *grammar.Node, pos int) (int, capture.Value, outcome) {
	switch n.Kind {
	case grammar.LiteralNode:
		end := pos + len(n.Text)
		if end <= len(r.input) && string(r.input[pos:end]) == n.Text {
			r.consumed(end)
			return end, capture.NewScalar(pos, r.input[pos:end]), matched
		}
		r.far.add(pos, strconv.Quote(n.Text))
		return pos, capture.Value{}, failed

	case grammar.PatternNode:
		return r.matchPattern(n.Pattern, pos)

	case grammar.ConstantNode:
		return pos, capture.NewScalar(pos, []byte(n.Text)), matched

	case grammar.CommitNode:
		return pos, capture.NewUnit(pos), matched

	case grammar.SequenceNode:
		return r.matchSequence(n, pos)

	case grammar.AlternationNode:
		for _, candidate := range n.Children {
			end, v, o := r.match(candidate, pos)
			if o != failed {
				return end, v, o
			}
		}
		return pos, capture.Value{}, failed

	case grammar.RepetitionNode:
		return r.matchRepetition(n, pos)

	case grammar.ReferenceNode:
		target := r.m.grammar.Rule(n.Ref)
		if target == nil {
			return r.abort(unknownEntryError(n.Ref))
		}
		return r.enter(n.Ref, target, pos)
	}

	return pos, capture.Value{}, failed
}

func (r *run) matchPattern(p *grammar.Pattern, pos int) (int, capture.Value, outcome) {
	m, ok, e := p.Regexp().MatchAt(r.text, pos, p.Group)
	if e != nil {
		return r.abort(patternError(r.src, pos, e))
	}
	if !ok {
		r.far.add(pos, "/"+p.Expr+"/"+p.Flags.String())
		return pos, capture.Value{}, failed
	}

	end := pos + m.Size
	r.consumed(end)
	if !m.HasGroup {
		return end, capture.NewUnit(pos), matched
	}
	return end, capture.NewScalar(pos+m.GroupStart, m.Group), matched
}

func (r *run) matchSequence(n *grammar.Node, start int) (int, capture.Value, outcome) {
	pos := start
	parts := make([]capture.Part, 0, len(n.Children))
	committed := false
	var saved failure

	for i, child := range n.Children {
		if i > 0 && !n.Sensitive {
			pos = r.skip(pos)
		}

		if child.Kind == grammar.CommitNode {
			committed = true
			saved = r.far
			r.far = failure{pos: pos}
			continue
		}

		end, v, o := r.match(child, pos)
		switch {
		case o == fatal:
			return start, capture.Value{}, fatal
		case o == failed && committed:
			return start, capture.Value{}, fatal
		case o == failed:
			return start, capture.Value{}, failed
		}

		parts = append(parts, capture.Part{Capture: child.Capture, Value: v})
		pos = end
	}

	if committed {
		saved.merge(r.far)
		r.far = saved
	}

	v, e := capture.Assemble(start, parts)
	if e != nil {
		return r.abort(e)
	}
	return pos, v, matched
}

func (r *run) matchRepetition(n *grammar.Node, start int) (int, capture.Value, outcome) {
	item := n.Item()
	items := make([]capture.Value, 0)
	pos := start

	for n.Max < 0 || len(items) < n.Max {
		next := pos
		if len(items) > 0 && !n.Sensitive {
			next = r.skip(pos)
		}

		end, v, o := r.match(item, next)
		if o == fatal {
			return start, capture.Value{}, fatal
		}
		if o == failed {
			break
		}

		items = append(items, v)
		pos = end
		if end == next && len(items) >= n.Min {
			break
		}
	}

	if len(items) < n.Min {
		return start, capture.Value{}, failed
	}
	return pos, capture.NewSequence(start, items), matched
}
