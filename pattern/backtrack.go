package pattern

import (
	"time"

	"github.com/dlclark/regexp2"
)

const DefaultTimeout = 5 * time.Second

// Backtrack is a backtracking engine supporting lookaround and backreferences.
// Zero Timeout means no limit.
type Backtrack struct {
	Timeout time.Duration
}

func (Backtrack) Name() string {
	return BacktrackName
}

func (b Backtrack) Compile(expr string, flags Flags) (Regexp, error) {
	opts := regexp2.None
	if flags&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if flags&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	if flags&DotAll != 0 {
		opts |= regexp2.Singleline
	}

	re, e := regexp2.Compile(`\A(?:`+expr+`)`, opts)
	if e != nil {
		return nil, compileError(BacktrackName, expr, e)
	}
	if b.Timeout > 0 {
		re.MatchTimeout = b.Timeout
	}
	return &backtrackRegexp{re, expr}, nil
}

type backtrackRegexp struct {
	re   *regexp2.Regexp
	expr string
}

// MatchAt runs on the rune view of in, offsets are converted back to bytes.
func (r *backtrackRegexp) MatchAt(in *Input, pos, group int) (Match, bool, error) {
	runes, starts := in.runesFrom(pos)
	m, e := r.re.FindRunesMatch(runes)
	if e != nil {
		return Match{}, false, timeoutError(r.expr, e)
	}
	if m == nil || m.Index != 0 {
		return Match{}, false, nil
	}

	input := in.Bytes()
	res := Match{Size: starts[m.Length] - pos}
	if group <= 0 {
		res.Group = input[pos : pos+res.Size]
		res.HasGroup = true
		return res, true, nil
	}

	g := m.GroupByNumber(group)
	if g != nil && len(g.Captures) > 0 {
		start, end := starts[g.Index], starts[g.Index+g.Length]
		res.Group = input[start:end]
		res.GroupStart = start - pos
		res.HasGroup = true
	}
	return res, true, nil
}

func (r *backtrackRegexp) NumGroups() int {
	return len(r.re.GetGroupNumbers()) - 1
}

func (r *backtrackRegexp) String() string {
	return r.expr
}
