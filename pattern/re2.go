package pattern

import (
	"github.com/coregx/coregex"
)

// RE2 is the default engine: byte-oriented, linear time, RE2 syntax.
type RE2 struct{}

func (RE2) Name() string {
	return RE2Name
}

func (RE2) Compile(expr string, flags Flags) (Regexp, error) {
	re, e := coregex.Compile(anchored(expr, flags))
	if e != nil {
		return nil, compileError(RE2Name, expr, e)
	}
	return &re2Regexp{re, expr}, nil
}

func anchored(expr string, flags Flags) string {
	return `\A(?` + flags.String() + `:` + expr + `)`
}

type re2Regexp struct {
	re   *coregex.Regex
	expr string
}

func (r *re2Regexp) MatchAt(in *Input, pos, group int) (Match, bool, error) {
	input := in.Bytes()[pos:]
	loc := r.re.FindSubmatchIndex(input)
	if loc == nil || loc[0] != 0 {
		return Match{}, false, nil
	}
	return groupText(input, loc, group), true, nil
}

// NumGroups excludes group 0, which coregex counts.
func (r *re2Regexp) NumGroups() int {
	return r.re.NumSubexp() - 1
}

func (r *re2Regexp) String() string {
	return r.expr
}
