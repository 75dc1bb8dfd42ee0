package pattern

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cl "github.com/CausticLang/CausticLexer"
)

type matchSample struct {
	expr     string
	flags    string
	input    string
	group    int
	ok       bool
	size     int
	text     string
	hasGroup bool
}

var commonSamples = []matchSample{
	{`\d+`, "", "123abc", 0, true, 3, "123", true},
	{`\d+`, "", "abc123", 0, false, 0, "", false},
	{`a(b)?c`, "", "acx", 1, true, 2, "", false},
	{`a(b)?c`, "", "abcx", 1, true, 3, "b", true},
	{`abc`, "i", "ABCd", 0, true, 3, "ABC", true},
	{`a.b`, "", "a\nb", 0, false, 0, "", false},
	{`a.b`, "s", "a\nb", 0, true, 3, "a\nb", true},
	{`x$`, "", "x\ny", 0, false, 0, "", false},
	{`x$`, "m", "x\ny", 0, true, 1, "x", true},
	{`a|b`, "", "ba", 0, true, 1, "b", true},
	{`[ \t]*([^\n]*)`, "", "  rest of line\nnext", 1, true, 14, "rest of line", true},
	{`é+`, "", "ééx", 0, true, 4, "éé", true},
	{`x*`, "", "", 0, true, 0, "", true},
}

func checkSamples(t *testing.T, engine Engine, samples []matchSample) {
	for i, s := range samples {
		flags, e := ParseFlags(s.flags)
		require.NoError(t, e)
		re, e := engine.Compile(s.expr, flags)
		require.NoError(t, e, "%s sample #%d", engine.Name(), i)

		m, ok, e := re.MatchAt(NewInput([]byte(s.input)), 0, s.group)
		require.NoError(t, e)
		if !assert.Equal(t, s.ok, ok, "%s sample #%d: /%s/ on %q", engine.Name(), i, s.expr, s.input) || !ok {
			continue
		}

		assert.Equal(t, s.size, m.Size, "%s sample #%d: size", engine.Name(), i)
		assert.Equal(t, s.hasGroup, m.HasGroup, "%s sample #%d: group presence", engine.Name(), i)
		if s.hasGroup {
			assert.Equal(t, s.text, string(m.Group), "%s sample #%d: group", engine.Name(), i)
		}
	}
}

func TestRE2(t *testing.T) {
	checkSamples(t, RE2{}, commonSamples)
}

func TestBacktrack(t *testing.T) {
	checkSamples(t, Backtrack{Timeout: time.Second}, commonSamples)
	checkSamples(t, Backtrack{}, []matchSample{
		{`foo(?=bar)`, "", "foobar", 0, true, 3, "foo", true},
		{`(a)\1`, "", "aab", 0, true, 2, "aa", true},
	})
}

func TestNumGroups(t *testing.T) {
	for _, engine := range []Engine{RE2{}, Backtrack{}} {
		re, e := engine.Compile(`(a)(?:b)(c)?`, 0)
		require.NoError(t, e)
		assert.Equal(t, 2, re.NumGroups(), engine.Name())
		assert.Equal(t, `(a)(?:b)(c)?`, re.String())

		re, e = engine.Compile(`ab`, 0)
		require.NoError(t, e)
		assert.Zero(t, re.NumGroups(), engine.Name())
	}
}

func TestCompileErrors(t *testing.T) {
	for _, engine := range []Engine{RE2{}, Backtrack{}} {
		_, e := engine.Compile(`(a`, 0)
		assert.Equal(t, CompileError, cl.ErrorCode(e), engine.Name())
	}

	_, e := RE2{}.Compile(`(?<=a)b`, 0)
	assert.Equal(t, CompileError, cl.ErrorCode(e))
}

func TestMatchesEmpty(t *testing.T) {
	samples := map[string]bool{
		`a*`:    true,
		`a+`:    false,
		`(?:)`:  true,
		`a?b?`:  true,
		`\s+`:   false,
		`[0-9]`: false,
	}
	for expr, expected := range samples {
		re, e := RE2{}.Compile(expr, 0)
		require.NoError(t, e)
		assert.Equal(t, expected, MatchesEmpty(re), expr)
	}
}

func TestFlags(t *testing.T) {
	f, e := ParseFlags("sim")
	require.NoError(t, e)
	assert.Equal(t, IgnoreCase|Multiline|DotAll, f)
	assert.Equal(t, "ims", f.String())

	_, e = ParseFlags("ix")
	assert.Equal(t, WrongFlagError, cl.ErrorCode(e))

	var g Flags
	require.NoError(t, g.UnmarshalText([]byte("s")))
	assert.Equal(t, DotAll, g)
	text, _ := g.MarshalText()
	assert.Equal(t, "s", string(text))
}

func TestLookup(t *testing.T) {
	e, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, RE2Name, e.Name())

	e, err = Lookup(BacktrackName)
	require.NoError(t, err)
	assert.Equal(t, BacktrackName, e.Name())

	_, err = Lookup("pcre")
	assert.Equal(t, UnknownEngineError, cl.ErrorCode(err))
	assert.Equal(t, []string{RE2Name, BacktrackName}, Names())
}

func TestGroupStart(t *testing.T) {
	for _, engine := range []Engine{RE2{}, Backtrack{}} {
		re, e := engine.Compile(`ä*\s*(\w+)`, 0)
		require.NoError(t, e)
		m, ok, e := re.MatchAt(NewInput([]byte("ää  word!")), 0, 1)
		require.NoError(t, e)
		require.True(t, ok, engine.Name())
		assert.Equal(t, 6, m.GroupStart, engine.Name())
		assert.Equal(t, "word", string(m.Group), engine.Name())
		assert.Equal(t, 10, m.Size, engine.Name())
	}
}

func TestMatchAtOffset(t *testing.T) {
	in := NewInput([]byte("xé (word) ab"))
	for _, engine := range []Engine{RE2{}, Backtrack{}} {
		re, e := engine.Compile(`\(\s*(\w+)\)`, 0)
		require.NoError(t, e)

		_, ok, e := re.MatchAt(in, 0, 1)
		require.NoError(t, e)
		assert.False(t, ok, engine.Name())

		m, ok, e := re.MatchAt(in, 4, 1)
		require.NoError(t, e)
		require.True(t, ok, engine.Name())
		assert.Equal(t, 6, m.Size, engine.Name())
		assert.Equal(t, 1, m.GroupStart, engine.Name())
		assert.Equal(t, "word", string(m.Group), engine.Name())

		anchored, e := engine.Compile(`^ab`, 0)
		require.NoError(t, e)
		m, ok, e = anchored.MatchAt(in, 11, 0)
		require.NoError(t, e)
		require.True(t, ok, engine.Name())
		assert.Equal(t, "ab", string(m.Group), engine.Name())
	}
}

func TestInputRunes(t *testing.T) {
	in := NewInput([]byte("aé\xffb"))
	runes, starts := in.runesFrom(0)
	assert.Equal(t, []rune{'a', 'é', utf8.RuneError, 'b'}, runes)
	assert.Equal(t, []int{0, 1, 3, 4, 5}, starts)

	runes, starts = in.runesFrom(3)
	assert.Equal(t, []rune{utf8.RuneError, 'b'}, runes)
	assert.Equal(t, []int{3, 4, 5}, starts)

	runes, starts = in.runesFrom(2)
	assert.Equal(t, []rune{utf8.RuneError, utf8.RuneError, 'b'}, runes)
	assert.Equal(t, []int{2, 3, 4, 5}, starts)

	runes, starts = in.runesFrom(5)
	assert.Empty(t, runes)
	assert.Equal(t, []int{5}, starts)

	re, e := Backtrack{}.Compile(`.b`, 0)
	require.NoError(t, e)
	m, ok, e := re.MatchAt(in, 3, 0)
	require.NoError(t, e)
	require.True(t, ok)
	assert.Equal(t, 2, m.Size)
}
