package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	cl "github.com/CausticLang/CausticLexer"
	"github.com/CausticLang/CausticLexer/grammar"
	"github.com/CausticLang/CausticLexer/langdef"
	"github.com/CausticLang/CausticLexer/matcher"
)

const greetingSrc = `$name greeting
$entry hello
$print loading greeting
$custom thing
hello = "hello" ! name:/\w+/ punct:0-1"!";
`

func resetGlobals() {
	cfg = config{}
	logger = zap.NewNop()
	outFileName, outFormat, packageName, varName = "", "json", "", "Grammar"
	matchRule, matchFormat, matchSkip, matchPrefix, noSkip = "", "", "", false, false
	listRules = false
	color.NoColor = true
}

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

func TestRunVersion(t *testing.T) {
	cmd, out, _ := newTestCmd()
	require.NoError(t, runVersion(cmd, []string{}))

	output := out.String()
	assert.Contains(t, output, "cagc v")
	assert.Contains(t, output, "Commit:")
	assert.Contains(t, output, "Regexp engines: re2, backtrack")
	assert.Contains(t, output, "OS/Arch:")
}

func TestCompileFormats(t *testing.T) {
	resetGlobals()
	path := writeFile(t, "greeting.cag", greetingSrc)
	expected := langdef.MustCompile("", greetingSrc).Grammar

	cmd, out, errOut := newTestCmd()
	require.NoError(t, runCompile(cmd, []string{path}))
	g, e := grammar.Load(out.Bytes())
	require.NoError(t, e)
	assert.True(t, g.Equal(expected))
	assert.Equal(t, "loading greeting\n", errOut.String())

	outFormat = "yaml"
	cmd, out, _ = newTestCmd()
	require.NoError(t, runCompile(cmd, []string{path}))
	g, e = grammar.LoadYAML(out.Bytes())
	require.NoError(t, e)
	assert.True(t, g.Equal(expected))

	outFormat = "cag"
	cmd, out, _ = newTestCmd()
	require.NoError(t, runCompile(cmd, []string{path}))
	assert.Equal(t, expected.String(), out.String())

	outFormat = "xml"
	cmd, _, _ = newTestCmd()
	assert.Error(t, runCompile(cmd, []string{path}))
}

func TestCompileGo(t *testing.T) {
	resetGlobals()
	path := writeFile(t, "greeting.cag", greetingSrc)
	outFormat, packageName, varName = "go", "demo", "Greeting"

	cmd, out, _ := newTestCmd()
	require.NoError(t, runCompile(cmd, []string{path}))

	output := out.String()
	assert.Contains(t, output, "// Code generated by cagc from "+path+". DO NOT EDIT.")
	assert.Contains(t, output, "package demo\n")
	assert.Contains(t, output, "var Greeting = grammar.MustNew(pattern.RE2{},\n")
	assert.Contains(t, output, `grammar.Rule{Name: "hello", Root: grammar.Seq(grammar.Lit("hello"), grammar.Commit(), `+
		`grammar.Pat("\\w+", -1, 0).Named("name"), grammar.Rep(0, 1, grammar.Lit("!")).Named("punct"))},`)

	_, e := parser.ParseFile(token.NewFileSet(), "greeting.go", out.Bytes(), 0)
	assert.NoError(t, e)

	varName = "not valid"
	cmd, _, _ = newTestCmd()
	assert.Error(t, runCompile(cmd, []string{path}))
}

func TestGoFlags(t *testing.T) {
	var sb strings.Builder
	writeGoNode(&sb, grammar.Alt(
		grammar.Pat("a", 1, 0).Drop(),
		grammar.RepWS(2, grammar.Unbounded, grammar.Pat("b", -1, 5)).Anon(),
		grammar.SeqWS(grammar.Const("c"), grammar.Ref("x.y")),
	))
	assert.Equal(t, `grammar.Alt(grammar.Pat("a", 1, 0).Drop(), `+
		`grammar.RepWS(2, grammar.Unbounded, grammar.Pat("b", -1, pattern.IgnoreCase|pattern.DotAll)).Anon(), `+
		`grammar.SeqWS(grammar.Const("c"), grammar.Ref("x.y")))`, sb.String())
}

func TestCompileToFileAndMatch(t *testing.T) {
	resetGlobals()
	path := writeFile(t, "greeting.cag", greetingSrc)
	outFileName = filepath.Join(filepath.Dir(path), "greeting.json")

	cmd, out, _ := newTestCmd()
	require.NoError(t, runCompile(cmd, []string{path}))
	assert.Empty(t, out.String())

	input := writeFile(t, "input.txt", "hello world!")
	matchRule = "hello"
	cmd, out, _ = newTestCmd()
	require.NoError(t, runMatch(cmd, []string{outFileName, input}))

	var v map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.Equal(t, map[string]any{"name": "world", "punct": []any{"!"}}, v)
}

func TestMatch(t *testing.T) {
	resetGlobals()
	path := writeFile(t, "greeting.cag", greetingSrc)
	input := writeFile(t, "input.txt", "  hello world\n")

	cmd, out, errOut := newTestCmd()
	require.NoError(t, runMatch(cmd, []string{path, input}))
	assert.Equal(t, "{\n  \"name\": \"world\",\n  \"punct\": []\n}\n", out.String())
	assert.Equal(t, "loading greeting\n", errOut.String())

	matchFormat = "text"
	cmd, out, _ = newTestCmd()
	require.NoError(t, runMatch(cmd, []string{path, input}))
	assert.Equal(t, "{name: \"world\", punct: []}\n", out.String())

	matchFormat = "yaml"
	cmd, out, _ = newTestCmd()
	require.NoError(t, runMatch(cmd, []string{path, input}))
	var v map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &v))
	assert.Equal(t, "world", v["name"])

	matchFormat = ""
	cfg.Format = "text"
	cmd, out, _ = newTestCmd()
	require.NoError(t, runMatch(cmd, []string{path, input}))
	assert.Equal(t, "{name: \"world\", punct: []}\n", out.String())
}

func TestMatchPrefixFromStdin(t *testing.T) {
	resetGlobals()
	path := writeFile(t, "greeting.cag", greetingSrc)
	matchPrefix = true
	matchFormat = "text"

	cmd, out, errOut := newTestCmd()
	cmd.SetIn(strings.NewReader("hello you! rest"))
	require.NoError(t, runMatch(cmd, []string{path}))
	assert.Equal(t, "{name: \"you\", punct: [\"!\"]}\n", out.String())
	assert.Contains(t, errOut.String(), "matched 10 of 15 bytes")
}

func TestMatchPrefixFailure(t *testing.T) {
	resetGlobals()
	path := writeFile(t, "greeting.cag", greetingSrc)
	input := writeFile(t, "input.txt", "hi there")
	matchPrefix = true

	cmd, _, errOut := newTestCmd()
	e := runMatch(cmd, []string{path, input})
	assert.Equal(t, matcher.MatchFailedError, cl.ErrorCode(e))
	assert.Contains(t, errOut.String(), "in "+input+" at line 1 col 1")
	assert.Contains(t, errOut.String(), "    1 | hi there\n")
}

func TestMatchFailure(t *testing.T) {
	resetGlobals()
	path := writeFile(t, "greeting.cag", greetingSrc)
	input := writeFile(t, "input.txt", "hello !")

	cmd, out, errOut := newTestCmd()
	e := runMatch(cmd, []string{path, input})
	require.Error(t, e)

	var reported reportedError
	assert.True(t, errors.As(e, &reported))
	assert.Equal(t, matcher.MatchFatalError, cl.ErrorCode(e))
	assert.True(t, cl.InClass(e, cl.MatchErrors))
	assert.Empty(t, out.String())

	diag := errOut.String()
	assert.Contains(t, diag, "error: unexpected")
	assert.Contains(t, diag, "    1 | hello !\n")
	assert.Contains(t, diag, "      |       ^\n")
}

func TestMatchRuleSelection(t *testing.T) {
	resetGlobals()
	path := writeFile(t, "words.cag", "first = :\"a\";\nlist = items:1-/\\w+/;\n$skip [ \\t]+\n")

	cmd, out, _ := newTestCmd()
	cmd.SetIn(strings.NewReader("a"))
	matchFormat = "text"
	require.NoError(t, runMatch(cmd, []string{path}))
	assert.Equal(t, "\"a\"\n", out.String())

	matchRule = "list"
	cmd, out, _ = newTestCmd()
	cmd.SetIn(strings.NewReader("a b\tc"))
	require.NoError(t, runMatch(cmd, []string{path}))
	assert.Equal(t, "{items: [\"a\", \"b\", \"c\"]}\n", out.String())

	cmd, _, _ = newTestCmd()
	cmd.SetIn(strings.NewReader("a\nb"))
	assert.Error(t, runMatch(cmd, []string{path}))

	noSkip = true
	cmd, _, _ = newTestCmd()
	cmd.SetIn(strings.NewReader("a b"))
	assert.Error(t, runMatch(cmd, []string{path}))

	noSkip = false
	matchRule = "missing"
	cmd, _, _ = newTestCmd()
	cmd.SetIn(strings.NewReader("a"))
	e := runMatch(cmd, []string{path})
	assert.Equal(t, matcher.UnknownEntryError, cl.ErrorCode(e))
}

func TestEnginePragma(t *testing.T) {
	resetGlobals()
	path := writeFile(t, "kv.cag", "$engine backtrack\nkv = key:/\\w+(?=:)/ \":\" val:/\\w+/;\n")

	cmd, out, _ := newTestCmd()
	require.NoError(t, runCheck(cmd, []string{path}))
	assert.Contains(t, out.String(), "backtrack engine")

	cfg.Engine = "re2"
	cmd, _, errOut := newTestCmd()
	assert.Error(t, runCheck(cmd, []string{path}))
	assert.Contains(t, errOut.String(), "error: ")
}

func TestCheck(t *testing.T) {
	resetGlobals()
	core, logs := observer.New(zap.InfoLevel)
	logger = zap.New(core)

	good := writeFile(t, "greeting.cag", greetingSrc)
	bad := writeFile(t, "bad.cag", "a = \"x\"\n")
	missing := filepath.Join(t.TempDir(), "missing.cag")
	listRules = true

	cmd, out, errOut := newTestCmd()
	e := runCheck(cmd, []string{good, bad, missing})
	require.Error(t, e)
	assert.Equal(t, "2 of 3 grammar files failed", e.Error())

	assert.Equal(t, "ok  greeting: 1 rules, 4 pragmas, re2 engine\n    hello\n", out.String())
	diag := errOut.String()
	assert.Contains(t, diag, "syntax error")
	assert.Contains(t, diag, "    1 | a = \"x\"\n")
	assert.Contains(t, diag, "reading grammar")
	assert.Equal(t, 1, logs.FilterMessage("unknown pragma ignored").Len())
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "cagc.yaml", "engine: backtrack\nskip: \"\"\nmax-depth: 50\nformat: text\ncolor: never\n")
	c, e := loadConfig(path, true)
	require.NoError(t, e)
	require.NotNil(t, c.Skip)
	assert.Equal(t, "", *c.Skip)
	assert.Equal(t, config{Engine: "backtrack", Skip: c.Skip, MaxDepth: 50, Format: "text", Color: "never"}, c)

	c, e = loadConfig(writeFile(t, "empty.yaml", ""), true)
	require.NoError(t, e)
	assert.Equal(t, config{}, c)

	_, e = loadConfig(writeFile(t, "typo.yaml", "engin: re2\n"), true)
	assert.Error(t, e)

	missing := filepath.Join(t.TempDir(), defaultConfigPath)
	c, e = loadConfig(missing, false)
	require.NoError(t, e)
	assert.Equal(t, config{}, c)
	_, e = loadConfig(missing, true)
	assert.Error(t, e)
}

func TestColorAndCaret(t *testing.T) {
	assert.Error(t, setColor("sometimes"))
	require.NoError(t, setColor("never"))
	assert.True(t, color.NoColor)

	assert.Equal(t, "\t  ", caretIndent("\tab c", 3))
	assert.Equal(t, "  ", caretIndent("ab", 5))
	assert.Equal(t, "", caretIndent("ab", 0))
}
