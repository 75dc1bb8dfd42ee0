package main

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"

	"github.com/CausticLang/CausticLexer/grammar"
	"github.com/CausticLang/CausticLexer/pattern"
)

// makeGo generates Go source file defining variable that builds g with grammar constructors.
func makeGo(g *grammar.Grammar, inFileName string) ([]byte, error) {
	pkg := packageName
	if pkg == "" {
		var e error
		if pkg, e = defaultPackageName(); e != nil {
			return nil, e
		}
	}
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("invalid package name: %s", pkg)
	}
	if !token.IsIdentifier(varName) {
		return nil, fmt.Errorf("invalid variable name: %s", varName)
	}

	engine, e := goEngine(g.Engine())
	if e != nil {
		return nil, e
	}

	var buffer bytes.Buffer
	buffer.WriteString("// Code generated by cagc from " + inFileName + ". DO NOT EDIT.\n\n" +
		"package " + pkg + "\n\n" +
		"import (\n" +
		"\t\"github.com/CausticLang/CausticLexer/grammar\"\n" +
		"\t\"github.com/CausticLang/CausticLexer/pattern\"\n" +
		")\n\n" +
		"var " + varName + " = grammar.MustNew(" + engine + ",\n")

	for _, r := range g.Rules() {
		var sb strings.Builder
		writeGoNode(&sb, r.Root)
		buffer.WriteString(fmt.Sprintf("\tgrammar.Rule{Name: %q, Root: %s},\n", r.Name, sb.String()))
	}
	buffer.WriteString(")\n")

	return format.Source(buffer.Bytes())
}

func goEngine(engine pattern.Engine) (string, error) {
	switch engine.Name() {
	case pattern.RE2Name:
		return "pattern.RE2{}", nil
	case pattern.BacktrackName:
		return "pattern.Backtrack{Timeout: pattern.DefaultTimeout}", nil
	default:
		return "", fmt.Errorf("cannot generate Go source for %q regexp engine", engine.Name())
	}
}

func writeGoNode(sb *strings.Builder, n *grammar.Node) {
	switch n.Kind {
	case grammar.SequenceNode:
		if n.Sensitive {
			writeGoCall(sb, "grammar.SeqWS", n.Children)
		} else {
			writeGoCall(sb, "grammar.Seq", n.Children)
		}

	case grammar.AlternationNode:
		writeGoCall(sb, "grammar.Alt", n.Children)

	case grammar.RepetitionNode:
		name := "grammar.Rep"
		if n.Sensitive {
			name = "grammar.RepWS"
		}
		upper := "grammar.Unbounded"
		if n.Max >= 0 {
			upper = strconv.Itoa(n.Max)
		}
		fmt.Fprintf(sb, "%s(%d, %s, ", name, n.Min, upper)
		writeGoNode(sb, n.Item())
		sb.WriteByte(')')

	case grammar.LiteralNode:
		fmt.Fprintf(sb, "grammar.Lit(%s)", strconv.Quote(n.Text))

	case grammar.PatternNode:
		fmt.Fprintf(sb, "grammar.Pat(%s, %d, %s)", strconv.Quote(n.Pattern.Expr), n.Pattern.Group, goFlags(n.Pattern.Flags))

	case grammar.ReferenceNode:
		fmt.Fprintf(sb, "grammar.Ref(%q)", n.Ref)

	case grammar.ConstantNode:
		fmt.Fprintf(sb, "grammar.Const(%s)", strconv.Quote(n.Text))

	case grammar.CommitNode:
		sb.WriteString("grammar.Commit()")
	}

	switch n.Capture.Mode {
	case grammar.NamedCapture:
		fmt.Fprintf(sb, ".Named(%q)", n.Capture.Name)
	case grammar.AnonCapture:
		sb.WriteString(".Anon()")
	case grammar.DropCapture:
		sb.WriteString(".Drop()")
	}
}

func writeGoCall(sb *strings.Builder, name string, children []*grammar.Node) {
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, child := range children {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeGoNode(sb, child)
	}
	sb.WriteByte(')')
}

func goFlags(flags pattern.Flags) string {
	if flags == 0 {
		return "0"
	}

	names := make([]string, 0, 3)
	for _, f := range []struct {
		flag pattern.Flags
		name string
	}{
		{pattern.IgnoreCase, "pattern.IgnoreCase"},
		{pattern.Multiline, "pattern.Multiline"},
		{pattern.DotAll, "pattern.DotAll"},
	} {
		if flags&f.flag != 0 {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}
