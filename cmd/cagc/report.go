package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	cl "github.com/CausticLang/CausticLexer"
)

var (
	errorStyle = color.New(color.Bold, color.FgRed)
	okStyle    = color.New(color.Bold, color.FgGreen)
	lineStyle  = color.New(color.FgHiBlue)
	caretStyle = color.New(color.Bold, color.FgHiGreen)
)

// reportedError wraps an error whose diagnostic has already been printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string {
	return e.err.Error()
}

func (e reportedError) Unwrap() error {
	return e.err
}

func setColor(mode string) error {
	switch mode {
	case "", "auto":
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid color mode %q, expecting auto, always, or never", mode)
	}
	return nil
}

func report(w io.Writer, content []byte, e error) error {
	printDiagnostic(w, content, e)
	return reportedError{e}
}

// printDiagnostic prints error message and, for positioned errors, the offending source line with a caret.
func printDiagnostic(w io.Writer, content []byte, e error) {
	errorStyle.Fprint(w, "error: ")
	fmt.Fprintln(w, e.Error())

	var ce *cl.Error
	if content == nil || !errors.As(e, &ce) || ce.Line == 0 || ce.Offset < 0 || ce.Offset > len(content) {
		return
	}

	start := bytes.LastIndexByte(content[:ce.Offset], '\n') + 1
	end := bytes.IndexByte(content[start:], '\n')
	if end < 0 {
		end = len(content)
	} else {
		end += start
	}
	line := strings.TrimRight(string(content[start:end]), "\r")

	lineStyle.Fprintf(w, "%5d | ", ce.Line)
	fmt.Fprintln(w, line)
	lineStyle.Fprint(w, "      | ")
	fmt.Fprint(w, caretIndent(line, ce.Col-1))
	caretStyle.Fprintln(w, "^")
}

// caretIndent returns padding for n leading runes of line, tabs are kept to preserve alignment.
func caretIndent(line string, n int) string {
	var sb strings.Builder
	for _, r := range line {
		if n <= 0 {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		n--
	}
	return sb.String()
}
