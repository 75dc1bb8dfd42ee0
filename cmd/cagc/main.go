/*
cagc is a console utility compiling grammar descriptions and matching input against them.
Usage is

	cagc compile [-f json|yaml|go|cag] [-o <file>] [-p <name>] [--var <name>] <grammar>
	cagc match [-r <rule>] [--prefix] [-f json|yaml|text] [--skip <regexp>] <grammar> [<input>]
	cagc check [--rules] <grammar>...
	cagc version

<grammar> is a grammar description file parsable by langdef.Compile
or a compiled grammar file with .json, .yaml, or .yml suffix.

Global flags: --config <file> (default .cagc.yaml), --engine re2|backtrack,
--color auto|always|never, -v (verbose logging).

Pragmas of grammar descriptions recognized by cagc:

	$print <text>    print text to stderr when the grammar is loaded
	$name <text>     grammar name used in reports
	$entry <rule>    rule matched when -r is not set
	$skip <regexp>   insignificant text skipped by the matcher
	$engine <name>   regexp engine used unless set by --engine or config file

Exit status is 1 if input does not match, 3 on any other error.
*/
package main

import (
	"errors"
	"os"

	cl "github.com/CausticLang/CausticLexer"
)

func main() {
	if e := Execute(); e != nil {
		var reported reportedError
		if !errors.As(e, &reported) {
			printDiagnostic(os.Stderr, nil, e)
		}
		if cl.InClass(e, cl.MatchErrors) {
			os.Exit(1)
		}
		os.Exit(3)
	}
}
