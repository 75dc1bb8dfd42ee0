package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	cl "github.com/CausticLang/CausticLexer"
	"github.com/CausticLang/CausticLexer/capture"
	"github.com/CausticLang/CausticLexer/matcher"
	"github.com/CausticLang/CausticLexer/source"
)

var (
	matchRule   string
	matchFormat string
	matchSkip   string
	matchPrefix bool
	noSkip      bool
)

var matchCmd = &cobra.Command{
	Use:   "match <grammar> [input]",
	Short: "Match input against grammar rule",
	Long: `Matches input file (stdin by default) against grammar rule and prints captured value.
Rule defaults to $entry pragma of grammar description or to the first rule.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchRule, "rule", "r", "", "entry rule name")
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", "", "output format: json, yaml, or text (default json)")
	matchCmd.Flags().StringVar(&matchSkip, "skip", "", "regexp matching insignificant text")
	matchCmd.Flags().BoolVar(&noSkip, "no-skip", false, "do not skip insignificant text")
	matchCmd.Flags().BoolVar(&matchPrefix, "prefix", false, "match input prefix, report consumed length")
}

func runMatch(cmd *cobra.Command, args []string) error {
	l, e := loadGrammar(cmd, args[0])
	if e != nil {
		return e
	}

	rule, e := entryRule(l)
	if e != nil {
		return e
	}

	m, e := matcher.New(l.grammar,
		matcher.WithSkip(skipExpr(l)),
		matcher.WithMaxDepth(cfg.MaxDepth),
		matcher.WithLogger(logger),
	)
	if e != nil {
		return e
	}

	inputName := "<stdin>"
	var input []byte
	if len(args) > 1 {
		inputName = args[1]
		input, e = os.ReadFile(inputName)
	} else {
		input, e = io.ReadAll(cmd.InOrStdin())
	}
	if e != nil {
		return fmt.Errorf("reading input: %w", e)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	src := source.New(inputName, input)
	var v capture.Value
	if matchPrefix {
		var size int
		v, size, e = m.MatchSourcePrefix(ctx, rule, src)
		if e == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "matched %d of %d bytes\n", size, len(input))
		}
	} else {
		v, e = m.MatchSource(ctx, rule, src)
	}
	if e != nil {
		if cl.InClass(e, cl.MatchErrors) {
			return report(cmd.ErrOrStderr(), input, e)
		}
		return e
	}

	logger.Debug("input matched", zap.String("grammar", l.name), zap.String("rule", rule), zap.Int("size", len(input)))
	return writeValue(cmd.OutOrStdout(), v)
}

func entryRule(l *loaded) (string, error) {
	rule := matchRule
	if rule == "" {
		rule, _ = l.pragma("entry")
	}
	if rule == "" {
		names := l.grammar.Names()
		if len(names) == 0 {
			return "", fmt.Errorf("grammar %s has no rules", l.name)
		}
		rule = names[0]
	}
	return rule, nil
}

func skipExpr(l *loaded) string {
	switch {
	case noSkip:
		return ""
	case matchSkip != "":
		return matchSkip
	}
	if skip, found := l.pragma("skip"); found {
		return skip
	}
	if cfg.Skip != nil {
		return *cfg.Skip
	}
	return matcher.DefaultSkip
}

func writeValue(w io.Writer, v capture.Value) error {
	format := matchFormat
	if format == "" {
		format = cfg.Format
	}

	switch format {
	case "", "json":
		content, e := json.MarshalIndent(v, "", "  ")
		if e != nil {
			return e
		}
		_, e = fmt.Fprintf(w, "%s\n", content)
		return e

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if e := enc.Encode(v); e != nil {
			return e
		}
		return enc.Close()

	case "text":
		_, e := fmt.Fprintln(w, v.String())
		return e

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
