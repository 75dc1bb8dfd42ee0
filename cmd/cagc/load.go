package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CausticLang/CausticLexer/grammar"
	"github.com/CausticLang/CausticLexer/langdef"
	"github.com/CausticLang/CausticLexer/pattern"
	"github.com/CausticLang/CausticLexer/source"
)

// loaded is a grammar read from description or compiled grammar file.
type loaded struct {
	path    string
	name    string
	grammar *grammar.Grammar
	pragmas []langdef.Pragma
}

func (l *loaded) pragma(typ string) (string, bool) {
	for i := len(l.pragmas) - 1; i >= 0; i-- {
		if l.pragmas[i].Type == typ {
			return l.pragmas[i].Arg, true
		}
	}
	return "", false
}

// loadGrammar reads grammar file; diagnostics for malformed descriptions are printed to cmd error output.
func loadGrammar(cmd *cobra.Command, path string) (*loaded, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, fmt.Errorf("reading grammar: %w", e)
	}

	l := &loaded{path: path, name: path}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		l.grammar, e = grammar.Load(data)
	case ".yaml", ".yml":
		l.grammar, e = grammar.LoadYAML(data)
	default:
		e = l.compile(cmd, source.New(path, data))
	}
	if e != nil {
		return nil, report(cmd.ErrOrStderr(), data, e)
	}

	logger.Debug("grammar loaded",
		zap.String("path", path),
		zap.Int("rules", l.grammar.Len()),
		zap.String("engine", l.grammar.Engine().Name()),
	)
	return l, nil
}

func (l *loaded) compile(cmd *cobra.Command, src *source.Source) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var e error
	l.pragmas, e = langdef.ScanPragmas(src, langdef.WithContext(ctx))
	if e != nil {
		return e
	}
	l.applyPragmas(cmd)

	name := cfg.Engine
	if name == "" {
		name, _ = l.pragma("engine")
	}
	engine, e := pattern.Lookup(name)
	if e != nil {
		return e
	}

	res, e := langdef.Compile(src, langdef.WithEngine(engine), langdef.WithLogger(logger), langdef.WithContext(ctx))
	if e != nil {
		return e
	}
	l.grammar = res.Grammar
	return nil
}

func (l *loaded) applyPragmas(cmd *cobra.Command) {
	for _, p := range l.pragmas {
		switch p.Type {
		case "print":
			fmt.Fprintln(cmd.ErrOrStderr(), p.Arg)
		case "name":
			l.name = p.Arg
		case "entry", "skip", "engine":
		default:
			logger.Info("unknown pragma ignored",
				zap.String("path", l.path),
				zap.String("type", p.Type),
				zap.Int("line", p.Line),
			)
		}
	}
}
