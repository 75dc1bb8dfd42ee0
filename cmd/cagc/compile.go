package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/CausticLang/CausticLexer/grammar"
)

var (
	outFileName string
	outFormat   string
	packageName string
	varName     string
)

var compileCmd = &cobra.Command{
	Use:   "compile <grammar>",
	Short: "Compile grammar description",
	Long: `Compiles grammar description and writes the grammar as JSON, YAML,
Go source building the grammar, or canonical grammar description (cag).`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&outFormat, "format", "f", "json", "output format: json, yaml, go, or cag")
	compileCmd.Flags().StringVarP(&outFileName, "output", "o", "", "output file name, default is stdout")
	compileCmd.Flags().StringVarP(&packageName, "package", "p", "", "Go package name, default is dir name of output file")
	compileCmd.Flags().StringVar(&varName, "var", "Grammar", "Go variable name")
}

func runCompile(cmd *cobra.Command, args []string) error {
	l, e := loadGrammar(cmd, args[0])
	if e != nil {
		return e
	}

	var content []byte
	switch outFormat {
	case "json":
		content, e = makeJSON(l.grammar)
	case "yaml":
		content, e = yaml.Marshal(l.grammar)
	case "go":
		content, e = makeGo(l.grammar, l.path)
	case "cag":
		content = []byte(l.grammar.String())
	default:
		e = fmt.Errorf("unknown output format %q", outFormat)
	}
	if e != nil {
		return e
	}

	if outFileName == "" || outFileName == "-" {
		_, e = cmd.OutOrStdout().Write(content)
		return e
	}
	if e = os.WriteFile(outFileName, content, 0o666); e != nil {
		return fmt.Errorf("writing output: %w", e)
	}
	return nil
}

func makeJSON(g *grammar.Grammar) ([]byte, error) {
	content, e := json.MarshalIndent(g, "", "  ")
	if e != nil {
		return nil, e
	}
	return append(content, '\n'), nil
}

func defaultPackageName() (string, error) {
	dir := "."
	if outFileName != "" && outFileName != "-" {
		dir = filepath.Dir(outFileName)
	}
	dir, e := filepath.Abs(dir)
	if e != nil {
		return "", e
	}
	return filepath.Base(dir), nil
}
