package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var listRules bool

var checkCmd = &cobra.Command{
	Use:   "check <grammar>...",
	Short: "Check grammar files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&listRules, "rules", false, "list rule names")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		l, e := loadGrammar(cmd, path)
		if e != nil {
			var reported reportedError
			if !errors.As(e, &reported) {
				printDiagnostic(cmd.ErrOrStderr(), nil, e)
			}
			failed++
			continue
		}

		okStyle.Fprint(out, "ok")
		fmt.Fprintf(out, "  %s: %d rules, %d pragmas, %s engine\n", l.name, l.grammar.Len(), len(l.pragmas), l.grammar.Engine().Name())
		if listRules {
			for _, name := range l.grammar.Names() {
				fmt.Fprintf(out, "    %s\n", name)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d grammar files failed", failed, len(args))
	}
	return nil
}
