package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/ghspec/internal/lint"
)

func newLintCmd(g *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Check a spec document for structural mistakes",
		Long: `Check a spec document against the supported schema dialect. Errors make the
document unusable or change how it is read; warnings flag entries that can
never be validated against. The exit status is 1 on errors, or on warnings
with --strict.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.cfg.SpecFile
			if len(args) == 1 {
				path = args[0]
			}

			linter, err := lint.New()
			if err != nil {
				return err
			}
			issues, err := linter.LintFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.jsonOutput {
				if issues == nil {
					issues = []lint.Issue{}
				}
				if err := writeJSON(out, issues); err != nil {
					return err
				}
			} else if len(issues) == 0 {
				fmt.Fprintf(out, "%s: no issues\n", path)
			} else {
				for _, is := range issues {
					fmt.Fprintf(out, "%s: %s %s: %s\n", path, is.Severity, is.Path, is.Message)
				}
			}

			if lint.HasErrors(issues) || (strict && len(issues) > 0) {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings too")
	return cmd
}
