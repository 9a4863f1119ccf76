package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/ghspec/internal/catalog"
	"github.com/usestring/ghspec/pkg/apispec"
	"github.com/usestring/ghspec/pkg/types"
)

func newFindCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Show the schema an endpoint or command identifier resolves to",
	}
	for _, target := range []string{types.TargetEndpoint, types.TargetCommand} {
		cmd.AddCommand(&cobra.Command{
			Use:   target + " <id>",
			Short: "Resolve a " + target + " identifier the way validation does",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFind(cmd, g, target, args[0])
			},
		})
	}
	return cmd
}

func runFind(cmd *cobra.Command, g *globalOptions, target, id string) error {
	doc, err := apispec.Load(g.cfg.SpecFile)
	if err != nil {
		return err
	}
	res, err := catalog.Find(doc, target, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if g.jsonOutput {
		if err := writeJSON(out, res); err != nil {
			return err
		}
	} else {
		switch {
		case res.Match == nil:
			fmt.Fprintf(out, "No entry matches %s: %s\n", target, id)
		case !res.Found:
			fmt.Fprintf(out, "%s (%s) has no schema\n", res.Match.Name, res.Match.Kind)
		default:
			fmt.Fprintf(out, "%s (%s)", res.Match.Name, res.Match.Kind)
			if res.Match.Target != "" {
				fmt.Fprintf(out, ": %s", res.Match.Target)
			}
			fmt.Fprintln(out)
			if err := writeJSON(out, res.Schema); err != nil {
				return err
			}
		}
	}

	if !res.Found {
		return errInvalid
	}
	return nil
}
