package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/ghspec/internal/input"
	"github.com/usestring/ghspec/pkg/infer"
)

func newInferCmd(g *globalOptions) *cobra.Command {
	opts := infer.DefaultOptions()
	var showStats bool

	cmd := &cobra.Command{
		Use:   "infer [files...]",
		Short: "Infer a schema node from sample outputs",
		Long: `Infer a schema node in the spec dialect from one or more JSON samples, read
from files or from stdin when no file is given. Properties present in every
sample are marked required; properties that are ever null are nullable.`,
		Example: "gh repo list --json name,description > a.json\nghspec infer a.json b.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := args
			if len(sources) == 0 {
				sources = []string{input.Stdin}
			}
			samples := make([][]byte, 0, len(sources))
			for _, s := range sources {
				data, err := input.Read(s, cmd.InOrStdin(), g.cfg.MaxInputBytes)
				if err != nil {
					return err
				}
				samples = append(samples, data)
			}

			opts.FieldStats = showStats
			opts.MaxSamples = g.cfg.InferMaxSamples
			res, err := infer.InferWithOptions(opts, samples...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.jsonOutput {
				return writeJSON(out, res)
			}
			if err := writeJSON(out, res.Schema); err != nil {
				return err
			}
			if res.SampleCount > 1 && !res.AllMatch {
				fmt.Fprintf(cmd.ErrOrStderr(), "note: %d samples differ in shape; the schema is their union\n", res.SampleCount)
			}
			if showStats {
				for _, f := range res.Fields {
					fmt.Fprintf(out, "%-40s %-16s freq=%.2f required=%t nullable=%t", f.Path, f.Type, f.Frequency, f.Required, f.Nullable)
					if f.Format != "" {
						fmt.Fprintf(out, " format=%s", f.Format)
					}
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.DetectEnums, "enums", false, "Turn low-cardinality string fields into enums")
	cmd.Flags().BoolVar(&opts.NullableOptional, "nullable-optional", false, "Do not mark fields that are ever null as required")
	cmd.Flags().BoolVar(&showStats, "stats", false, "Print per-field statistics")
	return cmd
}
