package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/usestring/ghspec/internal/batch"
	"github.com/usestring/ghspec/internal/cache"
	"github.com/usestring/ghspec/internal/input"
	"github.com/usestring/ghspec/internal/query"
	"github.com/usestring/ghspec/pkg/types"
	"github.com/usestring/ghspec/pkg/validate"
)

type validateOptions struct {
	query   string
	workers int
}

func newValidateCmd(g *globalOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate JSON data against an endpoint or command schema",
		Long: `Validate JSON read from files, or from stdin when no file is given.

Each input is reported as valid or with its first validation error. The exit
status is 1 when any input is invalid or cannot be read.`,
	}

	cmd.PersistentFlags().StringVar(&opts.query, "jq", "", "jq expression selecting the value to validate")
	cmd.PersistentFlags().IntVarP(&opts.workers, "workers", "w", 0, "Files validated concurrently (default: $GHSPEC_BATCH_WORKERS or 4)")

	cmd.AddCommand(
		newValidateTargetCmd(g, opts, types.TargetEndpoint,
			"Validate a GitHub REST or GraphQL response",
			"ghspec validate endpoint /user response.json\ngh api /user | ghspec validate endpoint get_user"),
		newValidateTargetCmd(g, opts, types.TargetCommand,
			"Validate gh CLI --json output",
			"gh repo list --json name,description,repositoryTopics | ghspec validate command repo_list"),
	)
	return cmd
}

func newValidateTargetCmd(g *globalOptions, opts *validateOptions, target, short, example string) *cobra.Command {
	return &cobra.Command{
		Use:     target + " <id> [files...]",
		Short:   short,
		Example: example,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, sources := args[0], args[1:]
			if len(sources) == 0 {
				sources = []string{input.Stdin}
			}
			return runValidate(cmd, g, opts, batch.Request{Target: target, ID: id, Query: opts.query}, sources)
		},
	}
}

func runValidate(cmd *cobra.Command, g *globalOptions, opts *validateOptions, req batch.Request, sources []string) error {
	workers := opts.workers
	if workers <= 0 {
		workers = g.cfg.BatchWorkers
	}
	qc, err := cache.NewQueryCache(g.cfg.QueryCacheMaxItems)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(validate.New(g.cfg.SpecFile), batch.Options{
		Workers:       workers,
		MaxInputBytes: g.cfg.MaxInputBytes,
		Engine:        query.NewEngine(qc),
		Stdin:         cmd.InOrStdin(),
	})

	inputs := make([]batch.Input, len(sources))
	for i, s := range sources {
		inputs[i] = batch.Input{Source: s}
	}

	reports, summary, err := runner.Run(cmd.Context(), req, inputs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if g.jsonOutput {
		if err := writeJSON(out, struct {
			Reports []*types.ValidationReport `json:"reports"`
			Summary types.BatchSummary        `json:"summary"`
		}{reports, summary}); err != nil {
			return err
		}
	} else {
		printReports(out, reports)
	}

	if summary.Invalid > 0 || summary.Failed > 0 {
		return errInvalid
	}
	return nil
}

func printReports(w io.Writer, reports []*types.ValidationReport) {
	multi := len(reports) > 1
	for i, r := range reports {
		if multi {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s:\n", displaySource(r.Source))
		}
		printReport(w, r)
	}
}

func printReport(w io.Writer, r *types.ValidationReport) {
	switch {
	case r.Error != "":
		fmt.Fprintf(w, "Error: %s\n", r.Error)
	case r.Valid:
		fmt.Fprintln(w, "✓ Valid response")
	default:
		printErrors(w, "Validation errors:", r.Errors)
	}
}

func printErrors(w io.Writer, heading string, errs []string) {
	fmt.Fprintln(w, heading)
	for _, e := range errs {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}

func displaySource(s string) string {
	if s == input.Stdin {
		return "<stdin>"
	}
	return s
}
