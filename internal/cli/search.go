package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/usestring/ghspec/internal/indexer"
	"github.com/usestring/ghspec/internal/search"
	"github.com/usestring/ghspec/pkg/types"
)

func newSearchCmd(g *globalOptions) *cobra.Command {
	var (
		filters types.SearchFilters
		limit   int
		offset  int
	)

	cmd := &cobra.Command{
		Use:     "search [terms...]",
		Short:   "Search spec entries by name, path, command line and property names",
		Example: "ghspec search repo list\nghspec search --kind rest --field login",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = g.cfg.SearchLimit
			}
			engine := search.New(indexer.New(g.cfg.SpecFile))
			resp, err := engine.Search(cmd.Context(), &types.SearchRequest{
				Query:   strings.Join(args, " "),
				Filters: &filters,
				Limit:   limit,
				Offset:  offset,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.jsonOutput {
				return writeJSON(out, resp)
			}
			if len(resp.Results) == 0 {
				fmt.Fprintln(out, "No entries matched")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tNAME\tTARGET\tSCHEMA\tSCORE")
			for _, r := range resp.Results {
				s := r.Summary
				schema := "no"
				if s.HasSchema {
					schema = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n", s.Kind, s.Name, s.Target, schema, r.Score)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if shown := offset + len(resp.Results); resp.TotalHint > shown {
				fmt.Fprintf(out, "%d more, use --offset %d\n", resp.TotalHint-shown, shown)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Kind, "kind", "", "Entry kind: rest, graphql or cli")
	cmd.Flags().StringVar(&filters.Method, "method", "", "HTTP method")
	cmd.Flags().StringVar(&filters.Field, "field", "", "Word that must appear in a property path")
	cmd.Flags().BoolVar(&filters.SchemaOnly, "schema-only", false, "Only entries with a schema")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Max results (default: $GHSPEC_SEARCH_LIMIT or 10)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}
