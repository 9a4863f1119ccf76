package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/usestring/ghspec/pkg/mcpsrv"
)

func newMCPCmd(g *globalOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the validation tools over MCP on stdio",
		Long: `Run an MCP server on stdin/stdout exposing validate_api_response,
validate_cli_output, validate_files, find_schema, search_schemas, infer_schema
and lint_spec, the ghspec://spec resource and the validate_output prompt.

Logs go to stderr, or to --log-file with rotation.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipLogging: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := mcpsrv.NewServer(
				mcpsrv.WithConfig(g.cfg),
				mcpsrv.WithLogFile(logFile),
			)
			if err != nil {
				return err
			}
			defer server.Close()

			slog.Info("starting ghspec MCP server on stdio", slog.String("spec", g.cfg.SpecFile))
			if err := server.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			slog.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file (default: $LOG_FILE or stderr)")
	return cmd
}
