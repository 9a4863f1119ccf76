// Package cli implements the ghspec command line.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/usestring/ghspec/internal/config"
	"github.com/usestring/ghspec/internal/logging"
)

// Version is injected during build.
var Version = "dev"

// errInvalid marks a run that worked but found invalid input. It maps to exit
// status 1 without an error message, since the findings are already printed.
var errInvalid = errors.New("validation failed")

// skipLogging is set on commands that configure logging themselves.
const skipLogging = "skip-logging"

// globalOptions holds the persistent flags and the configuration they
// override.
type globalOptions struct {
	cfg        *config.Config
	specFile   string
	jsonOutput bool
	logLevel   string
	logCleanup func() error
}

// NewRootCmd builds the ghspec command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{cfg: config.Load()}

	root := &cobra.Command{
		Use:   "ghspec",
		Short: "Validate GitHub API responses and gh CLI output against an API spec document",
		Long: `ghspec checks GitHub REST and GraphQL responses and gh --json output against
the schemas in an API spec document (api-specs.json by default, YAML accepted).

Configuration is read from GHSPEC_* and LOG_* environment variables; flags
override it.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logCleanup != nil {
				return opts.logCleanup()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.specFile, "spec", "s", "", "Spec document (default: $GHSPEC_SPEC_FILE or api-specs.json)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $LOG_LEVEL or info)")

	root.AddCommand(
		newValidateCmd(opts),
		newDemoCmd(opts),
		newFindCmd(opts),
		newSearchCmd(opts),
		newInferCmd(opts),
		newLintCmd(opts),
		newMCPCmd(opts),
	)
	return root
}

// Execute runs the command line and returns the process exit status.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func (o *globalOptions) setup(cmd *cobra.Command) error {
	if o.specFile != "" {
		o.cfg.SpecFile = o.specFile
	}
	if o.logLevel != "" {
		o.cfg.LogLevel = o.logLevel
	}
	if _, ok := cmd.Annotations[skipLogging]; ok {
		return nil
	}

	logCfg := logging.FromConfig(o.cfg)
	// CLI runs log to stderr unless a file is configured; the default level
	// keeps command output clean.
	if o.logLevel == "" && os.Getenv("LOG_LEVEL") == "" {
		logCfg.Level = "warn"
	}
	logCfg.Writer = cmd.ErrOrStderr()
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	o.logCleanup = cleanup
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
