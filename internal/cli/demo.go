package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/ghspec/pkg/validate"
)

// Samples validated by the demo command.
var (
	demoRepoList = []any{
		map[string]any{
			"name":        "test-repo",
			"description": "A test repository",
			"repositoryTopics": []any{
				map[string]any{"name": "python"},
				map[string]any{"name": "testing"},
			},
		},
	}

	demoUser = map[string]any{
		"login":        "aygp-dr",
		"id":           12345,
		"public_repos": 73,
	}
)

func newDemoCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Validate built-in samples of gh repo list and GET /user",
		Long: `Validate two built-in samples against the spec document: gh repo list output
against the repo_list command and a GET /user response against /user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validate.New(g.cfg.SpecFile)
			out := cmd.OutOrStdout()

			errs, err := v.ValidateCLIOutput(demoRepoList, "repo_list")
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				printErrors(out, "Validation errors:", errs)
			} else {
				fmt.Fprintln(out, "✓ Valid response")
			}

			errs, err = v.ValidateAPIResponse(demoUser, "/user")
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			if len(errs) > 0 {
				printErrors(out, "GitHub API validation errors:", errs)
			} else {
				fmt.Fprintln(out, "✓ Valid GitHub API response")
			}
			return nil
		},
	}
}
