package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/ghspec/internal/lint"
)

// LintSpecInput is the input for lint_spec.
type LintSpecInput struct {
	Path string `json:"path,omitempty" jsonschema:"Spec document to lint (default: the server's document)"`
}

// LintSpecOutput is the output for lint_spec.
type LintSpecOutput struct {
	Path     string       `json:"path"`
	Valid    bool         `json:"valid"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Issues   []lint.Issue `json:"issues,omitzero"`
}

// ToolLintSpec checks a spec document against the supported dialect.
func ToolLintSpec(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input LintSpecInput) (*sdkmcp.CallToolResult, LintSpecOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input LintSpecInput) (*sdkmcp.CallToolResult, LintSpecOutput, error) {
		path := input.Path
		if path == "" {
			path = d.Validator.Source
		}

		issues, err := d.Linter.LintFile(path)
		if err != nil {
			return nil, LintSpecOutput{}, WrapSpecError(err)
		}

		out := LintSpecOutput{Path: path, Issues: issues}
		for _, is := range issues {
			if is.Severity == lint.SeverityError {
				out.Errors++
			} else {
				out.Warnings++
			}
		}
		out.Valid = out.Errors == 0
		return nil, out, nil
	}
}
