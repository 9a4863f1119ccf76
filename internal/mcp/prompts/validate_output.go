package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleValidateOutput walks through validating one response or command
// output and fixing either the data or the spec.
func HandleValidateOutput(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var target, id string
		if args := req.Params.Arguments; args != nil {
			target = strings.ToLower(args["target"])
			id = args["id"]
		}

		tool := "validate_api_response"
		idParam := "endpoint"
		dataParam := "response_json"
		if target == "command" {
			tool = "validate_cli_output"
			idParam = "command"
			dataParam = "output_json"
		}

		var sb strings.Builder
		sb.WriteString("# Validate Output Against the Spec\n\n")
		sb.WriteString("You check that GitHub API responses and gh CLI output match the schemas in the spec document")
		if cfg.SpecFile != "" {
			sb.WriteString(" `" + cfg.SpecFile + "`")
		}
		sb.WriteString(", and decide whether a mismatch is a data problem or a spec problem.\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		if id == "" {
			sb.WriteString("1. **Find the entry** -- `search_schemas` with words from the endpoint or command\n")
		} else {
			fmt.Fprintf(&sb, "1. **Confirm the entry** -- `find_schema(target: %q, id: %q)`\n", orDefault(target, "endpoint"), id)
		}
		sb.WriteString("   - If `found` is false but `match` is set, the entry has no schema: go to step 4\n\n")
		fmt.Fprintf(&sb, "2. **Validate** -- `%s(%s: ..., %s: \"<raw JSON>\")`\n", tool, idParam, dataParam)
		sb.WriteString("   - Pass raw JSON text so 1.0 and 1 stay distinct\n")
		sb.WriteString("   - Use `query` to narrow to the part the schema describes\n\n")
		sb.WriteString("3. **Interpret the error** -- only the first failure is reported\n")
		sb.WriteString("   - `Missing required property: x`: the data lacks x, or x is optional and the spec is too strict\n")
		sb.WriteString("   - `Expected integer, got float`: the value has a fraction or exponent\n")
		sb.WriteString("   - `Value must be one of`: a new enum value appeared upstream\n")
		sb.WriteString("   - Fix and re-run until valid, since later failures stay hidden\n\n")
		sb.WriteString("4. **Update the spec if needed** -- `infer_schema` from several samples, merge by hand, then `lint_spec`\n\n")

		sb.WriteString("## Constraints\n\n")
		sb.WriteString("- Do NOT fetch `ghspec://spec` unless search and find_schema are insufficient\n")
		sb.WriteString("- Do NOT loosen a schema to fit one odd sample; gather more samples first\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for validating output against the spec and fixing mismatches",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
