package prompts

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleBasePrompt serves the tool usage guide.
func HandleBasePrompt(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# ghspec Tool Usage Guide\n\n")
		if cfg.SpecFile != "" {
			sb.WriteString("Spec document: `" + cfg.SpecFile + "`. It is read again on every validation, so edits apply immediately.\n\n")
		}

		// --- Identifier resolution ---
		sb.WriteString("## How Identifiers Resolve\n\n")
		sb.WriteString("| Tool | Identifier | Matches |\n")
		sb.WriteString("|------|------------|--------|\n")
		sb.WriteString("| `validate_api_response` | `endpoint` | Entry name (`get_user`) or exact declared endpoint (`/user`). REST is searched before GraphQL. |\n")
		sb.WriteString("| `validate_cli_output` | `command` | Entry name (`repo_list`) or any substring of the command line (`gh repo list`). |\n")
		sb.WriteString("\n**Key rules**:\n")
		sb.WriteString("- The first matching entry in document order wins, even if it has no schema\n")
		sb.WriteString("- An unresolved identifier is a validation error (`No schema found for ...`), not a tool failure\n")
		sb.WriteString("- Call `find_schema` first when unsure which entry an identifier hits\n")

		// --- Results ---
		sb.WriteString("\n## Reading Results\n")
		sb.WriteString("- Validation stops at the first failure, so `errors` holds at most one message\n")
		sb.WriteString("- Messages nest with prefixes: `Array item 0: Property 'state': Value must be one of: [\"OPEN\",\"CLOSED\"]`\n")
		sb.WriteString("- `integer` rejects 1.0; pass `response_json` text when the float/integer distinction matters\n")
		sb.WriteString("- `nullable: true` admits null; a property absent from the value is only an error when `required: true`\n")

		// --- Workflows ---
		sb.WriteString("\n## Recommended Workflows\n")
		sb.WriteString("\n### Check a Response\n")
		sb.WriteString("1. `search_schemas(query: \"user repos\")` to find the entry\n")
		sb.WriteString("2. `validate_api_response(endpoint: \"list_repos\", response_json: \"...\")`\n")
		sb.WriteString("3. Use `query` (jq) to validate a nested part, e.g. `.data` of a GraphQL envelope\n")

		sb.WriteString("\n### Add a Missing Schema\n")
		sb.WriteString("1. Collect a few real outputs of the command or endpoint\n")
		sb.WriteString("2. `infer_schema(samples_json: [...], detect_enums: true)`\n")
		sb.WriteString("3. Paste the schema under `response.schema` or `output`, then run `lint_spec`\n")

		sb.WriteString("\n### Validate Files in Bulk\n")
		sb.WriteString("`validate_files(target: \"command\", id: \"issue_list\", paths: [...])` returns one report per file plus a summary.\n")

		// --- JQ ---
		sb.WriteString("\n## JQ Quick Reference\n")
		sb.WriteString("- `.data.viewer` - Unwrap a GraphQL envelope\n")
		sb.WriteString("- `.[0]` - Validate one element of a list output\n")
		sb.WriteString("- `.items[]` - Several results are validated together as an array\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for validating GitHub API responses and gh output",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
