package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "validate_api_response",
		Description: "Validate a GitHub REST or GraphQL response against the schema registered for an endpoint. The endpoint is an entry name (get_user) or the declared endpoint (/user); the first match in document order wins. Returns valid plus error messages; an unknown endpoint is reported as an error message, not a failure.",
	}, ToolValidateAPIResponse(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "validate_cli_output",
		Description: "Validate gh CLI --json output against the schema registered for a command. The command is an entry name (repo_list) or any fragment of the declared command line (gh repo list).",
	}, ToolValidateCLIOutput(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "validate_files",
		Description: "Validate several JSON files on disk against one endpoint or command. Files are checked concurrently; reports come back in the order given.",
	}, ToolValidateFiles(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "find_schema",
		Description: "Resolve an endpoint or command identifier exactly as validation does and return the matched entry and its schema node. Use before validating to confirm which entry an identifier hits.",
	}, ToolFindSchema(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "search_schemas",
		Description: "Search spec entries by name, endpoint path, command line, description and property names. Returns entry summaries to pass to find_schema or the validate tools.",
	}, ToolSearchSchemas(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "infer_schema",
		Description: "Infer a schema node in the spec dialect from sample outputs. Properties present in every sample become required; properties ever null become nullable. Paste the result under response.schema or output.",
	}, ToolInferSchema(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "lint_spec",
		Description: "Check a spec document for structural mistakes: unknown types, misplaced keys, enum values that can never match, entries without schemas.",
	}, ToolLintSpec(d))
}
