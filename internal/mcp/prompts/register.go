package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "validate_output",
		Description: "RECOMMENDED: Validate a GitHub API response or gh CLI output against the spec and decide whether the data or the spec needs fixing.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "target",
				Description: "endpoint or command (default: endpoint)",
				Required:    false,
			},
			{
				Name:        "id",
				Description: "Endpoint or command identifier, e.g. get_user or gh repo list",
				Required:    false,
			},
		},
	}, HandleValidateOutput(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "usage_guide",
		Description: "How identifiers resolve, how to read validation errors, and which tool to reach for.",
	}, HandleBasePrompt(cfg))
}
