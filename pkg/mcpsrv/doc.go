// Package mcpsrv provides an extensible MCP server that validates GitHub API
// responses and gh CLI output against an API spec document.
//
// The server exposes the builtin validation, lookup, search, inference and
// lint tools, the ghspec:// resources and the builtin prompts. Functional
// options add custom tools, prompts and resources.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer(mcpsrv.WithSpecFile("api-specs.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Custom tools that need the spec infrastructure use WithDepsTool:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "count_entries", Description: "Count spec entries"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            return nil, CountOutput{Count: d.Indexer.DocCount()}, nil
//	        }
//	    },
//	)
//
// # Configuration
//
// Defaults come from the environment (GHSPEC_SPEC_FILE, LOG_LEVEL, LOG_FILE
// and friends); options override them:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithSpecFile("specs/github.yaml"),
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/ghspec.log"),
//	)
package mcpsrv
